package robotproto

import (
	"errors"
	"net"
	"testing"
	"time"
)

func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	return NewConn(server, 200*time.Millisecond, time.Second), client
}

func sendRaw(t *testing.T, client net.Conn, s string) {
	t.Helper()
	if _, err := client.Write([]byte(s)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestReadMessage_StripsPrefixAndSpaces(t *testing.T) {
	c, client := pipeConn(t)
	go sendRaw(t, client, "OK 1 2  \a\b")

	got, err := c.ReadMessage("OK ", 12, true)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got != "1 2" {
		t.Fatalf("got %q, want %q", got, "1 2")
	}
}

func TestReadMessage_MissingPrefixIsSyntaxError(t *testing.T) {
	c, client := pipeConn(t)
	go sendRaw(t, client, "NO 1 2\a\b")

	_, err := c.ReadMessage("OK ", 12, true)
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
}

func TestReadMessage_OverLengthFailsAtExactBoundary(t *testing.T) {
	c, client := pipeConn(t)
	// 20-byte cap; send 20 bytes with no terminator anywhere in them.
	go sendRaw(t, client, "12345678901234567890")

	_, err := c.ReadMessage("", 20, true)
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
}

func TestReadMessage_ExactFitWithTerminatorSucceeds(t *testing.T) {
	c, client := pipeConn(t)
	// 20-byte cap, 18 payload bytes + 2 terminator bytes == 20.
	go sendRaw(t, client, "123456789012345678\a\b")

	got, err := c.ReadMessage("", 20, true)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got != "123456789012345678" {
		t.Fatalf("got %q", got)
	}
}

func TestReadMessage_RechargingAbsorbed(t *testing.T) {
	c, client := pipeConn(t)
	go sendRaw(t, client, "RECHARGING\a\bFULL POWER\a\bhello\a\b")

	got, err := c.ReadMessage("", 20, true)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
	if c.recharging {
		t.Fatalf("expected recharging to be cleared by FULL POWER")
	}
}

func TestReadMessage_FullPowerWithoutRechargingIsLogicError(t *testing.T) {
	c, client := pipeConn(t)
	go sendRaw(t, client, "FULL POWER\a\b")

	_, err := c.ReadMessage("", 20, true)
	if !errors.Is(err, ErrLogic) {
		t.Fatalf("got %v, want ErrLogic", err)
	}
}

func TestReadMessage_NonControlWhileRechargingIsLogicError(t *testing.T) {
	c, client := pipeConn(t)
	go sendRaw(t, client, "RECHARGING\a\bhello\a\b")

	_, err := c.ReadMessage("", 20, true)
	if !errors.Is(err, ErrLogic) {
		t.Fatalf("got %v, want ErrLogic", err)
	}
}

func TestReadMessage_TimeoutNotRecharging(t *testing.T) {
	c, _ := pipeConn(t)
	// client never writes anything; short regime is 200ms.
	_, err := c.ReadMessage("", 20, true)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestReadMessage_TimeoutWhileRechargingIsLogicError(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	c := NewConn(server, 50*time.Millisecond, 100*time.Millisecond)

	go sendRaw(t, client, "RECHARGING\a\b")

	_, err := c.ReadMessage("", 20, true)
	if !errors.Is(err, ErrLogic) {
		t.Fatalf("got %v, want ErrLogic", err)
	}
}
