package robotproto

import (
	"net"
	"strconv"
	"testing"
	"time"
)

// readFramed reads one terminator-delimited frame from conn, as a test
// client would, stripping the terminator bytes.
func readFramed(t *testing.T, conn net.Conn) string {
	t.Helper()
	buf := make([]byte, 0, 128)
	one := make([]byte, 1)
	for {
		if _, err := conn.Read(one); err != nil {
			t.Fatalf("readFramed: %v", err)
		}
		buf = append(buf, one[0])
		if len(buf) >= 2 && buf[len(buf)-2] == Terminator[0] && buf[len(buf)-1] == Terminator[1] {
			return string(buf[:len(buf)-2])
		}
	}
}

func writeFramed(t *testing.T, conn net.Conn, s string) {
	t.Helper()
	if _, err := conn.Write(append([]byte(s), Terminator[0], Terminator[1])); err != nil {
		t.Fatalf("writeFramed: %v", err)
	}
}

func newTestConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })
	return NewConn(server, time.Second, 5*time.Second), client
}

// expectedConfirmation computes the client-side confirmation a
// well-behaved robot would send back for username/keyID.
func expectedConfirmation(username string, pair KeyPair) string {
	hash := usernameHash(username)
	return strconv.FormatUint(uint64((hash+pair.ClientKey)%65536), 10)
}
