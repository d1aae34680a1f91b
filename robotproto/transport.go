package robotproto

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

// Conn is the per-connection octet-stream transport plus the framed
// reader state machine layered on top of it (§2 and §4.1 of the
// specification: Transport and Framed Reader are modeled as one type
// here because the recharging flag and its accumulation buffer are
// cross-cutting and must not leak into the Authenticator or Navigator).
//
// A Conn is used by exactly one goroutine for its entire lifetime; there
// is no internal synchronization for reads and writes beyond what Close
// needs to be safely idempotent.
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader

	shortTimeout time.Duration
	longTimeout  time.Duration
	recharging   bool

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps netConn as a protocol Conn. short is the read-timeout
// budget applied while not recharging; long applies while recharging.
func NewConn(netConn net.Conn, short, long time.Duration) *Conn {
	return &Conn{
		conn:         netConn,
		reader:       bufio.NewReader(netConn),
		shortTimeout: short,
		longTimeout:  long,
	}
}

// RemoteAddr returns the underlying connection's remote address, for
// logging.
func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// Close closes the underlying connection. Idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// currentTimeout returns the read-timeout budget for the active regime.
func (c *Conn) currentTimeout() time.Duration {
	if c.recharging {
		return c.longTimeout
	}
	return c.shortTimeout
}

// readByte reads a single byte, honoring the active timeout regime. The
// returned error is ErrTimeout on deadline expiry, or the raw I/O error
// otherwise (connection reset, EOF, ...).
func (c *Conn) readByte() (byte, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.currentTimeout())); err != nil {
		return 0, err
	}
	b, err := c.reader.ReadByte()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return 0, ErrTimeout
		}
		return 0, err
	}
	return b, nil
}

// Send writes text followed by Terminator. Server-originated messages
// are always sent whole; writes are synchronous and assumed not to
// block meaningfully (§5).
func (c *Conn) Send(text string) error {
	_, err := c.conn.Write(append([]byte(text), Terminator[0], Terminator[1]))
	return err
}

// ReadMessage reads framed messages from the connection until a
// non-control payload is available, transparently absorbing any
// RECHARGING/FULL POWER pairs along the way (§4.1).
//
// maxLength bounds every individual framed message read during this
// call and counts the whole message: payload bytes plus the two
// Terminator bytes. A frame that is still a prefix of a RECHARGING or
// FULL POWER frame is held to maxLenControl instead (see readFrame), so
// control frames are absorbed even under a narrower cap. On success the
// returned string has expectedPrefix removed and, if
// stripTrailingSpaces is set, trailing ASCII spaces trimmed.
//
// A read timeout while not recharging is returned as ErrTimeout; a read
// timeout while recharging is reported as ErrLogic, matching the "timeout
// during recharge is a fatal protocol violation" rule.
func (c *Conn) ReadMessage(expectedPrefix string, maxLength int, stripTrailingSpaces bool) (string, error) {
	for {
		message, err := c.readFrame(maxLength)
		if err != nil {
			if errors.Is(err, ErrTimeout) && c.recharging {
				return "", logicErrorf("ReadMessage: timeout while recharging")
			}
			return "", err
		}

		switch message {
		case payloadRecharging:
			c.recharging = true
			continue
		case payloadFullPower:
			if !c.recharging {
				return "", logicErrorf("ReadMessage: FULL POWER without RECHARGING")
			}
			c.recharging = false
			continue
		}

		if c.recharging {
			return "", logicErrorf("ReadMessage: message received while recharging")
		}

		if !strings.HasPrefix(message, expectedPrefix) {
			return "", syntaxErrorf("ReadMessage: missing expected prefix")
		}
		payload := message[len(expectedPrefix):]
		if stripTrailingSpaces {
			payload = strings.TrimRight(payload, " ")
		}
		return payload, nil
	}
}

// readFrame reads one terminator-delimited frame and returns the
// payload with the terminator stripped. It does not interpret
// RECHARGING/FULL POWER as control words; that is ReadMessage's job.
// It does, however, know their wire shape: maxLength is the caller's
// ambient cap for whatever field is being read (5 bytes for a key_id,
// 7 for a confirmation, ...), but a buffer that is still a valid
// prefix of a complete RECHARGING or FULL POWER frame is held to
// maxLenControl instead, since the robot may send either at any time
// and neither fits inside the narrower ambient caps.
func (c *Conn) readFrame(maxLength int) (string, error) {
	initialCap := maxLength
	if maxLenControl > initialCap {
		initialCap = maxLenControl
	}
	buf := make([]byte, 0, initialCap)
	for {
		b, err := c.readByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)

		if len(buf) >= 2 && buf[len(buf)-2] == Terminator[0] && buf[len(buf)-1] == Terminator[1] {
			return string(buf[:len(buf)-2]), nil
		}

		limit := maxLength
		if isControlFramePrefix(buf) {
			limit = maxLenControl
		}
		if len(buf) >= limit {
			return "", syntaxErrorf("readFrame: message exceeds max length")
		}
	}
}

// isControlFramePrefix reports whether buf could still grow into a
// complete RECHARGING or FULL POWER frame.
func isControlFramePrefix(buf []byte) bool {
	s := string(buf)
	return strings.HasPrefix(rechargingFrame, s) || strings.HasPrefix(fullPowerFrame, s)
}
