package robotproto

import "errors"

// Protocol fault kinds. The session controller is the single place that
// maps these to wire replies (see RunSession); lower layers only ever
// return one of these (or a bare I/O error) and never retry.

var (
	// ErrSyntax indicates a framing or parse fault: oversize message,
	// non-numeric field where a number was expected, a missing required
	// prefix, stray whitespace where none is allowed, or a terminator
	// occurring where it must not. Maps to wire reply "301 SYNTAX ERROR".
	ErrSyntax = errors.New("robotproto: syntax error")

	// ErrLogic indicates a RECHARGING/FULL POWER sequencing violation,
	// including a read timeout while recharging. Maps to wire reply
	// "302 LOGIC ERROR".
	ErrLogic = errors.New("robotproto: logic error")

	// ErrTimeout indicates a read timeout while NOT recharging. The
	// session ends with no reply sent; ErrTimeout is never written to
	// the wire.
	ErrTimeout = errors.New("robotproto: read timeout")

	// ErrAuthTerminated indicates the authenticator already sent its own
	// specific reply (KEY OUT OF RANGE, LOGIN FAILED) or decided to send
	// none at all (empty username) and the connection must now be closed
	// with no further reply.
	ErrAuthTerminated = errors.New("robotproto: authentication terminated")
)

// ProtoError wraps one of the sentinel errors above with context about
// where it was raised, without losing the sentinel for errors.Is.
type ProtoError struct {
	Kind error
	Op   string
}

func (e *ProtoError) Error() string {
	if e.Op == "" {
		return e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error()
}

func (e *ProtoError) Unwrap() error { return e.Kind }

func syntaxErrorf(op string) error { return &ProtoError{Kind: ErrSyntax, Op: op} }
func logicErrorf(op string) error  { return &ProtoError{Kind: ErrLogic, Op: op} }
