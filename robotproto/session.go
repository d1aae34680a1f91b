package robotproto

import "errors"

// RunSession drives one full connection lifecycle — authenticate,
// navigate to the origin, retrieve the secret message, log out — over
// c, using keys as the key table. It always closes c before returning
// and never returns an error the caller needs to act on further: every
// fault is already mapped to a wire reply (or deliberately not
// replied to, per §4.4) before RunSession returns.
//
// The secret message is returned so callers that care (tests, an
// operator log line) can observe it; production use typically ignores
// it.
func RunSession(c *Conn, keys [5]KeyPair) (secret string, err error) {
	defer c.Close()

	if _, err := Authenticate(c, keys); err != nil {
		replyAndDiscard(c, err)
		return "", err
	}

	nav := NewNavigator(c)
	if err := nav.Navigate(); err != nil {
		replyAndDiscard(c, err)
		return "", err
	}

	if err := c.Send(msgGetMessage); err != nil {
		return "", err
	}
	secret, err = c.ReadMessage("", maxLenSecret, true)
	if err != nil {
		replyAndDiscard(c, err)
		return "", err
	}

	if err := c.Send(msgLogout); err != nil {
		return "", err
	}
	return secret, nil
}

// replyAndDiscard is the sole mapping point from an error kind to a
// wire reply (§4.4, §7). ErrAuthTerminated and raw I/O errors already
// carry (or require) no further reply and are left untouched.
func replyAndDiscard(c *Conn, err error) {
	switch {
	case errors.Is(err, ErrSyntax):
		_ = c.Send(msgSyntaxError)
	case errors.Is(err, ErrLogic):
		_ = c.Send(msgLogicError)
	default:
		// ErrAuthTerminated: a specific reply was already sent (or, for
		// an empty username, intentionally none). ErrTimeout and other
		// I/O errors: close silently, per §7 TRANSPORT.
	}
}
