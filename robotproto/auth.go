package robotproto

import (
	"strconv"
)

// Authenticate runs the name/key/confirmation exchange (§4.2) over c.
// keys is the key table to validate key_id against; production callers
// pass DefaultKeys.
//
// On success it returns the authenticated username. On failure it
// returns ErrAuthTerminated if a specific reply (KEY OUT OF RANGE,
// LOGIN FAILED) has already been written to c, or an empty username was
// received (no reply sent at all) — in both cases the caller must close
// the connection without sending anything further. Any other error is
// ErrSyntax, ErrLogic (a RECHARGING/FULL POWER violation during one of
// the reads), ErrTimeout, or a raw I/O error.
func Authenticate(c *Conn, keys [5]KeyPair) (string, error) {
	username, err := c.ReadMessage("", maxLenUsername, true)
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", ErrAuthTerminated
	}

	if err := c.Send(msgKeyRequest); err != nil {
		return "", err
	}

	keyIDStr, err := c.ReadMessage("", maxLenKeyID, true)
	if err != nil {
		return "", err
	}
	keyID, err := strconv.Atoi(keyIDStr)
	if err != nil {
		return "", syntaxErrorf("Authenticate: malformed key_id")
	}
	if keyID < 0 || keyID > len(keys)-1 {
		if err := c.Send(msgKeyOutRange); err != nil {
			return "", err
		}
		return "", ErrAuthTerminated
	}

	pair := keys[keyID]
	hash := usernameHash(username)
	serverConfirmation := (hash + pair.ServerKey) % 65536
	if err := c.Send(strconv.FormatUint(uint64(serverConfirmation), 10)); err != nil {
		return "", err
	}

	confirmationStr, err := c.ReadMessage("", maxLenConfirmation, false)
	if err != nil {
		return "", err
	}
	if stripped := trimSpaces(confirmationStr); stripped != confirmationStr {
		return "", syntaxErrorf("Authenticate: stray whitespace in confirmation")
	}
	confirmation, err := strconv.Atoi(confirmationStr)
	if err != nil {
		return "", syntaxErrorf("Authenticate: malformed confirmation")
	}

	expected := (hash + pair.ClientKey) % 65536
	if uint32(confirmation) != expected {
		if err := c.Send(msgLoginFailed); err != nil {
			return "", err
		}
		return "", ErrAuthTerminated
	}

	if err := c.Send(msgOK); err != nil {
		return "", err
	}
	return username, nil
}

// trimSpaces reports what strings.TrimSpace(s) would produce, used to
// check that a field arrived with no leading/trailing whitespace at
// all (not just ASCII spaces) without mutating the original string.
func trimSpaces(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
