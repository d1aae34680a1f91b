package robotproto

// Terminator is the two-byte sequence that ends every framed message:
// bell (0x07) followed by backspace (0x08). It must not occur inside a
// message body.
var Terminator = [2]byte{0x07, 0x08}

// Server-originated messages, literal text sent before Terminator.
const (
	msgMove        = "102 MOVE"
	msgTurnLeft    = "103 TURN LEFT"
	msgTurnRight   = "104 TURN RIGHT"
	msgGetMessage  = "105 GET MESSAGE"
	msgLogout      = "106 LOGOUT"
	msgKeyRequest  = "107 KEY REQUEST"
	msgOK          = "200 OK"
	msgLoginFailed = "300 LOGIN FAILED"
	msgSyntaxError = "301 SYNTAX ERROR"
	msgLogicError  = "302 LOGIC ERROR"
	msgKeyOutRange = "303 KEY OUT OF RANGE"
)

// Control payloads recognized by the framed reader's recharging
// sub-protocol (see Conn.ReadMessage).
const (
	payloadRecharging = "RECHARGING"
	payloadFullPower  = "FULL POWER"
)

// rechargingFrame and fullPowerFrame are the complete wire frames for
// the two control payloads (word plus terminator), used by readFrame
// to recognize a buffer that could still grow into one of them.
const (
	rechargingFrame = payloadRecharging + "\a\b"
	fullPowerFrame  = payloadFullPower + "\a\b"
)

// Per-phase maximum framed lengths, including the two terminator bytes.
const (
	maxLenUsername     = 20
	maxLenKeyID        = 5
	maxLenConfirmation = 7
	maxLenMoveReply    = 12
	maxLenSecret       = 100
)

// maxLenControl bounds a RECHARGING/FULL POWER control frame itself,
// independent of whatever narrower ambient cap the calling phase is
// using (key_id's 5 bytes, confirmation's 7). Both control words are
// 10 bytes; with the 2-byte terminator that is 12. The RECHARGING
// sub-protocol must be absorbed at any point during communication, so
// a buffer still consistent with becoming a complete control frame is
// never held to a narrower cap than this.
const maxLenControl = 12

// Default read-timeout regimes, in seconds (see §6 of the protocol
// specification). A server.Option overrides these per-server.
const (
	DefaultShortTimeoutSeconds = 1
	DefaultLongTimeoutSeconds  = 5
)
