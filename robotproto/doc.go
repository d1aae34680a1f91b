// Package robotproto implements the per-connection state machine of a
// text-oriented control protocol for remote robots: a framed reader
// that transparently absorbs a RECHARGING/FULL POWER sub-protocol, a
// name/key/confirmation authenticator, and a navigator that infers a
// robot's orientation from move replies and drives it back to the
// origin through unknown obstacles.
//
// The package does not open sockets itself — Conn wraps any net.Conn —
// and has no opinion on accept loops or worker pools; see package
// server for that.
package robotproto
