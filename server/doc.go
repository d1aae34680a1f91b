// Package server wires robotproto's per-connection state machine to a
// TCP accept loop and a bounded worker pool. It owns sockets, process
// lifetime, and logging; robotproto owns none of that.
package server
