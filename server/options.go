package server

import (
	"log/slog"
	"time"

	"github.com/coregx/robotnav/robotproto"
)

const (
	defaultAddr         = "127.0.0.1:6969"
	defaultWorkerCount  = 4
	defaultShortTimeout = time.Duration(robotproto.DefaultShortTimeoutSeconds) * time.Second
	defaultLongTimeout  = time.Duration(robotproto.DefaultLongTimeoutSeconds) * time.Second
)

type config struct {
	addr         string
	workerCount  int
	shortTimeout time.Duration
	longTimeout  time.Duration
	keys         [5]robotproto.KeyPair
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		addr:         defaultAddr,
		workerCount:  defaultWorkerCount,
		shortTimeout: defaultShortTimeout,
		longTimeout:  defaultLongTimeout,
		keys:         robotproto.DefaultKeys,
	}
}

// Option configures a Server at construction time.
type Option func(*config)

// WithAddr sets the TCP address the server listens on.
func WithAddr(addr string) Option {
	return func(c *config) { c.addr = addr }
}

// WithWorkerCount sets the number of connections serviced concurrently.
// Connections beyond this count queue until a worker frees up.
func WithWorkerCount(n int) Option {
	return func(c *config) { c.workerCount = n }
}

// WithShortTimeout sets the read-timeout regime used while a robot is
// not recharging.
func WithShortTimeout(d time.Duration) Option {
	return func(c *config) { c.shortTimeout = d }
}

// WithLongTimeout sets the read-timeout regime used while a robot has
// signaled RECHARGING.
func WithLongTimeout(d time.Duration) Option {
	return func(c *config) { c.longTimeout = d }
}

// WithKeys overrides the server/client key-pair table used during
// authentication. Mainly useful for tests.
func WithKeys(keys [5]robotproto.KeyPair) Option {
	return func(c *config) { c.keys = keys }
}

// WithLogger overrides the logger used for connection lifecycle and
// accept-loop diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
