package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/robotnav/robotproto"
)

// Server accepts robot connections on a single TCP listener and
// services them with a bounded pool of workers, one goroutine per
// connection for the full lifetime of its session.
type Server struct {
	cfg config

	// onListen, if set, is called with the bound address once the
	// listener is up. Used by tests to discover the ephemeral port
	// chosen for WithAddr("127.0.0.1:0").
	onListen func(addr string)
}

// New builds a Server from the given options. It does not open any
// socket until ListenAndServe is called.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Server{cfg: cfg}
}

// ListenAndServe opens a TCP listener on the configured address and
// runs the accept loop until ctx is canceled or the listener fails.
// At most cfg.workerCount sessions run concurrently; while every worker
// is busy the loop blocks handing off the connection it last accepted
// and does not call Accept, so a burst of clients queues in the
// kernel's backlog rather than being refused.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.addr, err)
	}
	defer ln.Close()

	s.cfg.logger.Info("listening", "addr", ln.Addr().String())
	if s.onListen != nil {
		s.onListen(ln.Addr().String())
	}

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	group := &errgroup.Group{}
	group.SetLimit(s.cfg.workerCount)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.cfg.logger.Warn("accept failed", "error", err)
			continue
		}
		group.Go(func() error {
			s.handle(conn)
			return nil
		})
	}

	group.Wait()
	return ctx.Err()
}

// handle runs one robot's full session to completion: transport setup,
// authentication, navigation, secret retrieval, logout. robotproto owns
// the protocol; handle only owns logging and socket lifetime.
func (s *Server) handle(netConn net.Conn) {
	remote := netConn.RemoteAddr().String()
	s.cfg.logger.Info("connected", "remote", remote)

	conn := robotproto.NewConn(netConn, s.cfg.shortTimeout, s.cfg.longTimeout)
	start := time.Now()

	secret, err := robotproto.RunSession(conn, s.cfg.keys)
	elapsed := time.Since(start)

	if err != nil {
		s.cfg.logger.Info("session ended", "remote", remote, "duration", elapsed, "error", err)
		return
	}
	s.cfg.logger.Info("session ended", "remote", remote, "duration", elapsed, "secret_len", len(secret))
}
