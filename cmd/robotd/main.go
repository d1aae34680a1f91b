// Command robotd serves the robot remote-control protocol on a TCP
// socket. It binds 127.0.0.1:6969 by default, four workers, and the
// default short/long timeout regimes and key table.
//
// Run with: go run ./cmd/robotd
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/coregx/robotnav/server"
)

func main() {
	srv := server.New()

	slog.Info("starting robotd")
	if err := srv.ListenAndServe(context.Background()); err != nil {
		slog.Error("robotd exited", "error", err)
		os.Exit(1)
	}
}
