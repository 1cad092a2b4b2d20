// Package loop wires a local game: an in-process server and a single client
// running on the given terminal streams.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/draw"
	"github.com/tomz197/towerstack/internal/logging"
	"github.com/tomz197/towerstack/internal/loop/client"
	"github.com/tomz197/towerstack/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Username     string
	Tuning       *config.Tuning
	TermSizeFunc draw.TermSizeFunc
}

// Run starts the standard Input → Update → Draw cycle against a private
// server. Blocks until the player quits or ctx is cancelled. Logs go to the
// logger attached to ctx with logging.WithLogger.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logging.FromContext(ctx)
	logger.Info("starting local game", "user", opts.Username)

	srv := server.NewServer(server.WithLogger(logger))
	go srv.Run(ctx)

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Tuning:       opts.Tuning,
		Logger:       logger,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		srv.Shutdown(0)
		return <-errCh
	}
}
