package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/towerstack/internal/config"
	"github.com/tomz197/towerstack/internal/logging"
	"github.com/tomz197/towerstack/internal/loop"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logPath    string
		username   string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "towerstack",
		Short:        "Stack sliding blocks as high as you can, in your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning, err := config.LoadTuning(configPath)
			if err != nil {
				return err
			}

			// The terminal is in raw mode while playing, so logs only go to a file.
			var logOut io.Writer = io.Discard
			if logPath != "" {
				f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}
			logger := logging.New(logOut, logging.Level(verbose, config.GetEnv("LOG_LEVEL", "")))

			ctx := logging.WithLogger(cmd.Context(), logger)
			return play(ctx, loop.Options{
				Username: username,
				Tuning:   &tuning,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.GetEnv("TOWERSTACK_CONFIG", ""), "TOML tuning file")
	cmd.Flags().StringVar(&logPath, "log-file", "", "write logs to this file")
	cmd.Flags().StringVarP(&username, "name", "n", config.GetEnv("USER", "player"), "name shown on the leaderboard")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// play runs the local game with the terminal in raw mode.
func play(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, opts); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
