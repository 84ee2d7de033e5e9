package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Exit codes reported by tidyx.
const (
	exitOK         = 0
	exitFailure    = 1
	exitNotFound   = 2
	exitBadConfig  = 3
	exitInProgress = 4
	exitUsage      = 64
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := newApp(runner)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Error("tidyx failed", "error", err)
		cancel()
		os.Exit(exitCode(err))
	}
}

func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tidyx",
		Usage:   "Sort the files of a folder into category subfolders by extension",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   shared.DefaultConfigPath(),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   runner.loadConfig,
		Commands: runner.register(),
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, shared.ErrDirectoryNotFound):
		return exitNotFound
	case errors.Is(err, shared.ErrInvalidConfig), errors.Is(err, shared.ErrMissingConfig):
		return exitBadConfig
	case errors.Is(err, shared.ErrOrganizeInProgress):
		return exitInProgress
	case errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidFlag):
		return exitUsage
	default:
		return exitFailure
	}
}
