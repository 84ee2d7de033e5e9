package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tidyx/internal/formatter"
	"github.com/desertthunder/tidyx/internal/fsops"
	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// lockedEngine serializes runs on the same folder across processes.
type lockedEngine struct {
	runner *Runner
	next   tasks.Engine
}

var _ tasks.Engine = (*lockedEngine)(nil)

func (e *lockedEngine) Organize(ctx context.Context, path string, table models.Table, progress chan<- tasks.ProgressUpdate) (*tasks.RunResult, error) {
	lock, err := e.runner.acquireLock(path)
	if err != nil {
		return nil, err
	}
	defer e.runner.releaseLock(lock)

	return e.next.Organize(ctx, path, table, progress)
}

// engine builds the organize engine for one command, guarded by the per-folder lock.
func (r *Runner) engine(opts tasks.Options) tasks.Engine {
	return &lockedEngine{runner: r, next: r.newEngine(r.logger, opts)}
}

// Organize moves the files of a folder into category subfolders and prints the outcome.
func (r *Runner) Organize(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	path := r.targetPath(cmd)
	if err := fsops.CheckDirectoryAccess(path); err != nil {
		return err
	}

	table := r.config.Table()
	dryRun := cmd.Bool("dry-run")
	engine := r.engine(tasks.Options{Pace: cmd.Duration("pace"), DryRun: dryRun})

	r.logger.Info("organizing folder", "path", path, "dry_run", dryRun)

	showProgress := format == formatter.FormatTable && !cmd.Bool("quiet")
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tasks.Forward(progressCh, func(status string, fraction float64) {
			if showProgress {
				r.writePlain("[%3.0f%%] %s\n", fraction*100, status)
			}
		})
	}()

	result, err := engine.Organize(ctx, path, table, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if showProgress {
		r.writePlain("\n")
	}

	data, err := formatter.Render(result, format, r.styled)
	if err != nil {
		return err
	}
	if err := r.writeBytes(data); err != nil {
		return err
	}

	if result.Canceled {
		return fmt.Errorf("organize canceled after %d of %d files: %w", len(result.Results), result.Total, context.Canceled)
	}
	return nil
}
