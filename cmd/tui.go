package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tidyx/internal/formatter"
	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/desertthunder/tidyx/internal/tasks"
	"github.com/desertthunder/tidyx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for organizing a folder.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	pace := time.Duration(r.config.Organizer.PaceMS) * time.Millisecond
	engine := r.engine(tasks.Options{Pace: pace, DryRun: cmd.Bool("dry-run")})

	model := ui.NewModel(ctx, engine, r.config.Table(), r.targetPath(cmd))
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := final.(*ui.Model); ok && m.Result() != nil {
		return r.writePlain("%s\n", formatter.SummaryLine(m.Result()))
	}
	return nil
}
