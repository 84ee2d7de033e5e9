package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/desertthunder/tidyx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// EngineFactory builds the organize engine for a single command invocation.
type EngineFactory func(logger *log.Logger, opts tasks.Options) tasks.Engine

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	newEngine  EngineFactory
	lockDir    string
	styled     bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	NewEngine  EngineFactory
	LockDir    string // Directory for per-folder lock files; defaults to the OS temp dir
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewEngine == nil {
		opts.NewEngine = func(logger *log.Logger, o tasks.Options) tasks.Engine {
			return tasks.NewOrganizer(logger, o)
		}
	}
	if opts.LockDir == "" {
		opts.LockDir = os.TempDir()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		newEngine:  opts.NewEngine,
		lockDir:    opts.LockDir,
		styled:     shared.IsTerminal(opts.Output),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		organizeCommand, tuiCommand, categoriesCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// loadConfig resolves --config before any command runs. A missing file means defaults.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	config, err := shared.ResolveConfig(path)
	if err != nil {
		return ctx, err
	}

	r.config = config
	r.configPath = path

	level := config.Level()
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	r.logger.Debug("configuration resolved", "path", path, "categories", len(config.Categories))
	return ctx, nil
}

// targetPath returns the positional path argument or the configured default.
func (r *Runner) targetPath(cmd *cli.Command) string {
	if p := strings.TrimSpace(cmd.StringArg("path")); p != "" {
		return shared.ExpandHome(p)
	}
	return r.config.StartPath()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
