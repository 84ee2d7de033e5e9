package main

import (
	"context"
	"os"

	"github.com/desertthunder/tidyx/internal/formatter"
	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Categories prints the active classification table in match order.
func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	table := r.config.Table()

	for _, warning := range formatter.DuplicateWarnings(table) {
		r.logger.Warn(warning)
	}

	if cmd.Bool("json") {
		return r.writeJSON(table, true)
	}

	return r.writePlain("%s\n", formatter.RenderCategories(table, r.styled))
}

// ConfigInit writes the example configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = shared.DefaultConfigPath()
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("Wrote example configuration to %s\n", path)
}

// ConfigPath prints the configuration file in use and whether it exists.
func (r *Runner) ConfigPath(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = shared.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		return r.writePlain("%s (not found, using built-in defaults)\n", path)
	}
	return r.writePlain("%s\n", path)
}
