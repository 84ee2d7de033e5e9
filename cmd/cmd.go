// submodule cmd contains command definitions
package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// organizeCommand sorts a folder once and prints the outcome.
func organizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "organize",
		Aliases: []string{"run"},
		Usage:   "Move the files of a folder into category subfolders",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show where files would go without moving anything",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, csv or json",
				Value:   "table",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run result as JSON (same as --format json)",
			},
			&cli.DurationFlag{
				Name:  "pace",
				Usage: "Minimum delay between files",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not print per-file progress",
			},
		},
		Action: r.Organize,
	}
}

// tuiCommand returns the top-level TUI command for interactive organizing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI to organize a folder",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show where files would go without moving anything",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the screen",
				Value: filepath.Join(os.TempDir(), "tidyx-tui.log"),
			},
		},
		Action: r.TUI,
	}
}

// categoriesCommand prints the active classification table.
func categoriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "categories",
		Aliases: []string{"cats"},
		Usage:   "List categories and their extensions in match order",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Categories,
	}
}

// configCommand handles the configuration file.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration to --config",
				Action: r.ConfigInit,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file in use",
				Action: r.ConfigPath,
			},
		},
	}
}
