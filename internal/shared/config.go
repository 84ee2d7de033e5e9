package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidyx/internal/models"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Organizer  OrganizerConfig  `toml:"organizer"`
	Categories []CategoryConfig `toml:"categories"`
}

// OrganizerConfig contains settings for the organize operation and its shells.
type OrganizerConfig struct {
	DefaultPath string `toml:"default_path"`
	PaceMS      int    `toml:"pace_ms"`
	LogLevel    string `toml:"log_level"`
}

// CategoryConfig is a single entry of the classification table.
//
// Categories are an array of tables so that file order is preserved.
type CategoryConfig struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Sections missing from the file fall back to the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.Categories = nil

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if len(config.Categories) == 0 {
		config.Categories = DefaultConfig().Categories
	}

	if err := config.Table().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfigPath returns the per-user config location, or config.toml in the
// working directory when the user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "tidyx", "config.toml")
}

// ResolveConfig loads path when it exists and returns the defaults otherwise.
func ResolveConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// DefaultTable returns the classification table shipped in the embedded config.
func DefaultTable() models.Table {
	return DefaultConfig().Table()
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Table converts the configured categories into a normalized [models.Table].
func (c *Config) Table() models.Table {
	table := make(models.Table, 0, len(c.Categories))
	for _, cat := range c.Categories {
		table = append(table, models.Category{
			Name:       strings.TrimSpace(cat.Name),
			Extensions: append([]string(nil), cat.Extensions...),
		})
	}
	return table.Normalize()
}

// StartPath returns the directory suggested to the user before a run.
func (c *Config) StartPath() string {
	if p := strings.TrimSpace(c.Organizer.DefaultPath); p != "" {
		return ExpandHome(p)
	}
	return DefaultDownloadsDir()
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() log.Level {
	if c.Organizer.LogLevel == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.Organizer.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
