// Package config handles the optional ralph config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Release registry defaults; the config file can point a fork at its own
// releases.
const (
	DefaultOwner = "lyonbot"
	DefaultRepo  = "ralph-cli"
)

// Config is the content of config.toml.
type Config struct {
	GitHub GitHub `toml:"github"`
}

// GitHub configures which repository releases are fetched from.
type GitHub struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
	Token string `toml:"token"`
}

// DefaultPath returns the expected config file location,
// e.g. ~/.config/ralph/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ralph", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := &Config{GitHub: GitHub{Owner: DefaultOwner, Repo: DefaultRepo}}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.GitHub.Owner == "" {
		cfg.GitHub.Owner = DefaultOwner
	}
	if cfg.GitHub.Repo == "" {
		cfg.GitHub.Repo = DefaultRepo
	}

	return cfg, nil
}
