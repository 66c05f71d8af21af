package internal

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from the environment. Command-line flags
// override them.
type Config struct {
	DBPath         string `env:"HIITBEEP_DB"`
	Verbose        bool   `env:"HIITBEEP_VERBOSE"`
	SystemLanguage string `env:"LANG"`
}

// LoadConfig parses the environment into a Config
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath returns override when set, then the configured path, then
// the per-OS default
func (c Config) ResolveDBPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	paths, err := DetectDataPaths()
	if err != nil {
		return "", err
	}
	return paths.DatabasePath(), nil
}
