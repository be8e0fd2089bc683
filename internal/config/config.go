// Package config loads exporter configuration from PHAB_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the connection and output settings for one export run. All four
// partition connections share the same host, port, user, and token; only the
// database name varies.
type Config struct {
	Host      string `koanf:"url"`
	Port      string `koanf:"port"`
	Namespace string `koanf:"namespace"`
	User      string `koanf:"user"`
	Token     string `koanf:"token"`
	OutputDir string `koanf:"output_dir"`
}

// Load reads PHAB_URL, PHAB_PORT, PHAB_NAMESPACE, PHAB_USER, PHAB_TOKEN, and
// PHAB_OUTPUT_DIR over built-in defaults. PHAB_TOKEN is required; a missing
// token is a fatal configuration error reported before any connection is
// attempted.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Defaults match the bitnami Phabricator compose setup used for local runs.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"url":        "127.0.0.1",
		"port":       "3307",
		"namespace":  "bitnami_phabricator",
		"user":       "root",
		"output_dir": ".",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider("PHAB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PHAB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("PHAB_TOKEN is required")
	}

	return &cfg, nil
}
