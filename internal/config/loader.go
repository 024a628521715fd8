package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if RANKY_CONFIG is set
//  3. env (prefix RANKY_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("RANKY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RANKY_PREFIX, RANKY_SCAN_WINDOW, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("RANKY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ranky_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Prefix == "":
		return nil, fmt.Errorf("%w: prefix must not be empty", ErrInvalidConfig)
	case cfg.ConfigChannel == "":
		return nil, fmt.Errorf("%w: config_channel must not be empty", ErrInvalidConfig)
	case cfg.ScanWindow <= 0:
		return nil, fmt.Errorf("%w: scan_window must be positive", ErrInvalidConfig)
	case cfg.FetchTimeoutMS <= 0:
		return nil, fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
