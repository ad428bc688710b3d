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

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SCRIM_CONFIG is set
//  3. env (prefix SCRIM_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCRIM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Env keys map SCRIM_QUEUE_SIZE -> queue_size; underscores are kept to
	// match the koanf tags on the struct.
	envProvider := env.Provider("SCRIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "scrim_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.Tau <= 0:
		return fmt.Errorf("%w: tau must be positive", ErrInvalidConfig)
	case cfg.DefaultRD <= 0:
		return fmt.Errorf("%w: default_rd must be positive", ErrInvalidConfig)
	case cfg.DefaultVolatility <= 0:
		return fmt.Errorf("%w: default_volatility must be positive", ErrInvalidConfig)
	case cfg.ScaleMin <= 0 || cfg.ScaleMax <= cfg.ScaleMin:
		return fmt.Errorf("%w: scale bounds must satisfy 0 < scale_min < scale_max", ErrInvalidConfig)
	case cfg.Lambda < 0:
		return fmt.Errorf("%w: lambda must not be negative", ErrInvalidConfig)
	case cfg.MaxCombinations <= 0:
		return fmt.Errorf("%w: max_combinations must be positive", ErrInvalidConfig)
	}
	return nil
}
