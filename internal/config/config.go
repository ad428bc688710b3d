// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; file and env layers override via Load.
// - External errors are wrapped through this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration for the rating service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory match queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of match processing workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the match-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// Rating engine parameters.
	BaseRating        float64 `koanf:"base_rating"`
	DefaultRD         float64 `koanf:"default_rd"`
	DefaultVolatility float64 `koanf:"default_volatility"`
	Tau               float64 `koanf:"tau"`
	Beta              float64 `koanf:"beta"`
	ScaleMin          float64 `koanf:"scale_min"`
	ScaleMax          float64 `koanf:"scale_max"`
	ClampRatingChange bool    `koanf:"clamp_rating_change"`
	MaxRatingChange   float64 `koanf:"max_rating_change"`

	// Performance score weights for raw combat stats.
	KillWeight      float64 `koanf:"kill_weight"`
	DeathWeight     float64 `koanf:"death_weight"`
	DamageWeight    float64 `koanf:"damage_weight"`
	ObjectiveWeight float64 `koanf:"objective_weight"`

	// Balancer parameters.
	Lambda                    float64 `koanf:"lambda"`
	SeparateTopPlayers        bool    `koanf:"separate_top_players"`
	PutTopPlayerInSmallerTeam bool    `koanf:"put_top_player_in_smaller_team"`
	MaxCombinations           int     `koanf:"max_combinations"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          100_000,
		MaxLeaderboardLimit: 100,

		BaseRating:        1400.0,
		DefaultRD:         350.0,
		DefaultVolatility: 0.06,
		Tau:               0.5,
		Beta:              0.2,
		ScaleMin:          0.5,
		ScaleMax:          1.5,
		ClampRatingChange: true,
		MaxRatingChange:   1.73,

		KillWeight:      1.0,
		DeathWeight:     -1.0,
		DamageWeight:    1.0 / 220.0,
		ObjectiveWeight: 0.0,

		Lambda:                    0.8,
		SeparateTopPlayers:        true,
		PutTopPlayerInSmallerTeam: true,
		MaxCombinations:           10_000,
	}
}
