package repository

import (
	"github.com/okian/scrim/internal/domain/glicko"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeedRatings pre-populates the store, mainly for tests and simulations.
func WithSeedRatings(seed map[string]glicko.Rating) Option {
	return func(s *MemStore) {
		for id, r := range seed {
			s.ratings[id] = r
		}
		s.stale = true
	}
}
