// Package repository defines the player rating store interface and errors.
package repository

import (
	"context"

	"github.com/okian/scrim/internal/domain/glicko"
	"github.com/okian/scrim/internal/domain/model"
)

// Store provides read/write access to player rating state. Writes replace a
// player's rating wholesale; absence of an id means the player is unrated.
type Store interface {
	// Get returns the rating for a player.
	// Returns ErrNotFound if the player is unknown.
	Get(ctx context.Context, playerID string) (glicko.Rating, error)

	// GetOrDefault returns the rating for a player, seeding a default for
	// unknown ids without storing it.
	GetOrDefault(ctx context.Context, playerID string) glicko.Rating

	// SetAll replaces the ratings of every listed player atomically, so a
	// match's updates publish as one unit.
	SetAll(ctx context.Context, updates map[string]glicko.Rating) error

	// Rank returns the leaderboard entry for a player.
	// Returns ErrNotFound if the player is unknown.
	Rank(ctx context.Context, playerID string) (model.RatingEntry, error)

	// TopN returns the top-N entries ordered by public rating descending.
	TopN(ctx context.Context, n int) ([]model.RatingEntry, error)

	// Count returns the number of rated players.
	Count(ctx context.Context) int
}
