package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/scrim/internal/domain/glicko"
	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/metrics"
)

// MemStore is an in-memory Store. Ratings live in a map guarded by an
// RWMutex; the leaderboard is a sorted snapshot rebuilt lazily after writes.
// Ordering: rating DESC, then playerID ASC (deterministic).
//
// Lobby-scale populations keep the full re-sort cheap; a tree-backed index
// only pays off well past that.
type MemStore struct {
	mu      sync.RWMutex
	ratings map[string]glicko.Rating
	params  glicko.Params

	// snapshot is the sorted leaderboard; stale marks it for rebuild.
	snapshot []model.RatingEntry
	stale    bool
}

// NewMemStore creates an empty in-memory rating store.
func NewMemStore(params glicko.Params, opts ...Option) *MemStore {
	s := &MemStore{
		ratings: make(map[string]glicko.Rating),
		params:  params,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the rating for a player.
func (s *MemStore) Get(_ context.Context, playerID string) (glicko.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ratings[playerID]
	if !ok {
		return glicko.Rating{}, ErrNotFound
	}
	return r, nil
}

// GetOrDefault returns the rating for a player, or a fresh default rating
// for an unknown id. The default is not persisted; the player becomes rated
// only once a match commits.
func (s *MemStore) GetOrDefault(_ context.Context, playerID string) glicko.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.ratings[playerID]; ok {
		return r
	}
	return glicko.NewDefaultRating(s.params)
}

// SetAll replaces the ratings of every listed player under one lock, so no
// reader can observe a half-committed match.
func (s *MemStore) SetAll(_ context.Context, updates map[string]glicko.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range updates {
		s.ratings[id] = r
	}
	s.stale = true
	metrics.UpdatePlayersTotal(len(s.ratings))
	return nil
}

// Rank returns the leaderboard entry for a player.
func (s *MemStore) Rank(_ context.Context, playerID string) (model.RatingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildLocked()
	for _, e := range s.snapshot {
		if e.PlayerID == playerID {
			return e, nil
		}
	}
	return model.RatingEntry{}, ErrNotFound
}

// TopN returns the top-N leaderboard entries.
func (s *MemStore) TopN(_ context.Context, n int) ([]model.RatingEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildLocked()
	if n > len(s.snapshot) {
		n = len(s.snapshot)
	}
	out := make([]model.RatingEntry, n)
	copy(out, s.snapshot[:n])
	return out, nil
}

// Count returns the number of rated players.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}

// rebuildLocked refreshes the sorted snapshot if writes invalidated it.
// Callers must hold the write lock.
func (s *MemStore) rebuildLocked() {
	if !s.stale && s.snapshot != nil {
		return
	}

	entries := make([]model.RatingEntry, 0, len(s.ratings))
	for id, r := range s.ratings {
		entries = append(entries, model.RatingEntry{
			PlayerID:        id,
			Rating:          r.Rating(s.params),
			RD:              r.RD(s.params),
			Volatility:      r.Volatility(),
			EffectiveRating: r.EffectiveRating(s.params),
			Matches:         r.PerfGames(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	s.snapshot = entries
	s.stale = false
}
