// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/scrim/internal/domain/balance"
	"github.com/okian/scrim/internal/domain/dedupe"
	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/metrics"
)

// Dependencies required by HTTP handlers. The interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a match for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, m model.Match) bool

	// Balance splits a roster of player ids into two fair teams.
	Balance(ctx context.Context, playerIDs []string, overrides BalanceOverrides) balance.Assignment

	// Read operations expose rating data.
	TopN(ctx context.Context, n int) ([]model.RatingEntry, error)
	Rank(ctx context.Context, playerID string) (model.RatingEntry, error)
}

// BalanceOverrides carries optional per-request balancer settings; nil
// fields fall back to service configuration.
type BalanceOverrides struct {
	Lambda                    *float64
	SeparateTopPlayers        *bool
	PutTopPlayerInSmallerTeam *bool
	MaxCombinations           *int
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]any
}

// Server wires HTTP routes for the rating API.
type Server struct {
	health      *HealthHandler
	stats       *StatsHandler
	matches     *MatchesHandler
	balanceH    *BalanceHandler
	leaderboard *LeaderboardHandler
	rating      *RatingHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		health:      NewHealthHandler(),
		stats:       NewStatsHandler(statsProvider),
		matches:     NewMatchesHandler(deps),
		balanceH:    NewBalanceHandler(deps),
		leaderboard: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rating:      NewRatingHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.health.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.stats.HandleStats, "stats"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matches.HandlePostMatch, "matches"))
	mux.HandleFunc("/balance", MetricsMiddleware(s.balanceH.HandlePostBalance, "balance"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboard.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rating/", MetricsMiddleware(s.rating.HandleGetRating, "rating"))
	mux.Handle("/metrics", metrics.Handler())
}

type ackResponse struct {
	Status    string `json:"status"`
	MatchID   string `json:"match_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404 without coupling
// to a specific package.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf interface{ NotFound() bool }
	if errors.As(err, &nf) {
		return nf.NotFound()
	}
	return errors.Is(err, ErrNotFound) || containsNotFound(err.Error())
}

func containsNotFound(msg string) bool {
	return msg == "player not found" || msg == "not found"
}
