// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	"github.com/okian/scrim/internal/adapters/http/api"
	matchqueue "github.com/okian/scrim/internal/adapters/mq/queue"
	workerpool "github.com/okian/scrim/internal/adapters/mq/worker"
	"github.com/okian/scrim/internal/adapters/repository"
	"github.com/okian/scrim/internal/domain/balance"
	"github.com/okian/scrim/internal/domain/dedupe"
	"github.com/okian/scrim/internal/domain/glicko"
	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/logger"
	"github.com/okian/scrim/pkg/metrics"
)

// Service wires the match pipeline and the balancer behind the HTTP API.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	deduper dedupe.Deduper
	queue   matchqueue.Queue
	pool    *workerpool.Pool

	params      glicko.Params
	perfWeights glicko.PerfWeights
	balanceCfg  balance.Config

	workerCount int
	queueSize   int
	dedupeSize  int

	started bool
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of match processing workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the match queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the idempotency cache bound.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithParams sets the rating engine parameters.
func WithParams(p glicko.Params) Option {
	return func(s *Service) {
		s.params = p
	}
}

// WithPerfWeights sets the combat-stat performance weighting.
func WithPerfWeights(w glicko.PerfWeights) Option {
	return func(s *Service) {
		s.perfWeights = w
	}
}

// WithBalanceConfig sets the default balancer configuration.
func WithBalanceConfig(cfg balance.Config) Option {
	return func(s *Service) {
		s.balanceCfg = cfg
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		params:      glicko.DefaultParams(),
		perfWeights: glicko.DefaultPerfWeights(),
		balanceCfg:  balance.NewConfig(),
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  100_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the pipeline and launches the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Named("service")
	}

	s.store = repository.NewMemStore(s.params)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = matchqueue.NewInMemoryQueue(matchqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.store, s.params, s.perfWeights)
	s.pool.Start(ctx)

	s.started = true
	s.log.Info(ctx, "rating service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.log.Info(ctx, "stopping rating service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.log.Info(ctx, "rating service stopped")
}

// SeenAndRecord atomically checks and records a match id.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordMatchDuplicate()
	}
	return seen
}

// Unrecord removes a match id from the seen set.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of tracked match ids.
func (s *Service) Size() int {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a match for asynchronous rating processing.
func (s *Service) Enqueue(ctx context.Context, m model.Match) bool {
	ok := s.queue.Enqueue(ctx, m)
	if !ok {
		s.log.Warn(ctx, "match enqueue rejected",
			logger.String("matchID", m.MatchID),
			logger.Int("queueLen", s.queue.Len(ctx)),
		)
	}
	return ok
}

// Balance splits a roster into two fair teams using current store ratings.
// Unknown ids are balanced with default ratings.
func (s *Service) Balance(ctx context.Context, playerIDs []string, overrides api.BalanceOverrides) balance.Assignment {
	cfg := s.balanceCfg
	if overrides.Lambda != nil {
		cfg.Lambda = *overrides.Lambda
	}
	if overrides.SeparateTopPlayers != nil {
		cfg.SeparateTopPlayers = *overrides.SeparateTopPlayers
	}
	if overrides.PutTopPlayerInSmallerTeam != nil {
		cfg.PutTopPlayerInSmallerTeam = *overrides.PutTopPlayerInSmallerTeam
	}
	if overrides.MaxCombinations != nil {
		cfg.MaxCombinations = *overrides.MaxCombinations
	}

	players := make([]balance.Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = balance.Player{
			ID:     id,
			Rating: s.store.GetOrDefault(ctx, id),
		}
	}

	assignment := balance.Balance(players, cfg, s.params)

	metrics.RecordBalanceRequest()
	metrics.RecordBalanceCombinations(assignment.CombinationsTried)
	if assignment.BudgetExhausted {
		metrics.RecordBalanceBudgetExhausted()
		s.log.Warn(ctx, "balance budget exhausted",
			logger.Int("players", len(playerIDs)),
			logger.Int("combinationsTried", assignment.CombinationsTried),
		)
	}
	return assignment
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]model.RatingEntry, error) {
	return s.store.TopN(ctx, n)
}

// Rank returns the leaderboard entry for one player.
func (s *Service) Rank(ctx context.Context, playerID string) (model.RatingEntry, error) {
	return s.store.Rank(ctx, playerID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["totalPlayers"] = s.store.Count(ctx)
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return stats
}
