// Package worker runs match submissions through the rating engine.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/scrim/internal/domain/glicko"
	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/logger"
	"github.com/okian/scrim/pkg/metrics"
)

// Queue defines how workers receive matches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Match
}

// RatingStore is the slice of the repository workers need: pre-match reads
// and one atomic publish per match.
type RatingStore interface {
	GetOrDefault(ctx context.Context, playerID string) glicko.Rating
	SetAll(ctx context.Context, updates map[string]glicko.Rating) error
}

// Pool consumes matches from a queue and commits rating updates.
type Pool struct {
	queue   Queue
	store   RatingStore
	params  glicko.Params
	weights glicko.PerfWeights
	count   int

	wg     sync.WaitGroup
	cancel context.CancelFunc
	log    logger.Logger
}

// NewPool creates a worker pool of count workers.
func NewPool(count int, queue Queue, store RatingStore, params glicko.Params, weights glicko.PerfWeights) *Pool {
	if count < 1 {
		count = 1
	}
	return &Pool{
		queue:   queue,
		store:   store,
		params:  params,
		weights: weights,
		count:   count,
	}
}

// Start launches the workers. They run until the queue closes or ctx is
// canceled.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.log = logger.Named("worker")
	metrics.UpdateWorkerCount(p.count)

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

// Stop cancels the workers and waits for them to drain.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()

	ch := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if err := p.process(ctx, m); err != nil {
				metrics.RecordWorkerError()
				p.log.Error(ctx, "match processing failed",
					logger.String("matchID", m.MatchID),
					logger.Error(err),
				)
			}
		}
	}
}

// ErrEmptyTeam rejects matches where either side has no players.
var ErrEmptyTeam = errors.New("match has an empty team")

// process resolves pre-match ratings, runs the rating engine, and publishes
// all new ratings atomically.
func (p *Pool) process(ctx context.Context, m model.Match) error {
	start := time.Now()

	if len(m.TeamA) == 0 || len(m.TeamB) == 0 {
		return ErrEmptyTeam
	}

	scoreA, scoreB := outcomeScores(m.Outcome)

	match := glicko.Match{
		TeamA:  p.buildTeam(ctx, m.TeamA),
		TeamB:  p.buildTeam(ctx, m.TeamB),
		ScoreA: scoreA,
		ScoreB: scoreB,
	}

	outcome := glicko.ProcessMatch(match, p.params)

	// All players were rated against pre-match snapshots; the commit
	// publishes every new state as one unit.
	updates := make(map[string]glicko.Rating, len(m.TeamA)+len(m.TeamB))
	for i, pr := range m.TeamA {
		p.recordDelta(match.TeamA[i].Rating, outcome.TeamA[i])
		updates[pr.PlayerID] = outcome.TeamA[i]
	}
	for i, pr := range m.TeamB {
		p.recordDelta(match.TeamB[i].Rating, outcome.TeamB[i])
		updates[pr.PlayerID] = outcome.TeamB[i]
	}
	if err := p.store.SetAll(ctx, updates); err != nil {
		return err
	}

	metrics.RecordMatchProcessed()
	metrics.RecordRatingUpdateTime(float64(time.Since(start).Milliseconds()))
	p.log.Debug(ctx, "match processed",
		logger.String("matchID", m.MatchID),
		logger.Int("players", len(updates)),
	)
	return nil
}

func (p *Pool) buildTeam(ctx context.Context, team []model.PlayerResult) []glicko.MatchPlayer {
	out := make([]glicko.MatchPlayer, len(team))
	for i, pr := range team {
		perf := p.weights.PerfScore(pr.Kills, pr.Deaths, pr.Damage, pr.Objective)
		if pr.PerfScore != nil {
			perf = *pr.PerfScore
		}
		out[i] = glicko.MatchPlayer{
			Rating:    p.store.GetOrDefault(ctx, pr.PlayerID),
			PerfScore: perf,
		}
	}
	return out
}

func (p *Pool) recordDelta(before, after glicko.Rating) {
	delta := after.Rating(p.params) - before.Rating(p.params)
	if delta < 0 {
		delta = -delta
	}
	metrics.RecordRatingDelta(delta)
}

func outcomeScores(o model.Outcome) (scoreA, scoreB float64) {
	switch o {
	case model.OutcomeTeamA:
		return glicko.WinScore, glicko.LossScore
	case model.OutcomeTeamB:
		return glicko.LossScore, glicko.WinScore
	default:
		return glicko.DrawScore, glicko.DrawScore
	}
}
