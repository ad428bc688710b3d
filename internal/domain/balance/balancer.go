// Package balance splits a player pool into two fair teams.
//
// The search enumerates two-way partitions of the pool, scoring each by a
// weighted fairness objective over effective ratings and deviation
// aggregates, under optional hard constraints (top-2 separation, seeding the
// top player into the smaller team on uneven splits).
package balance

import (
	"math"
	"sort"

	"github.com/okian/scrim/internal/domain/glicko"
)

// Player is one entry in the balancing pool. IDs must be unique within a
// single Balance call.
type Player struct {
	ID     string
	Rating glicko.Rating

	effectiveRating float64
	pureRating      float64
	rd              float64
}

// Assignment is the result of a balancing run: two disjoint id lists
// covering the input pool, the objective value and its components, and
// search observability fields.
type Assignment struct {
	Team0 []string
	Team1 []string

	// Objective and its components. Differences are per-player averages so
	// uneven splits compare fairly.
	Objective       float64
	StrengthDiff    float64
	UncertaintyDiff float64
	PureRatingDiff  float64

	// Raw per-team sums.
	Team0Strength    float64
	Team1Strength    float64
	Team0Uncertainty float64
	Team1Uncertainty float64

	// CombinationsTried counts fully evaluated partitions.
	// BudgetExhausted marks a best-effort result cut short by the budget.
	CombinationsTried int
	BudgetExhausted   bool
}

// Balance searches for the fairest two-way split of players. With fewer
// than two players balancing is undefined and an empty Assignment is
// returned. For odd pools team 0 is the smaller team.
func Balance(players []Player, cfg Config, params glicko.Params) Assignment {
	if len(players) < 2 {
		return Assignment{}
	}

	pool := make([]Player, len(players))
	copy(pool, players)
	for i := range pool {
		pool[i].effectiveRating = pool[i].Rating.EffectiveRating(params)
		pool[i].pureRating = pool[i].Rating.Rating(params)
		pool[i].rd = pool[i].Rating.RD(params)
	}

	// Sort descending by effective rating so indices 0 and 1 are the top
	// two players for constraint checks.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].effectiveRating > pool[j].effectiveRating
	})

	teamSize := len(pool) / 2
	uneven := len(pool)%2 != 0

	s := &search{
		pool:     pool,
		cfg:      cfg,
		teamSize: teamSize,
		best: bestResult{
			objective:       math.MaxFloat64,
			pureRatingDiff:  math.MaxFloat64,
			uncertaintyDiff: math.MaxFloat64,
		},
	}

	start := 0
	if uneven && cfg.PutTopPlayerInSmallerTeam {
		s.current = append(s.current, 0)
		start = 1
	}

	s.generate(start)

	return s.assemble()
}

// bestResult tracks the minimizer plus the tie-break keys it won on.
type bestResult struct {
	team0           []int
	objective       float64
	pureRatingDiff  float64
	uncertaintyDiff float64
	found           bool
}

type search struct {
	pool     []Player
	cfg      Config
	teamSize int

	current []int
	tried   int
	best    bestResult
}

// generate enumerates ordered combinations of indices for team 0 starting at
// start, pruning constraint violations and stopping at the budget.
func (s *search) generate(start int) {
	if s.tried >= s.cfg.MaxCombinations {
		return
	}

	if len(s.current) == s.teamSize {
		s.tried++
		s.evaluate()
		return
	}

	needed := s.teamSize - len(s.current)
	if len(s.pool)-start < needed {
		return
	}

	for i := start; i < len(s.pool); i++ {
		if s.cfg.SeparateTopPlayers && s.violatesTopPair(i) {
			continue
		}

		s.current = append(s.current, i)
		s.generate(i + 1)
		s.current = s.current[:len(s.current)-1]

		if s.tried >= s.cfg.MaxCombinations {
			return
		}
	}
}

// violatesTopPair reports whether adding index i would put both top-2
// players on team 0.
func (s *search) violatesTopPair(i int) bool {
	if i != 0 && i != 1 {
		return false
	}
	other := 1 - i
	for _, idx := range s.current {
		if idx == other {
			return true
		}
	}
	return false
}

func (s *search) evaluate() {
	team1 := s.complement(s.current)

	// The construction prunes top-2 pairs on team 0; the complement can
	// still collect both when neither was picked.
	if s.cfg.SeparateTopPlayers && (hasBoth(s.current, 0, 1) || hasBoth(team1, 0, 1)) {
		return
	}

	strength0, uncertainty0, pure0 := s.teamSums(s.current)
	strength1, uncertainty1, pure1 := s.teamSums(team1)

	n0 := float64(len(s.current))
	n1 := float64(len(team1))

	strengthDiff := math.Abs(strength0/n0 - strength1/n1)
	uncertaintyDiff := math.Abs(uncertainty0/math.Sqrt(n0) - uncertainty1/math.Sqrt(n1))
	objective := strengthDiff + s.cfg.Lambda*uncertaintyDiff

	pureDiff := math.Abs(pure0/n0 - pure1/n1)
	rawUncertaintyDiff := math.Abs(uncertainty0 - uncertainty1)

	better := false
	switch {
	case objective < s.best.objective:
		better = true
	case objective == s.best.objective && pureDiff < s.best.pureRatingDiff:
		better = true
	case objective == s.best.objective && pureDiff == s.best.pureRatingDiff &&
		rawUncertaintyDiff < s.best.uncertaintyDiff:
		better = true
	}

	if better {
		s.best = bestResult{
			team0:           append([]int(nil), s.current...),
			objective:       objective,
			pureRatingDiff:  pureDiff,
			uncertaintyDiff: rawUncertaintyDiff,
			found:           true,
		}
	}
}

func (s *search) complement(team0 []int) []int {
	inTeam0 := make(map[int]bool, len(team0))
	for _, idx := range team0 {
		inTeam0[idx] = true
	}
	out := make([]int, 0, len(s.pool)-len(team0))
	for i := range s.pool {
		if !inTeam0[i] {
			out = append(out, i)
		}
	}
	return out
}

func (s *search) teamSums(indices []int) (strength, uncertainty, pure float64) {
	sumSquares := 0.0
	for _, idx := range indices {
		strength += s.pool[idx].effectiveRating
		pure += s.pool[idx].pureRating
		sumSquares += s.pool[idx].rd * s.pool[idx].rd
	}
	return strength, math.Sqrt(sumSquares), pure
}

func hasBoth(indices []int, a, b int) bool {
	hasA, hasB := false, false
	for _, idx := range indices {
		if idx == a {
			hasA = true
		}
		if idx == b {
			hasB = true
		}
	}
	return hasA && hasB
}

// assemble builds the public Assignment from the best partition found.
func (s *search) assemble() Assignment {
	out := Assignment{
		CombinationsTried: s.tried,
		BudgetExhausted:   s.tried >= s.cfg.MaxCombinations,
	}
	if !s.best.found {
		return out
	}

	team1 := s.complement(s.best.team0)

	for _, idx := range s.best.team0 {
		out.Team0 = append(out.Team0, s.pool[idx].ID)
	}
	for _, idx := range team1 {
		out.Team1 = append(out.Team1, s.pool[idx].ID)
	}

	strength0, uncertainty0, pure0 := s.teamSums(s.best.team0)
	strength1, uncertainty1, pure1 := s.teamSums(team1)

	n0 := float64(len(s.best.team0))
	n1 := float64(len(team1))

	out.Team0Strength = strength0
	out.Team1Strength = strength1
	out.Team0Uncertainty = uncertainty0
	out.Team1Uncertainty = uncertainty1

	out.StrengthDiff = math.Abs(strength0/n0 - strength1/n1)
	out.UncertaintyDiff = math.Abs(uncertainty0/math.Sqrt(n0) - uncertainty1/math.Sqrt(n1))
	out.Objective = out.StrengthDiff + s.cfg.Lambda*out.UncertaintyDiff
	out.PureRatingDiff = math.Abs(pure0/n0 - pure1/n1)

	return out
}
