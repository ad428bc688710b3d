package glicko

import "math"

// TeamStats is the "virtual opponent" a team reduces to: an aggregated
// internal rating and deviation. Computed fresh per match, never stored.
type TeamStats struct {
	Mu   float64
	Phi  float64
	Size int
}

// AggregateTeam reduces a team to its virtual-opponent stats. An empty team
// yields the zero value; callers must not feed a zero aggregate into the
// rating update, since a zero deviation makes the expected score degenerate.
func AggregateTeam(team []Rating) TeamStats {
	stats := TeamStats{Size: len(team)}
	if stats.Size == 0 {
		return stats
	}
	stats.Mu = teamMu(team)
	stats.Phi = teamPhi(team)
	return stats
}

func teamMu(team []Rating) float64 {
	sum := 0.0
	for _, r := range team {
		sum += r.mu
	}
	return sum / float64(len(team))
}

// teamPhi aggregates member deviations as sqrt(sum(phi_i^2) / n^2). The n^2
// denominator deliberately treats a larger team as a more certain composite
// opponent; this is not a plain root-mean-square.
func teamPhi(team []Rating) float64 {
	sumSquares := 0.0
	for _, r := range team {
		sumSquares += r.phi * r.phi
	}
	n := float64(len(team))
	return math.Sqrt(sumSquares / (n * n))
}
