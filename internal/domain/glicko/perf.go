package glicko

import "math"

// PerfStats holds a team's raw performance distribution for one match.
type PerfStats struct {
	Mean   float64
	StdDev float64
	Size   int
}

// PerfSample is one player's normalized performance for one match.
type PerfSample struct {
	RawScore float64
	ZScore   float64
}

// ComputePerfStats returns the population mean and standard deviation of a
// team's raw performance scores. Epsilon is added to the deviation so a team
// with identical scores never divides by zero.
func ComputePerfStats(scores []float64, p Params) PerfStats {
	stats := PerfStats{Size: len(scores)}
	if stats.Size == 0 {
		stats.StdDev = p.Epsilon
		return stats
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	stats.Mean = sum / float64(stats.Size)

	variance := 0.0
	for _, s := range scores {
		d := s - stats.Mean
		variance += d * d
	}
	variance /= float64(stats.Size)
	stats.StdDev = math.Sqrt(variance) + p.Epsilon

	return stats
}

// NormalizeTeamPerformance converts raw scores into team-relative z-scores.
func NormalizeTeamPerformance(scores []float64, p Params) []PerfSample {
	stats := ComputePerfStats(scores, p)
	samples := make([]PerfSample, len(scores))
	for i, s := range scores {
		samples[i] = PerfSample{
			RawScore: s,
			ZScore:   (s - stats.Mean) / stats.StdDev,
		}
	}
	return samples
}

// ScalingFactor computes the sign-aware performance multiplier
// f = clamp(1 + beta*sign(deltaMu)*z, FMin, FMax). deltaMu is the unscaled
// rating change the Glicko-2 step would otherwise apply; a tie at zero
// resolves toward +1. Top performers gain more in wins and lose less in
// losses than weaker teammates, with the clamp keeping a single outlier from
// inverting or exploding the update.
func ScalingFactor(zScore, deltaMu float64, p Params) float64 {
	sign := 1.0
	if deltaMu < 0 {
		sign = -1.0
	}
	return clamp(1.0+p.Beta*sign*zScore, p.FMin, p.FMax)
}

// PerfWeights holds the raw-score weighting used to turn per-match combat
// stats into a single performance number.
type PerfWeights struct {
	Kill      float64
	Death     float64
	Damage    float64
	Objective float64
}

// DefaultPerfWeights returns the stock combat-stat weighting.
func DefaultPerfWeights() PerfWeights {
	return PerfWeights{
		Kill:      1.0,
		Death:     -1.0,
		Damage:    1.0 / 220.0,
		Objective: 0.0,
	}
}

// PerfScore collapses per-match combat stats into a raw performance score.
func (w PerfWeights) PerfScore(kills, deaths int, damage, objective float64) float64 {
	return float64(kills)*w.Kill +
		float64(deaths)*w.Death +
		damage*w.Damage +
		objective*w.Objective
}
