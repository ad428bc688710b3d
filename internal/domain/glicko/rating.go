package glicko

import (
	"math"
)

// Rating is a player's Glicko-2 rating state. It stores the internal-scale
// triple (mu, phi, sigma) plus the recent-performance index used for team
// balancing. Rating is a value type: updates return a new Rating and never
// mutate the receiver.
type Rating struct {
	mu    float64 // internal rating
	phi   float64 // internal deviation, always > 0
	sigma float64 // volatility, always > 0

	perfIndexEMA float64 // EMA of clipped performance z-scores
	perfGames    int     // matches contributing to the EMA
}

// NewRating constructs a Rating from public-scale values.
func NewRating(rating, rd, volatility float64, p Params) Rating {
	return Rating{
		mu:    (rating - p.BaseRating) / p.Scale,
		phi:   rd / p.Scale,
		sigma: volatility,
	}
}

// NewDefaultRating seeds a Rating for a player who has never been rated.
func NewDefaultRating(p Params) Rating {
	return NewRating(p.DefaultRating, p.DefaultRD, p.DefaultVolatility, p)
}

// Rating returns the public-scale rating.
func (r Rating) Rating(p Params) float64 { return r.mu*p.Scale + p.BaseRating }

// RD returns the public-scale rating deviation.
func (r Rating) RD(p Params) float64 { return r.phi * p.Scale }

// Volatility returns sigma, which is identical in both scales.
func (r Rating) Volatility() float64 { return r.sigma }

// Mu returns the internal-scale rating.
func (r Rating) Mu() float64 { return r.mu }

// Phi returns the internal-scale deviation.
func (r Rating) Phi() float64 { return r.phi }

// PerfIndexEMA returns the recent performance index.
func (r Rating) PerfIndexEMA() float64 { return r.perfIndexEMA }

// PerfGames returns the number of matches contributing to the index.
func (r Rating) PerfGames() int { return r.perfGames }

// G computes the deviation-discount factor g(phi) = 1/sqrt(1 + 3*phi^2/pi^2).
// It decreases monotonically in phi: uncertain opponents flatten expectations.
func (r Rating) G() float64 {
	return 1.0 / math.Sqrt(1.0+3.0*r.phi*r.phi/(math.Pi*math.Pi))
}

// ExpectedScore returns the logistic win probability against an opponent
// with internal rating muOpp discounted by gOpp.
func (r Rating) ExpectedScore(muOpp, gOpp float64) float64 {
	return 1.0 / (1.0 + math.Exp(-gOpp*(r.mu-muOpp)))
}

// DecayForInactivity widens the deviation of an under-participating player,
// applying phi' = sqrt(phi^2 + sigma^2) once per whole elapsed rating period
// and stopping as soon as the configured ceiling is reached. Growth is
// recomputed from the current phi each iteration. Active players and
// elapsed spans under one period are untouched.
func (r Rating) DecayForInactivity(roundsInWindow int, elapsedDays float64, p Params) Rating {
	if roundsInWindow >= p.MinRoundsForActivity {
		return r
	}
	periods := int(elapsedDays / p.DaysPerRatingPeriod)
	if periods < 1 {
		return r
	}

	out := r
	maxPhi := p.MaxRD / p.Scale
	for i := 0; i < periods; i++ {
		out.phi = math.Sqrt(out.phi*out.phi + out.sigma*out.sigma)
		if out.phi > maxPhi {
			out.phi = maxPhi
			break
		}
	}
	return out
}

// UpdateRecentPerformance folds one match's performance z-score into the
// recent performance index. The first match sets the index directly; below
// the target window the index behaves like a simple average; at or beyond
// the window it becomes a fixed-coefficient EMA.
func (r Rating) UpdateRecentPerformance(z float64, p Params) Rating {
	z = clamp(z, -p.MaxPerfZScore, p.MaxPerfZScore)

	var alpha float64
	switch {
	case r.perfGames <= 0:
		alpha = 1.0
	case float64(r.perfGames) < p.PerfTargetWindow:
		alpha = 1.0 / (float64(r.perfGames) + 1.0)
	default:
		alpha = 2.0 / (p.PerfTargetWindow + 1.0)
	}

	out := r
	out.perfIndexEMA = (1.0-alpha)*r.perfIndexEMA + alpha*z
	out.perfGames = r.perfGames + 1
	return out
}

// RecentRating projects the public rating forward by recent form. The boost
// is capped at min(2*RD, 200) rating points so uncertain players can move
// further than established ones.
func (r Rating) RecentRating(p Params) float64 {
	boost := r.perfIndexEMA * p.PerfToRating
	maxBoost := math.Min(2.0*r.RD(p), 200.0)
	boost = clamp(boost, -maxBoost, maxBoost)
	return r.Rating(p) + boost
}

// EffectiveRating blends the long-term rating with recent form, weighting
// toward recent form as deviation grows: w = 0.5 * RD^2/(RD^2 + C^2). The
// pull never exceeds half the weight spectrum.
func (r Rating) EffectiveRating(p Params) float64 {
	longTerm := r.Rating(p)
	recent := r.RecentRating(p)
	rd := r.RD(p)
	w := 0.5 * (rd * rd) / (rd*rd + p.RDScaleConstant*p.RDScaleConstant)
	return longTerm + w*(recent-longTerm)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}
