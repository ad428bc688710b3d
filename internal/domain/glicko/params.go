// Package glicko implements a team-aware Glicko-2 rating engine.
//
// Each team is reduced to a single "virtual opponent" (aggregated mean and
// deviation) so the classic per-player Glicko-2 step can be reused for
// team-vs-team matches. Per-match performance relative to teammates scales
// the rating change through a bounded, sign-aware factor.
package glicko

// Params carries every tunable of the rating engine. A Params value is
// passed explicitly into each entry point; there is no process-wide mutable
// state, so tests can run differing parameter sets side by side.
type Params struct {
	// Scale converts between the public (Glicko-1) and internal (Glicko-2)
	// rating scales: rating = mu*Scale + BaseRating.
	Scale float64

	// BaseRating is the public-scale rating of mu = 0.
	BaseRating float64

	// DefaultRating, DefaultRD and DefaultVolatility seed unrated players.
	DefaultRating    float64
	DefaultRD        float64
	DefaultVolatility float64

	// Tau controls how quickly volatility can change.
	Tau float64

	// Convergence is the volatility solver's bracket-width tolerance.
	Convergence float64

	// Beta controls how strongly the performance z-score scales rating
	// changes: f = 1 + Beta*sign(deltaMu)*z.
	Beta float64

	// FMin and FMax bound the performance scaling factor.
	FMin float64
	FMax float64

	// Epsilon is added to the performance standard deviation to avoid
	// dividing by zero on a team with identical scores.
	Epsilon float64

	// ClampRatingChange enables bounding |mu' - mu| to MaxRatingChange
	// (internal scale).
	ClampRatingChange bool
	MaxRatingChange   float64

	// MinRD and MaxRD bound the public-scale deviation. MaxRD caps
	// inactivity decay.
	MinRD float64
	MaxRD float64

	// DaysPerRatingPeriod and MinRoundsForActivity drive inactivity decay.
	DaysPerRatingPeriod  float64
	MinRoundsForActivity int

	// PerfTargetWindow is the EMA window (games) for the recent
	// performance index.
	PerfTargetWindow float64

	// PerfToRating converts one sigma of performance index into rating
	// points when computing the recent rating.
	PerfToRating float64

	// RDScaleConstant controls how strongly deviation pulls the effective
	// rating toward recent form.
	RDScaleConstant float64

	// MaxPerfZScore clips performance z-scores fed into the EMA.
	MaxPerfZScore float64
}

// Default parameter values, following the classic Glicko-2 constants.
const (
	defaultScale       = 173.7178
	defaultBaseRating  = 1400.0
	defaultRD          = 350.0
	defaultVolatility  = 0.06
	defaultTau         = 0.5
	defaultConvergence = 1e-6

	defaultBeta    = 0.2
	defaultFMin    = 0.5
	defaultFMax    = 1.5
	defaultEpsilon = 1e-6

	defaultMaxRatingChange = 1.73

	defaultMinRD                = 30.0
	defaultDaysPerRatingPeriod  = 7.0
	defaultMinRoundsForActivity = 3

	defaultPerfTargetWindow = 10.0
	defaultPerfToRating     = 80.0
	defaultRDScaleConstant  = 80.0
	defaultMaxPerfZScore    = 3.0
)

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		Scale:                defaultScale,
		BaseRating:           defaultBaseRating,
		DefaultRating:        defaultBaseRating,
		DefaultRD:            defaultRD,
		DefaultVolatility:    defaultVolatility,
		Tau:                  defaultTau,
		Convergence:          defaultConvergence,
		Beta:                 defaultBeta,
		FMin:                 defaultFMin,
		FMax:                 defaultFMax,
		Epsilon:              defaultEpsilon,
		ClampRatingChange:    true,
		MaxRatingChange:      defaultMaxRatingChange,
		MinRD:                defaultMinRD,
		MaxRD:                defaultRD,
		DaysPerRatingPeriod:  defaultDaysPerRatingPeriod,
		MinRoundsForActivity: defaultMinRoundsForActivity,
		PerfTargetWindow:     defaultPerfTargetWindow,
		PerfToRating:         defaultPerfToRating,
		RDScaleConstant:      defaultRDScaleConstant,
		MaxPerfZScore:        defaultMaxPerfZScore,
	}
}

// Option applies a configuration option to a Params value.
type Option func(*Params)

// WithScale overrides the public/internal scale factor.
func WithScale(scale float64) Option {
	return func(p *Params) {
		if scale > 0 {
			p.Scale = scale
		}
	}
}

// WithBaseRating overrides the public-scale base rating.
func WithBaseRating(base float64) Option {
	return func(p *Params) {
		p.BaseRating = base
		p.DefaultRating = base
	}
}

// WithTau overrides the volatility system constant.
func WithTau(tau float64) Option {
	return func(p *Params) {
		if tau > 0 {
			p.Tau = tau
		}
	}
}

// WithBeta overrides the performance scaling sensitivity.
func WithBeta(beta float64) Option {
	return func(p *Params) {
		if beta >= 0 {
			p.Beta = beta
		}
	}
}

// WithScalingBounds overrides the performance factor clamp range.
func WithScalingBounds(fMin, fMax float64) Option {
	return func(p *Params) {
		if fMin > 0 && fMax > fMin {
			p.FMin = fMin
			p.FMax = fMax
		}
	}
}

// WithRatingClamp enables or disables the per-match rating change clamp.
func WithRatingClamp(enabled bool, maxChange float64) Option {
	return func(p *Params) {
		p.ClampRatingChange = enabled
		if maxChange > 0 {
			p.MaxRatingChange = maxChange
		}
	}
}

// WithDefaults overrides the seed values for unrated players.
func WithDefaults(rating, rd, volatility float64) Option {
	return func(p *Params) {
		p.DefaultRating = rating
		if rd > 0 {
			p.DefaultRD = rd
			p.MaxRD = rd
		}
		if volatility > 0 {
			p.DefaultVolatility = volatility
		}
	}
}

// NewParams builds a Params from defaults plus options.
func NewParams(opts ...Option) Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
