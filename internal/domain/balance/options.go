package balance

// Default balancer configuration constants.
const (
	defaultLambda          = 0.8
	defaultMaxCombinations = 10000
)

// Config holds the balancer's tunables.
type Config struct {
	// Lambda weights the uncertainty-balance term of the objective.
	Lambda float64

	// SeparateTopPlayers forbids the two highest-rated players from
	// landing on the same team.
	SeparateTopPlayers bool

	// PutTopPlayerInSmallerTeam seeds the single best player into the
	// smaller team when the pool size is odd.
	PutTopPlayerInSmallerTeam bool

	// MaxCombinations bounds the partition search. Exceeding it yields a
	// best-effort result flagged on the Assignment.
	MaxCombinations int
}

// Option applies a configuration option to a Config.
type Option func(*Config)

// WithLambda sets the uncertainty-balance weight.
func WithLambda(lambda float64) Option {
	return func(c *Config) {
		if lambda >= 0 {
			c.Lambda = lambda
		}
	}
}

// WithSeparateTopPlayers toggles the top-2 separation constraint.
func WithSeparateTopPlayers(enabled bool) Option {
	return func(c *Config) {
		c.SeparateTopPlayers = enabled
	}
}

// WithTopPlayerInSmallerTeam toggles seeding the best player into the
// smaller team on uneven splits.
func WithTopPlayerInSmallerTeam(enabled bool) Option {
	return func(c *Config) {
		c.PutTopPlayerInSmallerTeam = enabled
	}
}

// WithMaxCombinations sets the search budget.
func WithMaxCombinations(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxCombinations = n
		}
	}
}

// NewConfig builds a Config from defaults plus options.
func NewConfig(opts ...Option) Config {
	c := Config{
		Lambda:                    defaultLambda,
		SeparateTopPlayers:        true,
		PutTopPlayerInSmallerTeam: true,
		MaxCombinations:           defaultMaxCombinations,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
