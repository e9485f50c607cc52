package threshold

import (
	"errors"
	"fmt"
)

// Objective is the target value of F at the optimal threshold, from the
// spiked-model asymptotics.
const Objective = -4.0

// DefaultTolerance is the absolute tolerance of the bisection phase.
const DefaultTolerance = 1e-5

// defaultMaxDoublings caps the bracket expansion phase. F approaches -2 for
// large y, so the cap only fires on non-finite evaluations.
const defaultMaxDoublings = 64

// ErrBracketExhausted is returned when bracket expansion fails to enclose
// the objective within the doubling budget.
var ErrBracketExhausted = errors.New("threshold: bracket expansion exhausted")

// Option configures the solver.
type Option func(*config)

type config struct {
	tolerance    float64
	maxDoublings int
}

func defaultConfig() config {
	return config{
		tolerance:    DefaultTolerance,
		maxDoublings: defaultMaxDoublings,
	}
}

// WithTolerance sets the absolute tolerance of the bisection phase.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.tolerance = eps
		}
	}
}

// WithMaxDoublings sets the bracket expansion budget.
func WithMaxDoublings(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDoublings = n
		}
	}
}

// Solve returns the y above the bulk edge where F(y; pseudoNoise, gamma)
// equals [Objective], located by exponential bracket expansion followed by
// bisection.
//
// F is monotone on the search domain for well-formed pseudo-noise spectra.
// Degenerate spectra (all entries equal, near-duplicate extreme values) can
// make F numerically unstable near the bulk edge; the solver then collapses
// toward the edge rather than reporting a distinct error.
func Solve(pseudoNoise []float64, gamma float64, opts ...Option) (float64, error) {
	if len(pseudoNoise) == 0 {
		return 0, fmt.Errorf("threshold: empty pseudo-noise spectrum")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := NewEvaluator(pseudoNoise, gamma)

	low := e.Edge()
	high := low + 2

	for doublings := 0; e.F(high) < Objective; doublings++ {
		if doublings >= cfg.maxDoublings {
			return 0, fmt.Errorf("%w: no sign change after %d doublings", ErrBracketExhausted, cfg.maxDoublings)
		}

		low = high
		high *= 2
	}

	mid := (high + low) / 2
	for high-low > cfg.tolerance {
		mid = (high + low) / 2
		if e.F(mid) < Objective {
			low = mid
		} else {
			high = mid
		}
	}

	return mid, nil
}
