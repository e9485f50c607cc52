package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Strategy identifies how the signal-contaminated top singular values are
// replaced when building the pseudo-noise spectrum.
type Strategy int

const (
	// StrategyImpute extrapolates the bulk edge into the replaced block using
	// power-law interpolation weights. This is the default and requires
	// 2k+1 < p so that a reference window below the block is available.
	StrategyImpute Strategy = iota
	// StrategyWinsorize flattens the replaced block to the largest surviving
	// value.
	StrategyWinsorize
	// StrategyTransportToZero sets the replaced block to zero.
	StrategyTransportToZero
)

// String returns the canonical tag for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyImpute:
		return "impute"
	case StrategyWinsorize:
		return "winsorize"
	case StrategyTransportToZero:
		return "zero"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a tag to its Strategy. Recognized tags are "impute",
// "winsorize" and "zero".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "impute":
		return StrategyImpute, nil
	case "winsorize":
		return StrategyWinsorize, nil
	case "zero":
		return StrategyTransportToZero, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

var (
	// ErrInvalidBound is returned when the rank bound k is not strictly below
	// the spectrum length, or when imputation is requested without room for
	// its reference window (2k+1 < p).
	ErrInvalidBound = errors.New("spectrum: rank bound out of range")

	// ErrUnknownStrategy is returned for a strategy outside the three
	// recognized values.
	ErrUnknownStrategy = errors.New("spectrum: unknown replacement strategy")
)

// imputeNorm is 2^(2/3) - 1, the normalization of the interpolation weights.
var imputeNorm = math.Pow(2, 2.0/3.0) - 1

// PseudoNoise returns the pseudo-noise spectrum: a sorted-ascending copy of
// values with the k largest entries replaced according to the strategy. The
// input slice is not mutated. With k = 0 the sorted copy is returned
// unchanged.
func PseudoNoise(values []float64, k int, s Strategy) ([]float64, error) {
	p := len(values)
	if k < 0 || k >= p {
		return nil, fmt.Errorf("%w: k=%d, spectrum length %d", ErrInvalidBound, k, p)
	}

	out := append([]float64(nil), values...)
	sort.Float64s(out)

	if k == 0 {
		return out, nil
	}

	switch s {
	case StrategyTransportToZero:
		for i := p - k; i < p; i++ {
			out[i] = 0
		}

	case StrategyWinsorize:
		pin := out[p-k-1]
		for i := p - k; i < p; i++ {
			out[i] = pin
		}

	case StrategyImpute:
		if 2*k+1 >= p {
			return nil, fmt.Errorf("%w: imputation needs 2k+1 < p, k=%d, spectrum length %d", ErrInvalidBound, k, p)
		}

		base := out[p-k-1]
		diff := out[p-k-1] - out[p-2*k-1]

		// l counts from the top: l=1 is the largest entry. The weight decays
		// with a 2/3 power law so the block extrapolates the bulk edge shape
		// instead of flattening it.
		for l := 1; l <= k; l++ {
			a := (1 - math.Pow(float64(l-1)/float64(k), 2.0/3.0)) / imputeNorm
			out[p-l] = base + a*diff
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}

	return out, nil
}
