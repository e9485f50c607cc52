package screenot

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cran/ScreeNOT/spectrum"
	"github.com/cran/ScreeNOT/threshold"
)

// Result holds the output of one adaptive hard thresholding run.
type Result struct {
	// Xest is the reconstructed low-rank estimate U diag(s') V^T, where s'
	// keeps only the singular values above Threshold.
	Xest *mat.Dense

	// Threshold is the optimal hard threshold located on the pseudo-noise
	// spectrum.
	Threshold float64

	// Rank is the number of singular values retained.
	Rank int
}

// Option configures a thresholding run.
type Option func(*config)

type config struct {
	strategy  spectrum.Strategy
	tolerance float64
}

func defaultConfig() config {
	return config{
		strategy:  spectrum.StrategyImpute,
		tolerance: threshold.DefaultTolerance,
	}
}

// WithStrategy selects the pseudo-noise replacement strategy.
func WithStrategy(s spectrum.Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithTolerance sets the absolute tolerance of the threshold search.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.tolerance = eps
		}
	}
}

// AdaptiveHardThreshold factorizes a, locates the optimal hard threshold for
// its singular values and returns the reconstructed low-rank estimate along
// with the threshold and the retained rank. k is the caller's upper bound on
// the number of signal components and must be strictly below min(rows, cols).
func AdaptiveHardThreshold(a mat.Matrix, k int, opts ...Option) (*Result, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("screenot: SVD factorization failed")
	}

	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rows, cols := a.Dims()

	return run(&u, values, &v, rows, cols, k, opts)
}

// AdaptiveHardThresholdSVD runs the pipeline on a precomputed thin SVD
// triple: u is rows x m, v is cols x m, with m = len(values) = min(rows,
// cols). The singular values may be in any order; they are re-sorted
// internally when building the pseudo-noise spectrum.
func AdaptiveHardThresholdSVD(u *mat.Dense, values []float64, v *mat.Dense, k int, opts ...Option) (*Result, error) {
	rows, _ := u.Dims()
	cols, _ := v.Dims()

	return run(u, values, v, rows, cols, k, opts)
}

func run(u *mat.Dense, values []float64, v *mat.Dense, rows, cols, k int, opts []Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	noise, err := spectrum.PseudoNoise(values, k, cfg.strategy)
	if err != nil {
		return nil, err
	}

	topt, err := threshold.Solve(noise, aspectRatio(rows, cols), threshold.WithTolerance(cfg.tolerance))
	if err != nil {
		return nil, err
	}

	// Retention mask: 1 keeps a singular value, 0 discards it.
	masked := append([]float64(nil), values...)
	mask := make([]float64, len(values))

	rank := 0

	for i, s := range values {
		if s > topt {
			mask[i] = 1
			rank++
		}
	}

	vecmath.MulBlockInPlace(masked, mask)

	var xest mat.Dense
	xest.Product(u, mat.NewDiagDense(len(masked), masked), v.T())

	return &Result{Xest: &xest, Threshold: topt, Rank: rank}, nil
}

// aspectRatio returns min(rows, cols) / max(rows, cols).
func aspectRatio(rows, cols int) float64 {
	if rows < cols {
		return float64(rows) / float64(cols)
	}

	return float64(cols) / float64(rows)
}
