// Package testutil provides shared helpers for tests: tolerance assertions
// and deterministic random matrix generators.
package testutil

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseMatrix returns a rows x cols matrix of i.i.d. N(0, sigma^2) entries
// drawn from a fixed seed. The same seed always produces the same matrix.
func NoiseMatrix(rows, cols int, sigma float64, seed uint64) *mat.Dense {
	normal := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewSource(seed)}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = normal.Rand()
	}

	return mat.NewDense(rows, cols, data)
}

// SpikedMatrix returns a rank-len(spikes) signal plus i.i.d. N(0, sigma^2)
// noise. Each spike s contributes s * u v^T with independent random unit
// vectors u and v, so the signal singular values approximate the spike
// amplitudes.
func SpikedMatrix(rows, cols int, spikes []float64, sigma float64, seed uint64) *mat.Dense {
	src := rand.NewSource(seed)
	standard := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	x := mat.NewDense(rows, cols, nil)

	for _, s := range spikes {
		u := unitVector(rows, standard)
		v := unitVector(cols, standard)

		for i := range rows {
			for j := range cols {
				x.Set(i, j, x.At(i, j)+s*u[i]*v[j])
			}
		}
	}

	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	for i := range rows {
		for j := range cols {
			x.Set(i, j, x.At(i, j)+noise.Rand())
		}
	}

	return x
}

func unitVector(n int, d distuv.Normal) []float64 {
	v := make([]float64, n)

	var sumSq float64
	for i := range v {
		v[i] = d.Rand()
		sumSq += v[i] * v[i]
	}

	norm := 1.0
	if sumSq > 0 {
		norm = 1 / math.Sqrt(sumSq)
	}

	for i := range v {
		v[i] *= norm
	}

	return v
}
