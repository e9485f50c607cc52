package spectrum

import "sort"

// Stats holds summary statistics of a singular value spectrum.
type Stats struct {
	Count      int
	Max        float64
	MaxPos     int
	Min        float64
	MinPos     int
	Sum        float64
	Mean       float64
	Median     float64
	Energy     float64 // sum of squares, the squared Frobenius norm of the matrix
	Power      float64 // energy / count
	Variance   float64
	StableRank float64 // energy / max^2, a smooth lower bound on the rank
}

// Calculate computes all spectrum statistics in a single pass, using
// Welford's online update for the variance. The median requires an
// additional sorted copy.
func Calculate(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	var (
		mean  float64
		m2    float64
		sum   float64
		sumSq float64
	)

	maxVal := values[0]
	minVal := values[0]

	var maxPos, minPos int

	for i, x := range values {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sum += x
		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)

	var stable float64
	if maxVal > 0 {
		stable = sumSq / (maxVal * maxVal)
	}

	return Stats{
		Count:      n,
		Max:        maxVal,
		MaxPos:     maxPos,
		Min:        minVal,
		MinPos:     minPos,
		Sum:        sum,
		Mean:       mean,
		Median:     median(values),
		Energy:     sumSq,
		Power:      sumSq / nf,
		Variance:   m2 / nf,
		StableRank: stable,
	}
}

// median returns the middle of a sorted copy, averaging the two central
// values for even lengths.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
