package threshold

import "gonum.org/v1/gonum/floats"

// Evaluator computes the spectral functionals Phi, D and F of a pseudo-noise
// spectrum at candidate threshold values.
//
// Every method requires y strictly above [Evaluator.Edge]; at or below the
// bulk edge the y^2 - z_i^2 denominators vanish and the results are
// meaningless. The solver's search domain guarantees this precondition.
type Evaluator struct {
	z2    []float64
	gamma float64
	edge  float64
}

// NewEvaluator returns an evaluator over the given pseudo-noise spectrum and
// aspect ratio gamma in (0, 1]. The spectrum is squared once up front; the
// input slice is not retained.
func NewEvaluator(pseudoNoise []float64, gamma float64) *Evaluator {
	e := &Evaluator{
		z2:    make([]float64, len(pseudoNoise)),
		gamma: gamma,
	}

	for i, z := range pseudoNoise {
		e.z2[i] = z * z
	}

	if len(pseudoNoise) > 0 {
		e.edge = floats.Max(pseudoNoise)
	}

	return e
}

// Edge returns the bulk edge max(z) of the spectrum.
func (e *Evaluator) Edge() float64 { return e.edge }

// Phi returns mean_i y / (y^2 - z_i^2), the empirical Stieltjes-type
// transform of the squared spectrum.
func (e *Evaluator) Phi(y float64) float64 {
	y2 := y * y

	var sum float64
	for _, z2 := range e.z2 {
		sum += y / (y2 - z2)
	}

	return sum / float64(len(e.z2))
}

// PhiDeriv returns the derivative of Phi:
// mean_i -(y^2 + z_i^2) / (y^2 - z_i^2)^2.
func (e *Evaluator) PhiDeriv(y float64) float64 {
	y2 := y * y

	var sum float64
	for _, z2 := range e.z2 {
		d := y2 - z2
		sum += -(y2 + z2) / (d * d)
	}

	return sum / float64(len(e.z2))
}

// D returns Phi(y) * (gamma*Phi(y) + (1-gamma)/y), the product of the two
// one-sided transforms of the rectangular spectral distribution.
func (e *Evaluator) D(y float64) float64 {
	phi := e.Phi(y)

	return phi * (e.gamma*phi + (1-e.gamma)/y)
}

// DDeriv returns the derivative of D by the product rule.
func (e *Evaluator) DDeriv(y float64) float64 {
	phi := e.Phi(y)
	phid := e.PhiDeriv(y)

	return phid*(e.gamma*phi+(1-e.gamma)/y) + phi*(e.gamma*phid-(1-e.gamma)/(y*y))
}

// F returns y * D'(y) / D(y). F is monotone increasing on (Edge, +inf),
// diverges to -inf at the bulk edge and approaches -2 for large y; its root
// at [Objective] is the optimal retention boundary.
func (e *Evaluator) F(y float64) float64 {
	phi := e.Phi(y)
	phid := e.PhiDeriv(y)

	mixed := e.gamma*phi + (1-e.gamma)/y
	d := phi * mixed
	dd := phid*mixed + phi*(e.gamma*phid-(1-e.gamma)/(y*y))

	return y * dd / d
}
