package threshold

import (
	"math"
	"testing"

	"github.com/cran/ScreeNOT/internal/testutil"
)

// uniformSpectrum returns p equally spaced values in (0, 1].
func uniformSpectrum(p int) []float64 {
	z := make([]float64, p)
	for i := range z {
		z[i] = float64(i+1) / float64(p)
	}

	return z
}

func TestSolveSatisfiesObjective(t *testing.T) {
	for _, gamma := range []float64{0.3, 0.7, 1.0} {
		z := uniformSpectrum(200)

		topt, err := Solve(z, gamma)
		if err != nil {
			t.Fatalf("gamma=%v: Solve error: %v", gamma, err)
		}

		e := NewEvaluator(z, gamma)
		if topt <= e.Edge() {
			t.Fatalf("gamma=%v: Topt = %v not above edge %v", gamma, topt, e.Edge())
		}

		if diff := math.Abs(e.F(topt) - Objective); diff > 1e-4 {
			t.Fatalf("gamma=%v: |F(Topt)-objective| = %v, want < 1e-4", gamma, diff)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	z := uniformSpectrum(128)

	a, err := Solve(z, 0.6)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	b, err := Solve(z, 0.6)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	if a != b {
		t.Fatalf("Solve not deterministic: %v != %v", a, b)
	}
}

func TestSolveTolerance(t *testing.T) {
	z := uniformSpectrum(100)
	e := NewEvaluator(z, 1)

	coarse, err := Solve(z, 1, WithTolerance(1e-2))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	fine, err := Solve(z, 1, WithTolerance(1e-9))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	// Both solves bracket the same root; the coarse one is at most its
	// tolerance away from the fine one, and the fine one essentially hits
	// the objective.
	testutil.RequireNear(t, coarse, fine, 1e-2)

	if fineMiss := math.Abs(e.F(fine) - Objective); fineMiss > 1e-6 {
		t.Fatalf("fine miss = %v, want < 1e-6", fineMiss)
	}
}

func TestSolveScaledSpectrum(t *testing.T) {
	// The threshold scales linearly with the spectrum: solving on c*z must
	// return about c times the threshold of z.
	z := uniformSpectrum(150)

	base, err := Solve(z, 1)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	scaled := make([]float64, len(z))
	for i, v := range z {
		scaled[i] = 100 * v
	}

	big, err := Solve(scaled, 1)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	// The doubling bracket has to expand several times to reach the root of
	// the scaled problem.
	testutil.RequireNear(t, big, 100*base, 100*DefaultTolerance+1e-3)
}

func TestSolveEmptySpectrum(t *testing.T) {
	if _, err := Solve(nil, 1); err == nil {
		t.Fatal("expected error for empty spectrum")
	}
}

func TestSolveDegenerateZeroSpectrum(t *testing.T) {
	// All-zero spectrum: F is constantly -2, the objective is unreachable
	// and bisection collapses toward the bulk edge at 0.
	topt, err := Solve(make([]float64, 8), 1)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	if topt < 0 || topt > 1e-4 {
		t.Fatalf("Topt = %v, want collapse toward 0", topt)
	}
}
