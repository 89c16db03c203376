package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSolveKKTUnconstrained(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	f := []float64{1, 2}
	udot, lambda, err := SolveKKT(m, nil, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(lambda) != 0 {
		t.Errorf("lambda length %d for unconstrained solve", len(lambda))
	}
	// Check M udot = f.
	got0 := 4*udot[0] + udot[1]
	got1 := udot[0] + 3*udot[1]
	if math.Abs(got0-1) > 1e-12 || math.Abs(got1-2) > 1e-12 {
		t.Errorf("residual (%v, %v)", got0-1, got1-2)
	}
}

func TestSolveKKTConstrained(t *testing.T) {
	// Minimize 1/2 u^T M u - f^T u subject to G u = -b.
	m := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	g := mat.NewDense(1, 2, []float64{1, 1})
	f := []float64{1, 0}
	b := []float64{0} // constraint: u0 + u1 = 0

	udot, lambda, err := SolveKKT(m, g, f, b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(udot[0]+udot[1]) > 1e-12 {
		t.Errorf("constraint violated: %v", udot[0]+udot[1])
	}
	// Analytic solution: u = (1/4, -1/4), lambda = 1/2.
	if math.Abs(udot[0]-0.25) > 1e-12 || math.Abs(udot[1]+0.25) > 1e-12 {
		t.Errorf("udot = %v", udot)
	}
	if math.Abs(lambda[0]-0.5) > 1e-12 {
		t.Errorf("lambda = %v", lambda)
	}
}

func TestSolveKKTSingular(t *testing.T) {
	m := mat.NewDense(1, 1, []float64{0})
	if _, _, err := SolveKKT(m, nil, []float64{1}, nil); err == nil {
		t.Error("singular system did not error")
	}
}

func TestLeastNorm(t *testing.T) {
	// Underdetermined: one equation, three unknowns.
	g := mat.NewDense(1, 3, []float64{1, 2, 2})
	z, err := LeastNorm(g, []float64{9})
	if err != nil {
		t.Fatal(err)
	}
	// G z = e.
	got := z[0] + 2*z[1] + 2*z[2]
	if math.Abs(got-9) > 1e-12 {
		t.Errorf("G z = %v, want 9", got)
	}
	// Minimum norm solution is G^T scaled: (1, 2, 2).
	want := []float64{1, 2, 2}
	for i := range want {
		if math.Abs(z[i]-want[i]) > 1e-12 {
			t.Errorf("z = %v, want %v", z, want)
			break
		}
	}
}

func TestLeastNormSingular(t *testing.T) {
	g := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	if _, err := LeastNorm(g, []float64{1, 2}); err == nil {
		t.Error("rank deficient system did not error")
	}
}
