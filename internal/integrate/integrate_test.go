package integrate

import (
	"math"
	"testing"

	"github.com/san-kum/articulate/internal/mbody"
	"github.com/san-kum/articulate/internal/spatial"
)

func pendulum(t *testing.T) (*mbody.System, *mbody.State) {
	t.Helper()
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := mbody.NewMassProperties(1, spatial.Vec{}, mbody.SphericalInertia(0.05))
	b := sys.AddBody(mbody.NewPin(), mbody.Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, 1, 0)))
	sys.Finalize()
	st := sys.DefaultState()
	st.SetOneQ(b, 0, 0.5)
	return sys, st
}

func totalEnergy(t *testing.T, sys *mbody.System, st *mbody.State) float64 {
	t.Helper()
	if err := st.Realize(mbody.StageVelocity); err != nil {
		t.Fatal(err)
	}
	return st.KineticEnergy() + sys.PotentialEnergy(st)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"euler", "semieuler", "rk4"} {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}
	}
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown stepper")
	}
}

func TestRK4ConservesPendulumEnergy(t *testing.T) {
	sys, st := pendulum(t)
	e0 := totalEnergy(t, sys, st)

	stepper := NewRK4()
	const dt = 0.001
	for i := 0; i < 2000; i++ {
		if err := stepper.Step(sys, st, dt); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	e1 := totalEnergy(t, sys, st)
	if math.Abs(e1-e0) > 1e-6*math.Max(math.Abs(e0), 1) {
		t.Errorf("energy drifted from %v to %v", e0, e1)
	}
}

func TestEulerOrderOfAccuracy(t *testing.T) {
	// Halving the step should roughly halve explicit Euler's error;
	// for RK4 the error should be negligible by comparison.
	final := func(s Stepper, dt float64) float64 {
		sys, st := pendulum(t)
		steps := int(math.Round(1.0 / dt))
		for i := 0; i < steps; i++ {
			if err := s.Step(sys, st, dt); err != nil {
				t.Fatal(err)
			}
		}
		return st.Q()[0]
	}

	ref := final(NewRK4(), 1e-3)
	errCoarse := math.Abs(final(NewEuler(), 4e-3) - ref)
	errFine := math.Abs(final(NewEuler(), 2e-3) - ref)
	if errFine >= errCoarse {
		t.Errorf("euler error did not shrink: %v -> %v", errCoarse, errFine)
	}
	ratio := errCoarse / errFine
	if ratio < 1.5 || ratio > 3.0 {
		t.Errorf("euler error ratio %v, want about 2", ratio)
	}
}

func TestSemiEulerBeatsExplicitEuler(t *testing.T) {
	drift := func(s Stepper) float64 {
		sys, st := pendulum(t)
		e0 := totalEnergy(t, sys, st)
		for i := 0; i < 1000; i++ {
			if err := s.Step(sys, st, 0.002); err != nil {
				t.Fatal(err)
			}
		}
		return math.Abs(totalEnergy(t, sys, st) - e0)
	}
	explicit := drift(NewEuler())
	symplectic := drift(NewSemiEuler())
	if symplectic >= explicit {
		t.Errorf("semi-implicit drift %v not below explicit %v", symplectic, explicit)
	}
}

func TestStepKeepsQuaternionNormalized(t *testing.T) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := mbody.NewMassProperties(2, spatial.V(0, -0.1, 0), mbody.PrincipalInertia(0.1, 0.2, 0.3).ShiftFromCOM(spatial.V(0, -0.1, 0), 2))
	b := sys.AddBody(mbody.NewBall(), mbody.Ground, spatial.Translation(spatial.V(0, 1, 0)), props, spatial.Translation(spatial.V(0, 0.4, 0)))
	sys.Finalize()
	st := sys.DefaultState()
	st.SetUFromAngularVelocity(b, spatial.V(1, 2, -0.5))

	stepper := NewRK4()
	for i := 0; i < 200; i++ {
		if err := stepper.Step(sys, st, 0.005); err != nil {
			t.Fatal(err)
		}
	}
	q := st.Q()
	n := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if math.Abs(n-1) > 1e-12 {
		t.Errorf("quaternion norm^2 = %v after integration", n)
	}
}
