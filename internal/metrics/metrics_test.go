package metrics

import (
	"testing"

	"github.com/san-kum/articulate/internal/mbody"
	"github.com/san-kum/articulate/internal/spatial"
)

func hangingPendulum(t *testing.T) (*mbody.System, *mbody.State, mbody.BodyIndex) {
	t.Helper()
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := mbody.NewMassProperties(2, spatial.Vec{}, mbody.SphericalInertia(0.1))
	b := sys.AddBody(mbody.NewPin(), mbody.Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, 1, 0)))
	sys.Finalize()
	st := sys.DefaultState()
	if err := st.Realize(mbody.StageAcceleration); err != nil {
		t.Fatal(err)
	}
	return sys, st, b
}

func TestEnergyDriftStartsAtZero(t *testing.T) {
	sys, st, _ := hangingPendulum(t)
	m := NewEnergyDrift(sys)
	m.Observe(st, 0)
	if m.Value() != 0 {
		t.Errorf("drift = %v after one sample", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("drift = %v after reset", m.Value())
	}
}

func TestEnergyDriftTracksChange(t *testing.T) {
	sys, st, b := hangingPendulum(t)
	m := NewEnergyDrift(sys)
	m.Observe(st, 0)

	st.SetOneU(b, 0, 3.0) // inject kinetic energy
	if err := st.Realize(mbody.StageAcceleration); err != nil {
		t.Fatal(err)
	}
	m.Observe(st, 0.1)
	if m.Value() <= 0 {
		t.Error("drift not detected after energy change")
	}
}

func TestConstraintViolation(t *testing.T) {
	sys := mbody.NewSystem()
	props := mbody.NewMassProperties(1, spatial.Vec{}, mbody.SphericalInertia(0.2))
	b := sys.AddBody(mbody.NewFree(), mbody.Ground, spatial.IdentityTransform(), props, spatial.IdentityTransform())
	sys.AddConstraint(mbody.NewBallConstraint(mbody.Ground, spatial.V(0, 1, 0), b, spatial.Vec{}))
	sys.Finalize()

	st := sys.DefaultState()
	st.SetQFromTransform(b, spatial.Translation(spatial.V(0, 1.25, 0)))
	if err := st.Realize(mbody.StagePosition); err != nil {
		t.Fatal(err)
	}

	m := NewConstraintViolation(sys)
	m.Observe(st, 0)
	if got := m.Value(); got < 0.24 || got > 0.26 {
		t.Errorf("violation = %v, want 0.25", got)
	}
}

func TestPeakReaction(t *testing.T) {
	sys, st, b := hangingPendulum(t)
	m := NewPeakReaction(sys, b)
	m.Observe(st, 0)
	// Hanging at rest the mobilizer carries the full weight.
	want := 2.0 * 9.8
	if got := m.Value(); !spatial.EqualWithin(got, want, 1e-10) {
		t.Errorf("peak force = %v, want %v", got, want)
	}
	if m.PeakTorque() > 1e-10 {
		t.Errorf("peak torque = %v, want 0", m.PeakTorque())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear peak")
	}
}
