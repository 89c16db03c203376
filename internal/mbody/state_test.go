package mbody

import (
	"errors"
	"testing"

	"github.com/san-kum/articulate/internal/spatial"
)

func pendulumSystem(t *testing.T) (*System, BodyIndex) {
	t.Helper()
	sys := NewSystem()
	sys.AddForce(UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := NewMassProperties(1, spatial.Vec{}, SphericalInertia(0.1))
	b := sys.AddBody(NewPin(), Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, 1, 0)))
	sys.Finalize()
	return sys, b
}

func TestStageProgression(t *testing.T) {
	sys, b := pendulumSystem(t)
	st := sys.DefaultState()
	if st.Stage() != StageTopology {
		t.Fatalf("fresh state at stage %v", st.Stage())
	}
	if err := st.Realize(StagePosition); err != nil {
		t.Fatal(err)
	}
	if st.Stage() != StagePosition {
		t.Errorf("stage = %v after realizing position", st.Stage())
	}
	if err := st.Realize(StageAcceleration); err != nil {
		t.Fatal(err)
	}
	if st.Stage() != StageAcceleration {
		t.Errorf("stage = %v after realizing acceleration", st.Stage())
	}

	// Writing a coordinate drops the state back below position.
	st.SetOneQ(b, 0, 0.5)
	if st.Stage() >= StagePosition {
		t.Errorf("stage = %v after q write", st.Stage())
	}
	// Writing a speed preserves position results.
	if err := st.Realize(StageAcceleration); err != nil {
		t.Fatal(err)
	}
	st.SetOneU(b, 0, 1.0)
	if st.Stage() != StagePosition {
		t.Errorf("stage = %v after u write", st.Stage())
	}
}

func TestStaleReadPanics(t *testing.T) {
	sys, b := pendulumSystem(t)
	st := sys.DefaultState()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("reading an unrealized transform did not panic")
		}
		se, ok := r.(*StageError)
		if !ok {
			t.Fatalf("panic value %T, want *StageError", r)
		}
		if se.Required != StagePosition || se.Actual != StageTopology {
			t.Errorf("stage error %v", se)
		}
	}()
	_ = st.BodyTransform(b)
}

func TestStaleVelocityReadPanics(t *testing.T) {
	sys, b := pendulumSystem(t)
	st := sys.DefaultState()
	if err := st.Realize(StagePosition); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("reading velocity at position stage did not panic")
		}
	}()
	_ = st.BodyVelocity(b)
}

func TestCloneIsIndependent(t *testing.T) {
	sys, b := pendulumSystem(t)
	st := sys.DefaultState()
	st.SetOneQ(b, 0, 0.3)
	if err := st.Realize(StageVelocity); err != nil {
		t.Fatal(err)
	}

	cl := st.Clone()
	cl.SetOneQ(b, 0, 1.1)
	if st.Q()[0] != 0.3 {
		t.Errorf("clone write leaked into original: q = %v", st.Q()[0])
	}
	if st.Stage() != StageVelocity {
		t.Errorf("clone write invalidated original: stage %v", st.Stage())
	}
	if cl.Stage() >= StagePosition {
		t.Errorf("clone not invalidated by its own write: stage %v", cl.Stage())
	}
}

func TestAdvanceRenormalizesQuaternions(t *testing.T) {
	sys := NewSystem()
	props := NewMassProperties(1, spatial.Vec{}, SphericalInertia(0.1))
	sys.AddBody(NewBall(), Ground, spatial.IdentityTransform(), props, spatial.IdentityTransform())
	sys.Finalize()

	st := sys.DefaultState()
	q := st.Q()
	q[0], q[1] = 1.01, 0.02 // drifted, as after an integrator step
	st.Advance(q, st.U())

	got := st.Q()
	var n float64
	for _, c := range got {
		n += c * c
	}
	if !spatial.EqualWithin(n, 1, 1e-12) {
		t.Errorf("quaternion norm^2 = %v after Advance", n)
	}
}

func TestTimeDerivatives(t *testing.T) {
	sys, b := pendulumSystem(t)
	st := sys.DefaultState()
	st.SetOneQ(b, 0, 0.4)
	st.SetOneU(b, 0, 2.5)

	qdot, udot, err := sys.TimeDerivatives(st)
	if err != nil {
		t.Fatal(err)
	}
	if qdot[0] != 2.5 {
		t.Errorf("qdot = %v, want u = 2.5", qdot[0])
	}
	if len(udot) != 1 {
		t.Fatalf("udot length %d", len(udot))
	}
	if udot[0] != st.UDot()[0] {
		t.Errorf("udot mismatch with realized state")
	}
}

func TestRealizeReportsSingularSystem(t *testing.T) {
	// A massless body makes the mass matrix singular.
	sys := NewSystem()
	props := NewMassProperties(0, spatial.Vec{}, PrincipalInertia(0, 0, 0))
	sys.AddBody(NewPin(), Ground, spatial.IdentityTransform(), props, spatial.IdentityTransform())
	sys.Finalize()

	st := sys.DefaultState()
	err := st.Realize(StageAcceleration)
	if !errors.Is(err, ErrSingular) {
		t.Errorf("err = %v, want ErrSingular", err)
	}
}
