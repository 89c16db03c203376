package mbody

import (
	"math"
	"testing"

	"github.com/san-kum/articulate/internal/spatial"
)

func TestFreeFallAcceleration(t *testing.T) {
	g := spatial.V(0, -9.81, 0)
	sys := NewSystem()
	sys.AddForce(UniformGravity{G: g})
	props := NewMassProperties(3.2, spatial.V(0.1, -0.2, 0.3), PrincipalInertia(0.4, 0.5, 0.6).ShiftFromCOM(spatial.V(0.1, -0.2, 0.3), 3.2))
	b := sys.AddBody(NewFree(), Ground, spatial.IdentityTransform(), props, spatial.IdentityTransform())
	sys.Finalize()

	st := sys.DefaultState()
	st.SetQFromTransform(b, spatial.NewTransform(spatial.RotY(0.8), spatial.V(1, 2, 3)))
	realizeAccel(t, sys, st)

	acc := st.BodyAcceleration(b)
	if !spatial.VecEqualWithin(acc.Ang, spatial.Vec{}, 1e-12) {
		t.Errorf("angular acceleration = %v, want zero", acc.Ang)
	}
	// The body origin accelerates with gravity only when it coincides
	// with the mass center; check the mass center itself.
	aCom := stationAcceleration(st.pos, st.vel, st.acc.alpha, st.acc.a, b, props.COM)
	if !spatial.VecEqualWithin(aCom, g, 1e-12) {
		t.Errorf("mass center acceleration = %v, want %v", aCom, g)
	}
}

func TestPendulumAcceleration(t *testing.T) {
	const (
		m     = 2.0
		l     = 0.7
		iz    = 0.1
		grav  = 9.8
		theta = 0.3
	)
	sys := NewSystem()
	sys.AddForce(UniformGravity{G: spatial.V(0, -grav, 0)})
	props := NewMassProperties(m, spatial.Vec{}, SphericalInertia(iz))
	b := sys.AddBody(NewPin(), Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, l, 0)))
	sys.Finalize()

	st := sys.DefaultState()
	st.SetOneQ(b, 0, theta)
	realizeAccel(t, sys, st)

	want := -m * grav * l * math.Sin(theta) / (iz + m*l*l)
	got := st.UDot()[0]
	if !spatial.EqualWithin(got, want, 1e-12) {
		t.Errorf("udot = %v, want %v", got, want)
	}
}

func TestHangingPendulumReaction(t *testing.T) {
	const m, l = 2.0, 0.7
	sys := NewSystem()
	sys.AddForce(UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := NewMassProperties(m, spatial.Vec{}, SphericalInertia(0.1))
	b := sys.AddBody(NewPin(), Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, l, 0)))
	sys.Finalize()

	st := sys.DefaultState()
	realizeAccel(t, sys, st)

	reaction := sys.CalcMobilizerReactionForces(st)
	want := spatial.SV(spatial.Vec{}, spatial.V(0, m*9.8, 0))
	if !spatial.SpatialEqualWithin(reaction[b], want, 1e-12) {
		t.Errorf("hanging reaction = %+v, want %+v", reaction[b], want)
	}
}

// A generalized force applied directly to a pin's degree of freedom is
// transmitted through the mobilizer and shows up in its reaction torque.
func TestMobilityForceEntersReaction(t *testing.T) {
	const torque = 0.7
	sys := NewSystem()
	sys.AddForce(UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := NewMassProperties(1.5, spatial.Vec{}, SphericalInertia(0.2))
	b := sys.AddBody(NewPin(), Ground, spatial.IdentityTransform(), props, spatial.Translation(spatial.V(0, 0.5, 0)))
	sys.AddForce(MobilityForce{Body: b, DOF: 0, Value: torque})
	sys.Finalize()

	st := sys.DefaultState()
	st.SetOneQ(b, 0, 0.4)
	st.SetOneU(b, 0, -0.9)
	realizeAccel(t, sys, st)

	reaction := sys.CalcMobilizerReactionForces(st)
	if !spatial.EqualWithin(reaction[b].Ang.Z, torque, 1e-12) {
		t.Errorf("reaction torque about pin axis = %v, want %v", reaction[b].Ang.Z, torque)
	}
}

// The rate of change of total linear momentum must equal the total
// external force: gravity on every body plus the reaction the mount
// transmits through the base joint.
func TestMomentumBalance(t *testing.T) {
	sys := NewSystem()
	g := spatial.V(0, -9.8, 0)
	sys.AddForce(UniformGravity{G: g})
	inertia := NewInertia(0.2, 0.3, 0.4, 0.01, 0.02, 0.03)
	b1 := sys.AddBody(NewBall(), Ground, spatial.Translation(spatial.V(0, 1, 0)), NewMassProperties(2, spatial.V(0.1, 0, 0), inertia), spatial.Translation(spatial.V(0, 0.5, 0)))
	b2 := sys.AddBody(NewGimbal(), b1, spatial.Translation(spatial.V(0, -0.5, 0)), NewMassProperties(3, spatial.Vec{}, inertia), spatial.Translation(spatial.V(0, 0.5, 0)))
	sys.Finalize()

	st := sys.DefaultState()
	st.SetUFromAngularVelocity(b1, spatial.V(0.3, -0.2, 0.5))
	st.SetUFromAngularVelocity(b2, spatial.V(-0.1, 0.4, 0.2))
	realizeAccel(t, sys, st)

	reaction := sys.CalcMobilizerReactionForces(st)
	force := reaction[b1].Lin
	var rate spatial.Vec
	for i := 1; i < sys.NumBodies(); i++ {
		b := sys.Body(BodyIndex(i))
		bi := b.Index()
		force = force.Add(g.Mul(b.MassProperties().Mass))
		aCom := stationAcceleration(st.pos, st.vel, st.acc.alpha, st.acc.a, bi, b.MassProperties().COM)
		rate = rate.Add(aCom.Mul(b.MassProperties().Mass))
	}
	if !spatial.VecEqualWithin(rate, force, 1e-10) {
		t.Errorf("momentum rate %v, external force %v", rate, force)
	}
}
