package mbody

import "github.com/san-kum/articulate/internal/spatial"

// ForceElement contributes applied forces to the dynamics: spatial forces
// per body (anchored at body origins, expressed in Ground) and/or
// generalized mobility forces per speed.
type ForceElement interface {
	apply(sys *System, pc *posCache, vc *velCache, bodyForces []spatial.SpatialVec, mobilityForces []float64)
}

// UniformGravity applies G (an acceleration vector in Ground) to every
// body's mass center.
type UniformGravity struct {
	G spatial.Vec
}

func (g UniformGravity) apply(sys *System, pc *posCache, _ *velCache, bodyForces []spatial.SpatialVec, _ []float64) {
	for _, b := range sys.bodies[1:] {
		f := g.G.Mul(b.props.Mass)
		arm := pc.com[b.index].Sub(pc.xGB[b.index].P)
		bodyForces[b.index] = bodyForces[b.index].Add(spatial.SV(arm.Cross(f), f))
	}
}

// ConstantForce applies a fixed Ground-frame force at a station fixed in
// the body.
type ConstantForce struct {
	Body    BodyIndex
	Station spatial.Vec // in the body frame
	Force   spatial.Vec // in Ground
}

func (c ConstantForce) apply(sys *System, pc *posCache, _ *velCache, bodyForces []spatial.SpatialVec, _ []float64) {
	arm := pc.xGB[c.Body].R.Apply(c.Station)
	bodyForces[c.Body] = bodyForces[c.Body].Add(spatial.SV(arm.Cross(c.Force), c.Force))
}

// ConstantTorque applies a fixed Ground-frame torque to a body.
type ConstantTorque struct {
	Body   BodyIndex
	Torque spatial.Vec // in Ground
}

func (c ConstantTorque) apply(_ *System, _ *posCache, _ *velCache, bodyForces []spatial.SpatialVec, _ []float64) {
	bodyForces[c.Body] = bodyForces[c.Body].Add(spatial.SV(c.Torque, spatial.Vec{}))
}

// MobilityForce applies a generalized force directly to one degree of
// freedom of a body's mobilizer.
type MobilityForce struct {
	Body  BodyIndex
	DOF   int
	Value float64
}

func (m MobilityForce) apply(sys *System, _ *posCache, _ *velCache, _ []spatial.SpatialVec, mobilityForces []float64) {
	mobilityForces[sys.bodies[m.Body].uStart+m.DOF] += m.Value
}
