package mbody

import "github.com/san-kum/articulate/internal/spatial"

// Constraint is a bilateral constraint relating two or more bodies
// through scalar equations, one Lagrange multiplier each. A constraint's
// force contribution is entirely determined by its multipliers and the
// current configuration.
//
// Force sign convention: the applied generalized force is -G^T lambda,
// where G is the velocity-error Jacobian. bodyForces returns the
// physically applied spatial force on each constrained body, anchored at
// that body's origin, expressed in Ground; for a two-body constraint the
// two forces are equal and opposite about any common point.
type Constraint interface {
	// NumEquations is the scalar equation (= multiplier) count.
	NumEquations() int
	// Bodies lists the constrained bodies, parent side first.
	Bodies() []BodyIndex

	positionErrors(pc *posCache, out []float64)
	velocityErrors(pc *posCache, vc *velCache, out []float64)
	accelerationErrors(pc *posCache, vc *velCache, alpha, a []spatial.Vec, out []float64)
	bodyForces(pc *posCache, lambda []float64, out []spatial.SpatialVec)
}

// forceAtStation anchors a force applied at a body station to the body
// origin.
func forceAtStation(pc *posCache, b BodyIndex, station, f spatial.Vec) spatial.SpatialVec {
	arm := pc.xGB[b].R.Apply(station)
	return spatial.SV(arm.Cross(f), f)
}

// BallConstraint keeps a station on each of two bodies coincident: three
// position equations, a pure force at the shared point.
type BallConstraint struct {
	Body1, Body2       BodyIndex
	Station1, Station2 spatial.Vec // in the respective body frames
}

// NewBallConstraint constrains station1 on body1 to coincide with
// station2 on body2.
func NewBallConstraint(body1 BodyIndex, station1 spatial.Vec, body2 BodyIndex, station2 spatial.Vec) *BallConstraint {
	return &BallConstraint{Body1: body1, Body2: body2, Station1: station1, Station2: station2}
}

func (c *BallConstraint) NumEquations() int { return 3 }
func (c *BallConstraint) Bodies() []BodyIndex { return []BodyIndex{c.Body1, c.Body2} }

func (c *BallConstraint) positionErrors(pc *posCache, out []float64) {
	e := pc.station(c.Body2, c.Station2).Sub(pc.station(c.Body1, c.Station1))
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *BallConstraint) velocityErrors(pc *posCache, vc *velCache, out []float64) {
	e := stationVelocity(pc, vc, c.Body2, c.Station2).Sub(stationVelocity(pc, vc, c.Body1, c.Station1))
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *BallConstraint) accelerationErrors(pc *posCache, vc *velCache, alpha, a []spatial.Vec, out []float64) {
	e := stationAcceleration(pc, vc, alpha, a, c.Body2, c.Station2).
		Sub(stationAcceleration(pc, vc, alpha, a, c.Body1, c.Station1))
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *BallConstraint) bodyForces(pc *posCache, lambda []float64, out []spatial.SpatialVec) {
	f := spatial.V(lambda[0], lambda[1], lambda[2])
	out[0] = forceAtStation(pc, c.Body1, c.Station1, f)
	out[1] = forceAtStation(pc, c.Body2, c.Station2, f.Mul(-1))
}

// ConstantAngleConstraint keeps an axis fixed in body1 perpendicular to
// an axis fixed in body2: one equation, a pure torque couple.
type ConstantAngleConstraint struct {
	Body1, Body2 BodyIndex
	Axis1, Axis2 spatial.Vec // unit vectors in the respective body frames
}

// NewConstantAngleConstraint constrains axis1 on body1 to stay at ninety
// degrees to axis2 on body2.
func NewConstantAngleConstraint(body1 BodyIndex, axis1 spatial.Vec, body2 BodyIndex, axis2 spatial.Vec) *ConstantAngleConstraint {
	return &ConstantAngleConstraint{Body1: body1, Body2: body2, Axis1: axis1, Axis2: axis2}
}

func (c *ConstantAngleConstraint) NumEquations() int { return 1 }
func (c *ConstantAngleConstraint) Bodies() []BodyIndex { return []BodyIndex{c.Body1, c.Body2} }

func (c *ConstantAngleConstraint) axes(pc *posCache) (spatial.Vec, spatial.Vec) {
	return pc.xGB[c.Body1].R.Apply(c.Axis1), pc.xGB[c.Body2].R.Apply(c.Axis2)
}

func (c *ConstantAngleConstraint) positionErrors(pc *posCache, out []float64) {
	av, bv := c.axes(pc)
	out[0] = av.Dot(bv)
}

// velocityErrors: d/dt(a.b) = (w1 - w2) . (a x b).
func (c *ConstantAngleConstraint) velocityErrors(pc *posCache, vc *velCache, out []float64) {
	av, bv := c.axes(pc)
	out[0] = vc.w[c.Body1].Sub(vc.w[c.Body2]).Dot(av.Cross(bv))
}

func (c *ConstantAngleConstraint) accelerationErrors(pc *posCache, vc *velCache, alpha, a []spatial.Vec, out []float64) {
	av, bv := c.axes(pc)
	w1, w2 := vc.w[c.Body1], vc.w[c.Body2]
	axbDot := w1.Cross(av).Cross(bv).Add(av.Cross(w2.Cross(bv)))
	out[0] = alpha[c.Body1].Sub(alpha[c.Body2]).Dot(av.Cross(bv)) +
		w1.Sub(w2).Dot(axbDot)
}

func (c *ConstantAngleConstraint) bodyForces(pc *posCache, lambda []float64, out []spatial.SpatialVec) {
	av, bv := c.axes(pc)
	t := av.Cross(bv).Mul(lambda[0])
	out[0] = spatial.SV(t.Mul(-1), spatial.Vec{})
	out[1] = spatial.SV(t, spatial.Vec{})
}

// ConstantOrientationConstraint locks the relative orientation of frames
// fixed in two bodies: three equations, a pure torque couple. Combined
// with a Free joint it reproduces a Translation joint.
type ConstantOrientationConstraint struct {
	Body1, Body2 BodyIndex
	R1, R2       spatial.Rotation // frames in the respective bodies
}

// NewConstantOrientationConstraint constrains frame R1 on body1 and frame
// R2 on body2 to remain aligned.
func NewConstantOrientationConstraint(body1 BodyIndex, r1 spatial.Rotation, body2 BodyIndex, r2 spatial.Rotation) *ConstantOrientationConstraint {
	return &ConstantOrientationConstraint{Body1: body1, Body2: body2, R1: r1, R2: r2}
}

func (c *ConstantOrientationConstraint) NumEquations() int { return 3 }
func (c *ConstantOrientationConstraint) Bodies() []BodyIndex { return []BodyIndex{c.Body1, c.Body2} }

// positionErrors: skew part of A1^T A2, rotated into Ground. Vanishes iff
// the frames agree; consistent with the angular-velocity error rows near
// the solution, which is what the projection needs.
func (c *ConstantOrientationConstraint) positionErrors(pc *posCache, out []float64) {
	a1 := pc.xGB[c.Body1].R.Mul(c.R1)
	a2 := pc.xGB[c.Body2].R.Mul(c.R2)
	rel := a1.Transpose().Mul(a2)
	e := spatial.V(
		0.5*(rel.Col(1).Z-rel.Col(2).Y),
		0.5*(rel.Col(2).X-rel.Col(0).Z),
		0.5*(rel.Col(0).Y-rel.Col(1).X),
	)
	e = a1.Apply(e)
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *ConstantOrientationConstraint) velocityErrors(_ *posCache, vc *velCache, out []float64) {
	e := vc.w[c.Body2].Sub(vc.w[c.Body1])
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *ConstantOrientationConstraint) accelerationErrors(_ *posCache, _ *velCache, alpha, _ []spatial.Vec, out []float64) {
	e := alpha[c.Body2].Sub(alpha[c.Body1])
	out[0], out[1], out[2] = e.X, e.Y, e.Z
}

func (c *ConstantOrientationConstraint) bodyForces(_ *posCache, lambda []float64, out []spatial.SpatialVec) {
	t := spatial.V(lambda[0], lambda[1], lambda[2])
	out[0] = spatial.SV(t, spatial.Vec{})
	out[1] = spatial.SV(t.Mul(-1), spatial.Vec{})
}

// RodConstraint keeps two stations a fixed distance apart: one equation
// in half-squared-distance form, a tension/compression force along the
// line between the stations.
type RodConstraint struct {
	Body1, Body2       BodyIndex
	Station1, Station2 spatial.Vec
	Length             float64
}

// NewRodConstraint constrains the distance between station1 on body1 and
// station2 on body2 to equal length.
func NewRodConstraint(body1 BodyIndex, station1 spatial.Vec, body2 BodyIndex, station2 spatial.Vec, length float64) *RodConstraint {
	return &RodConstraint{Body1: body1, Body2: body2, Station1: station1, Station2: station2, Length: length}
}

func (c *RodConstraint) NumEquations() int { return 1 }
func (c *RodConstraint) Bodies() []BodyIndex { return []BodyIndex{c.Body1, c.Body2} }

func (c *RodConstraint) span(pc *posCache) spatial.Vec {
	return pc.station(c.Body2, c.Station2).Sub(pc.station(c.Body1, c.Station1))
}

func (c *RodConstraint) positionErrors(pc *posCache, out []float64) {
	d := c.span(pc)
	out[0] = (d.Dot(d) - c.Length*c.Length) / 2
}

func (c *RodConstraint) velocityErrors(pc *posCache, vc *velCache, out []float64) {
	rel := stationVelocity(pc, vc, c.Body2, c.Station2).Sub(stationVelocity(pc, vc, c.Body1, c.Station1))
	out[0] = c.span(pc).Dot(rel)
}

func (c *RodConstraint) accelerationErrors(pc *posCache, vc *velCache, alpha, a []spatial.Vec, out []float64) {
	relV := stationVelocity(pc, vc, c.Body2, c.Station2).Sub(stationVelocity(pc, vc, c.Body1, c.Station1))
	relA := stationAcceleration(pc, vc, alpha, a, c.Body2, c.Station2).
		Sub(stationAcceleration(pc, vc, alpha, a, c.Body1, c.Station1))
	out[0] = c.span(pc).Dot(relA) + relV.Dot(relV)
}

func (c *RodConstraint) bodyForces(pc *posCache, lambda []float64, out []spatial.SpatialVec) {
	f := c.span(pc).Mul(lambda[0])
	out[0] = forceAtStation(pc, c.Body1, c.Station1, f)
	out[1] = forceAtStation(pc, c.Body2, c.Station2, f.Mul(-1))
}
