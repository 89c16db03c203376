package mbody

import (
	"fmt"

	"github.com/san-kum/articulate/internal/spatial"
)

// Stage names a point in state realization. Quantities belonging to a
// stage are undefined until the state has been realized to it.
type Stage int

const (
	StageTopology Stage = iota
	StagePosition
	StageVelocity
	StageAcceleration
)

func (g Stage) String() string {
	switch g {
	case StageTopology:
		return "Topology"
	case StagePosition:
		return "Position"
	case StageVelocity:
		return "Velocity"
	case StageAcceleration:
		return "Acceleration"
	default:
		return fmt.Sprintf("Stage(%d)", int(g))
	}
}

// State carries the generalized coordinates and speeds of one System plus
// stage-tagged caches. Writes invalidate every downstream stage. A State
// is not safe for concurrent mutation; independent states over a shared
// finalized System are.
type State struct {
	sys   *System
	q, u  []float64
	stage Stage

	pos *posCache
	vel *velCache
	acc *accCache
}

// System returns the owning system.
func (s *State) System() *System { return s.sys }

// Stage returns the highest realized stage.
func (s *State) Stage() Stage { return s.stage }

// Clone returns an independent copy of the state at Topology stage.
func (s *State) Clone() *State {
	c := &State{sys: s.sys, q: append([]float64(nil), s.q...), u: append([]float64(nil), s.u...), stage: StageTopology}
	return c
}

// invalidate drops every stage above g.
func (s *State) invalidate(g Stage) {
	if s.stage > g {
		s.stage = g
	}
	if g < StagePosition {
		s.pos = nil
	}
	if g < StageVelocity {
		s.vel = nil
	}
	s.acc = nil
}

func (s *State) requireStage(g Stage, op string) {
	if s.stage < g {
		panic(&StageError{Op: op, Required: g, Actual: s.stage})
	}
}

// Q returns a copy of the full coordinate vector.
func (s *State) Q() []float64 { return append([]float64(nil), s.q...) }

// U returns a copy of the full speed vector.
func (s *State) U() []float64 { return append([]float64(nil), s.u...) }

// SetOneQ sets coordinate i of body b's joint.
func (s *State) SetOneQ(b BodyIndex, i int, v float64) {
	s.sys.qSlice(s.q, s.sys.bodies[b])[i] = v
	s.invalidate(StageTopology)
}

// SetOneU sets speed i of body b's joint.
func (s *State) SetOneU(b BodyIndex, i int, v float64) {
	s.sys.uSlice(s.u, s.sys.bodies[b])[i] = v
	s.invalidate(StagePosition)
}

// setQ / setU overwrite full vectors (integration support).
func (s *State) setQ(q []float64) {
	copy(s.q, q)
	s.invalidate(StageTopology)
}

func (s *State) setU(u []float64) {
	copy(s.u, u)
	s.invalidate(StagePosition)
}

// SetQFromTransform fits body b's coordinates to the across-joint
// transform X_FM, as closely as the joint type allows.
func (s *State) SetQFromTransform(b BodyIndex, x spatial.Transform) {
	mb := s.sys.bodies[b]
	mb.joint.FitTransform(x, s.sys.qSlice(s.q, mb))
	s.invalidate(StageTopology)
}

// SetQFromRotation fits the rotational coordinates of body b's joint,
// preserving the current across-joint translation.
func (s *State) SetQFromRotation(b BodyIndex, r spatial.Rotation) {
	mb := s.sys.bodies[b]
	q := s.sys.qSlice(s.q, mb)
	p := mb.joint.Transform(q).P
	mb.joint.FitTransform(spatial.NewTransform(r, p), q)
	s.invalidate(StageTopology)
}

// SetUFromVelocity fits body b's speeds to the across-joint spatial
// velocity V_FM (angular velocity and M-origin velocity, in F).
func (s *State) SetUFromVelocity(b BodyIndex, v spatial.SpatialVec) {
	mb := s.sys.bodies[b]
	mb.joint.FitVelocity(v, s.sys.uSlice(s.u, mb))
	s.invalidate(StagePosition)
}

// SetUFromAngularVelocity fits the rotational speeds of body b's joint to
// angular velocity w (in F), preserving the translational speeds.
func (s *State) SetUFromAngularVelocity(b BodyIndex, w spatial.Vec) {
	mb := s.sys.bodies[b]
	u := s.sys.uSlice(s.u, mb)
	cur := localVelocity(mb.joint, u)
	mb.joint.FitVelocity(spatial.SV(w, cur.Lin), u)
	s.invalidate(StagePosition)
}

// MobilizerTransform returns X_FM for body b. Position stage.
func (s *State) MobilizerTransform(b BodyIndex) spatial.Transform {
	s.requireStage(StagePosition, "MobilizerTransform")
	return s.pos.xFM[b]
}

// MobilizerVelocity returns V_FM for body b, expressed in F and anchored
// at the M origin. Velocity stage.
func (s *State) MobilizerVelocity(b BodyIndex) spatial.SpatialVec {
	s.requireStage(StageVelocity, "MobilizerVelocity")
	mb := s.sys.bodies[b]
	return localVelocity(mb.joint, s.sys.uSlice(s.u, mb))
}

// BodyTransform returns X_GB, body b's frame in Ground. Position stage.
func (s *State) BodyTransform(b BodyIndex) spatial.Transform {
	s.requireStage(StagePosition, "BodyTransform")
	return s.pos.xGB[b]
}

// BodyRotation returns R_GB. Position stage.
func (s *State) BodyRotation(b BodyIndex) spatial.Rotation {
	s.requireStage(StagePosition, "BodyRotation")
	return s.pos.xGB[b].R
}

// BodyVelocity returns body b's spatial velocity in Ground, anchored at
// the body origin. Velocity stage.
func (s *State) BodyVelocity(b BodyIndex) spatial.SpatialVec {
	s.requireStage(StageVelocity, "BodyVelocity")
	return spatial.SV(s.vel.w[b], s.vel.v[b])
}

// BodyAcceleration returns body b's angular acceleration and body-origin
// point acceleration in Ground. Acceleration stage.
func (s *State) BodyAcceleration(b BodyIndex) spatial.SpatialVec {
	s.requireStage(StageAcceleration, "BodyAcceleration")
	return spatial.SV(s.acc.alpha[b], s.acc.a[b])
}

// UDot returns a copy of the realized generalized accelerations.
// Acceleration stage.
func (s *State) UDot() []float64 {
	s.requireStage(StageAcceleration, "UDot")
	return append([]float64(nil), s.acc.udot...)
}

// Multipliers returns a copy of the realized Lagrange multipliers for
// constraint ci. Acceleration stage.
func (s *State) Multipliers(ci ConstraintIndex) []float64 {
	s.requireStage(StageAcceleration, "Multipliers")
	start := 0
	for i := 0; i < int(ci); i++ {
		start += s.sys.constraints[i].NumEquations()
	}
	n := s.sys.constraints[ci].NumEquations()
	return append([]float64(nil), s.acc.lambda[start:start+n]...)
}

// Realize advances the state to stage g, computing and caching each
// intermediate stage.
func (s *State) Realize(g Stage) error {
	if !s.sys.finalized {
		return ErrNotFinalized
	}
	for s.stage < g {
		switch s.stage {
		case StageTopology:
			s.pos = computePositions(s.sys, s.q)
			s.stage = StagePosition
		case StagePosition:
			s.vel = computeVelocities(s.sys, s.pos, s.u)
			s.stage = StageVelocity
		case StageVelocity:
			acc, err := realizeAcceleration(s.sys, s.pos, s.vel, s.u)
			if err != nil {
				return err
			}
			s.acc = acc
			s.stage = StageAcceleration
		}
	}
	return nil
}
