package mbody

import "github.com/san-kum/articulate/internal/spatial"

// CalcMobilizerReactionForces computes, for every mobilized body, the
// spatial force its mobilizer transmits from parent to child, anchored at
// the outboard frame (M) origin and expressed in Ground. The Ground entry
// is zero. Requires the state realized to StageAcceleration.
//
// The computation is a tip-to-base Newton-Euler pass: each body's rate of
// change of spatial momentum, minus the applied and constraint forces
// acting on it directly, minus the reactions already passed out to its
// children, is what the inboard joint must supply. An unloaded Free joint
// therefore reports an exactly zero reaction up to solver round-off.
func (sys *System) CalcMobilizerReactionForces(s *State) []spatial.SpatialVec {
	s.requireStage(StageAcceleration, "CalcMobilizerReactionForces")
	pc, vc, ac := s.pos, s.vel, s.acc

	total := make([]spatial.SpatialVec, len(sys.bodies))
	copy(total, ac.applied)
	sys.addConstraintForces(pc, ac.lambda, total)

	_, trans := inverseDynamics(sys, pc, vc, ac.alpha, ac.a, total)
	trans[Ground] = spatial.SpatialVec{}
	return trans
}

// addConstraintForces accumulates every constraint's applied body forces
// for the given stacked multipliers.
func (sys *System) addConstraintForces(pc *posCache, lambda []float64, bodyForces []spatial.SpatialVec) {
	row := 0
	scratch := make([]spatial.SpatialVec, 2)
	for _, c := range sys.constraints {
		bodies := c.Bodies()
		if len(bodies) > len(scratch) {
			scratch = make([]spatial.SpatialVec, len(bodies))
		}
		c.bodyForces(pc, lambda[row:row+c.NumEquations()], scratch[:len(bodies)])
		for k, b := range bodies {
			bodyForces[b] = bodyForces[b].Add(scratch[k])
		}
		row += c.NumEquations()
	}
}

// CalcConstraintForcesFromMultipliers evaluates the spatial force
// constraint ci applies to each of its constrained bodies for an
// arbitrary multiplier vector, anchored at the body origins, expressed in
// Ground, in Bodies() order. Requires StagePosition.
func (sys *System) CalcConstraintForcesFromMultipliers(s *State, ci ConstraintIndex, lambda []float64) []spatial.SpatialVec {
	s.requireStage(StagePosition, "CalcConstraintForcesFromMultipliers")
	c := sys.constraints[ci]
	out := make([]spatial.SpatialVec, len(c.Bodies()))
	c.bodyForces(s.pos, lambda, out)
	return out
}

// ConstrainedBodyForces returns constraint ci's applied body forces for
// the realized multipliers. Requires StageAcceleration.
func (sys *System) ConstrainedBodyForces(s *State, ci ConstraintIndex) []spatial.SpatialVec {
	return sys.CalcConstraintForcesFromMultipliers(s, ci, s.Multipliers(ci))
}
