package mbody

import (
	"math"

	"github.com/san-kum/articulate/internal/solver"
)

const maxProjectIterations = 50

// Project adjusts the state's coordinates and speeds so every constraint
// is satisfied to tol at the position and velocity levels. Coordinates
// move by a Gauss-Newton least-norm correction in u-space, applied
// through each joint's perturbation map; speeds get a single linear
// least-norm correction. No-op for unconstrained systems.
func (sys *System) Project(s *State, tol float64) error {
	if !sys.finalized {
		return ErrNotFinalized
	}
	if sys.nlambda == 0 {
		return nil
	}

	perr := make([]float64, sys.nlambda)
	converged := false
	for iter := 0; iter < maxProjectIterations; iter++ {
		if err := s.Realize(StagePosition); err != nil {
			return err
		}
		row := 0
		for _, c := range sys.constraints {
			c.positionErrors(s.pos, perr[row:row+c.NumEquations()])
			row += c.NumEquations()
		}
		if maxAbs(perr) < tol {
			converged = true
			break
		}
		g := constraintJacobian(sys, s.pos)
		z, err := solver.LeastNorm(g, perr)
		if err != nil {
			return err
		}
		for _, b := range sys.bodies[1:] {
			b.joint.ApplyDelta(sys.qSlice(s.q, b), negate(z[b.uStart:b.uStart+b.joint.NU()]))
		}
		s.invalidate(StageTopology)
	}
	if !converged {
		return ErrProjection
	}

	// Velocity errors are linear in u, so one least-norm step suffices.
	if err := s.Realize(StageVelocity); err != nil {
		return err
	}
	verr := make([]float64, sys.nlambda)
	row := 0
	for _, c := range sys.constraints {
		c.velocityErrors(s.pos, s.vel, verr[row:row+c.NumEquations()])
		row += c.NumEquations()
	}
	if maxAbs(verr) >= tol {
		g := constraintJacobian(sys, s.pos)
		z, err := solver.LeastNorm(g, verr)
		if err != nil {
			return err
		}
		for i := range z {
			s.u[i] -= z[i]
		}
		s.invalidate(StagePosition)
	}
	return nil
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}
