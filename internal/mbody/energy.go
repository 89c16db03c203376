package mbody

// potentialer is implemented by force elements that derive from a
// potential, letting the system report a total mechanical energy.
type potentialer interface {
	potentialEnergy(sys *System, pc *posCache) float64
}

func (g UniformGravity) potentialEnergy(sys *System, pc *posCache) float64 {
	pe := 0.0
	for _, b := range sys.bodies[1:] {
		pe -= b.props.Mass * g.G.Dot(pc.com[b.index])
	}
	return pe
}

// KineticEnergy sums translational and rotational kinetic energy over all
// bodies. Requires StageVelocity.
func (s *State) KineticEnergy() float64 {
	s.requireStage(StageVelocity, "KineticEnergy")
	ke := 0.0
	for _, b := range s.sys.bodies[1:] {
		i := b.index
		vCom := stationVelocity(s.pos, s.vel, i, b.props.COM)
		w := s.vel.w[i]
		inertiaG := b.central.Rotate(s.pos.xGB[i].R)
		ke += 0.5*b.props.Mass*vCom.Dot(vCom) + 0.5*w.Dot(inertiaG.Apply(w))
	}
	return ke
}

// PotentialEnergy sums the potential of every force element that has
// one; other elements contribute nothing. Requires StagePosition.
func (sys *System) PotentialEnergy(s *State) float64 {
	s.requireStage(StagePosition, "PotentialEnergy")
	pe := 0.0
	for _, fe := range sys.forces {
		if p, ok := fe.(potentialer); ok {
			pe += p.potentialEnergy(sys, s.pos)
		}
	}
	return pe
}

// PositionErrors stacks every constraint's position-level violations.
// Requires StagePosition.
func (sys *System) PositionErrors(s *State) []float64 {
	s.requireStage(StagePosition, "PositionErrors")
	out := make([]float64, sys.nlambda)
	row := 0
	for _, c := range sys.constraints {
		c.positionErrors(s.pos, out[row:row+c.NumEquations()])
		row += c.NumEquations()
	}
	return out
}

// VelocityErrors stacks every constraint's velocity-level violations.
// Requires StageVelocity.
func (sys *System) VelocityErrors(s *State) []float64 {
	s.requireStage(StageVelocity, "VelocityErrors")
	out := make([]float64, sys.nlambda)
	row := 0
	for _, c := range sys.constraints {
		c.velocityErrors(s.pos, s.vel, out[row:row+c.NumEquations()])
		row += c.NumEquations()
	}
	return out
}
