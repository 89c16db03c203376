package mbody

// TimeDerivatives realizes the state to StageAcceleration and returns
// (qdot, udot) for time integration. qdot comes from each joint's
// coordinate kinematics, udot from the realized dynamics.
func (sys *System) TimeDerivatives(s *State) (qdot, udot []float64, err error) {
	if err := s.Realize(StageAcceleration); err != nil {
		return nil, nil, err
	}
	qdot = make([]float64, sys.nq)
	for _, b := range sys.bodies[1:] {
		b.joint.QDot(sys.qSlice(s.q, b), sys.uSlice(s.u, b), sys.qSlice(qdot, b))
	}
	return qdot, s.UDot(), nil
}

// CoordinateRates returns qdot for the current coordinates and speeds
// without realizing dynamics.
func (sys *System) CoordinateRates(s *State) []float64 {
	qdot := make([]float64, sys.nq)
	for _, b := range sys.bodies[1:] {
		b.joint.QDot(sys.qSlice(s.q, b), sys.uSlice(s.u, b), sys.qSlice(qdot, b))
	}
	return qdot
}

// Advance overwrites the state's coordinates and speeds (integration
// support) and re-canonicalizes the coordinates, renormalizing quaternion
// blocks drifted by the integrator.
func (s *State) Advance(q, u []float64) {
	s.setQ(q)
	s.setU(u)
	for _, b := range s.sys.bodies[1:] {
		qs := s.sys.qSlice(s.q, b)
		b.joint.FitTransform(b.joint.Transform(qs), qs)
	}
}
