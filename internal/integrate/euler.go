package integrate

import "github.com/san-kum/articulate/internal/mbody"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys *mbody.System, st *mbody.State, dt float64) error {
	qdot, udot, err := sys.TimeDerivatives(st)
	if err != nil {
		return err
	}
	st.Advance(axpy(st.Q(), dt, qdot), axpy(st.U(), dt, udot))
	return nil
}

// SemiEuler is the semi-implicit (symplectic) Euler method: speeds are
// updated first and the coordinates stepped with the new speeds. For
// mechanical systems it drifts far less than the explicit method at the
// same cost.
type SemiEuler struct{}

func NewSemiEuler() *SemiEuler {
	return &SemiEuler{}
}

func (s *SemiEuler) Name() string { return "semieuler" }

func (s *SemiEuler) Step(sys *mbody.System, st *mbody.State, dt float64) error {
	_, udot, err := sys.TimeDerivatives(st)
	if err != nil {
		return err
	}
	u := axpy(st.U(), dt, udot)
	st.Advance(st.Q(), u)
	qdot := sys.CoordinateRates(st)
	st.Advance(axpy(st.Q(), dt, qdot), u)
	return nil
}
