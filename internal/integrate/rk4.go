package integrate

import "github.com/san-kum/articulate/internal/mbody"

// RK4 is the classical fourth-order Runge-Kutta method. Stage states are
// evaluated on a scratch copy so the caller's state only moves once per
// step.
type RK4 struct {
	scratch *mbody.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(sys *mbody.System, st *mbody.State, dt float64) error {
	if r.scratch == nil || r.scratch.System() != st.System() {
		r.scratch = st.Clone()
	}
	q0, u0 := st.Q(), st.U()

	eval := func(q, u []float64) (qdot, udot []float64, err error) {
		r.scratch.Advance(q, u)
		return sys.TimeDerivatives(r.scratch)
	}

	qk1, uk1, err := eval(q0, u0)
	if err != nil {
		return err
	}
	qk2, uk2, err := eval(axpy(q0, dt*0.5, qk1), axpy(u0, dt*0.5, uk1))
	if err != nil {
		return err
	}
	qk3, uk3, err := eval(axpy(q0, dt*0.5, qk2), axpy(u0, dt*0.5, uk2))
	if err != nil {
		return err
	}
	qk4, uk4, err := eval(axpy(q0, dt, qk3), axpy(u0, dt, uk3))
	if err != nil {
		return err
	}

	dt6 := dt / 6.0
	q := make([]float64, len(q0))
	for i := range q {
		q[i] = q0[i] + dt6*(qk1[i]+2*qk2[i]+2*qk3[i]+qk4[i])
	}
	u := make([]float64, len(u0))
	for i := range u {
		u[i] = u0[i] + dt6*(uk1[i]+2*uk2[i]+2*uk3[i]+uk4[i])
	}
	st.Advance(q, u)
	return nil
}
