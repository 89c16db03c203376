package integrate

import (
	"errors"

	"github.com/san-kum/articulate/internal/mbody"
)

var ErrUnknownStepper = errors.New("integrate: unknown stepper")

// Stepper advances a state by one timestep in place.
type Stepper interface {
	Name() string
	Step(sys *mbody.System, st *mbody.State, dt float64) error
}

// New builds a stepper by name.
func New(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "semieuler":
		return NewSemiEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, ErrUnknownStepper
	}
}

func axpy(x []float64, a float64, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + a*y[i]
	}
	return out
}
