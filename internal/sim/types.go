package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/articulate/internal/mbody"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(st *mbody.State, t float64)
	Value() float64
	Reset()
}

// Observer is called once per step with the realized state.
type Observer interface {
	OnStep(st *mbody.State, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	// ProjectTol enables constraint assembly projection when positive.
	ProjectTol float64
	// ProjectEvery spaces projections out; 0 projects every step.
	ProjectEvery  int
	ValidateState bool
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim: t=%.4f step=%d: %s", e.Time, e.Step, e.Message)
}

type Result struct {
	Times       []float64
	Q           [][]float64
	U           [][]float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

func validState(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
