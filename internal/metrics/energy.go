package metrics

import (
	"math"

	"github.com/san-kum/articulate/internal/mbody"
)

// EnergyDrift tracks the peak relative deviation of total mechanical
// energy from its value at the first observation.
type EnergyDrift struct {
	name          string
	sys           *mbody.System
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(sys *mbody.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(st *mbody.State, t float64) {
	energy := st.KineticEnergy() + e.sys.PotentialEnergy(st)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++
	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
