package metrics

import (
	"math"

	"github.com/san-kum/articulate/internal/mbody"
)

// PeakReaction tracks the largest reaction force magnitude transmitted
// through one body's mobilizer over a run.
type PeakReaction struct {
	name    string
	sys     *mbody.System
	body    mbody.BodyIndex
	maxLin  float64
	maxAng  float64
	samples int
}

func NewPeakReaction(sys *mbody.System, body mbody.BodyIndex) *PeakReaction {
	return &PeakReaction{
		name: "peak_reaction",
		sys:  sys,
		body: body,
	}
}

func (p *PeakReaction) Name() string { return p.name }

func (p *PeakReaction) Observe(st *mbody.State, t float64) {
	p.samples++
	r := p.sys.CalcMobilizerReactionForces(st)[p.body]
	p.maxLin = math.Max(p.maxLin, r.Lin.Norm())
	p.maxAng = math.Max(p.maxAng, r.Ang.Norm())
}

// Value reports the peak force magnitude; the peak torque is available
// separately.
func (p *PeakReaction) Value() float64 {
	return p.maxLin
}

func (p *PeakReaction) PeakTorque() float64 {
	return p.maxAng
}

func (p *PeakReaction) Reset() {
	p.maxLin = 0
	p.maxAng = 0
	p.samples = 0
}
