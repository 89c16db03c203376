package metrics

import (
	"math"

	"github.com/san-kum/articulate/internal/mbody"
)

// ConstraintViolation tracks the worst position-level constraint error
// seen during a run.
type ConstraintViolation struct {
	name    string
	sys     *mbody.System
	maxPerr float64
	samples int
}

func NewConstraintViolation(sys *mbody.System) *ConstraintViolation {
	return &ConstraintViolation{
		name: "constraint_violation",
		sys:  sys,
	}
}

func (c *ConstraintViolation) Name() string { return c.name }

func (c *ConstraintViolation) Observe(st *mbody.State, t float64) {
	c.samples++
	for _, e := range c.sys.PositionErrors(st) {
		c.maxPerr = math.Max(c.maxPerr, math.Abs(e))
	}
}

func (c *ConstraintViolation) Value() float64 {
	return c.maxPerr
}

func (c *ConstraintViolation) Reset() {
	c.maxPerr = 0
	c.samples = 0
}
