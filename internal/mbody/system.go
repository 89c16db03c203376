package mbody

import (
	"fmt"

	"github.com/san-kum/articulate/internal/spatial"
)

// BodyIndex identifies a mobilized body within its System. Index 0 is
// always Ground.
type BodyIndex int

// Ground is the distinguished immobile root body.
const Ground BodyIndex = 0

// ConstraintIndex identifies a constraint within its System.
type ConstraintIndex int

// MobilizedBody is one node of the kinematic tree: a rigid body plus the
// mobilizer connecting it to its parent. Created during assembly,
// immutable after Finalize.
type MobilizedBody struct {
	index    BodyIndex
	parent   BodyIndex
	inboard  spatial.Transform // X_PF, fixed in the parent
	outboard spatial.Transform // X_BM, fixed in this body
	props    MassProperties
	central  Inertia // inertia about the mass center, body frame
	joint    Joint

	qStart, uStart int
	children       []BodyIndex
}

// Index returns the body's topology-assigned handle.
func (b *MobilizedBody) Index() BodyIndex { return b.index }

// Parent returns the parent body's index.
func (b *MobilizedBody) Parent() BodyIndex { return b.parent }

// Joint returns the body's mobilizer.
func (b *MobilizedBody) Joint() Joint { return b.joint }

// InboardFrame returns X_PF, the joint frame fixed in the parent.
func (b *MobilizedBody) InboardFrame() spatial.Transform { return b.inboard }

// OutboardFrame returns X_BM, the joint frame fixed in this body.
func (b *MobilizedBody) OutboardFrame() spatial.Transform { return b.outboard }

// MassProperties returns the body's mass properties.
func (b *MobilizedBody) MassProperties() MassProperties { return b.props }

// System is an immutable-after-Finalize articulated-body model: the tree
// of mobilized bodies, bilateral constraints, and force elements.
type System struct {
	bodies      []*MobilizedBody
	constraints []Constraint
	forces      []ForceElement

	nq, nu, nlambda int
	finalized       bool
}

// NewSystem creates a system containing only Ground.
func NewSystem() *System {
	ground := &MobilizedBody{index: Ground, parent: -1,
		inboard:  spatial.IdentityTransform(),
		outboard: spatial.IdentityTransform(),
	}
	return &System{bodies: []*MobilizedBody{ground}}
}

// AddBody mobilizes a new body under parent: joint connects the inboard
// frame (fixed in the parent at X_PF) to the outboard frame (fixed in the
// new body at X_BM). Returns the new body's index.
func (sys *System) AddBody(j Joint, parent BodyIndex, inboard spatial.Transform, props MassProperties, outboard spatial.Transform) BodyIndex {
	if sys.finalized {
		panic(ErrFinalized)
	}
	if int(parent) < 0 || int(parent) >= len(sys.bodies) {
		panic(fmt.Errorf("%w: %d", ErrBadParent, parent))
	}
	b := &MobilizedBody{
		index:    BodyIndex(len(sys.bodies)),
		parent:   parent,
		inboard:  inboard,
		outboard: outboard,
		props:    props,
		joint:    j,
	}
	sys.bodies = append(sys.bodies, b)
	return b.index
}

// AddConstraint registers a bilateral constraint.
func (sys *System) AddConstraint(c Constraint) ConstraintIndex {
	if sys.finalized {
		panic(ErrFinalized)
	}
	sys.constraints = append(sys.constraints, c)
	return ConstraintIndex(len(sys.constraints) - 1)
}

// AddForce registers a force element.
func (sys *System) AddForce(f ForceElement) {
	if sys.finalized {
		panic(ErrFinalized)
	}
	sys.forces = append(sys.forces, f)
}

// Finalize freezes the topology: child lists, coordinate offsets, and
// derived mass properties. Idempotent.
func (sys *System) Finalize() {
	if sys.finalized {
		return
	}
	nq, nu := 0, 0
	for _, b := range sys.bodies[1:] {
		b.qStart, b.uStart = nq, nu
		nq += b.joint.NQ()
		nu += b.joint.NU()
		b.central = b.props.central()
		parent := sys.bodies[b.parent]
		parent.children = append(parent.children, b.index)
	}
	sys.nq, sys.nu = nq, nu
	nl := 0
	for _, c := range sys.constraints {
		nl += c.NumEquations()
	}
	sys.nlambda = nl
	sys.finalized = true
}

// NumBodies returns the body count including Ground.
func (sys *System) NumBodies() int { return len(sys.bodies) }

// NumQ returns the total generalized-coordinate count.
func (sys *System) NumQ() int { return sys.nq }

// NumU returns the total generalized-speed count.
func (sys *System) NumU() int { return sys.nu }

// NumMultipliers returns the total constraint-equation count.
func (sys *System) NumMultipliers() int { return sys.nlambda }

// Body returns the mobilized body at index b.
func (sys *System) Body(b BodyIndex) *MobilizedBody { return sys.bodies[b] }

// Constraint returns the constraint at index ci.
func (sys *System) Constraint(ci ConstraintIndex) Constraint { return sys.constraints[ci] }

// DefaultState finalizes the system if needed and returns a state at the
// default configuration (all joints at identity, all speeds zero).
func (sys *System) DefaultState() *State {
	sys.Finalize()
	s := &State{
		sys:   sys,
		q:     make([]float64, sys.nq),
		u:     make([]float64, sys.nu),
		stage: StageTopology,
	}
	for _, b := range sys.bodies[1:] {
		copy(s.q[b.qStart:], b.joint.DefaultQ())
	}
	return s
}

// qSlice returns the coordinate slice of body b within q.
func (sys *System) qSlice(q []float64, b *MobilizedBody) []float64 {
	return q[b.qStart : b.qStart+b.joint.NQ()]
}

// uSlice returns the speed slice of body b within u.
func (sys *System) uSlice(u []float64, b *MobilizedBody) []float64 {
	return u[b.uStart : b.uStart+b.joint.NU()]
}
