// Package scenario builds ready-to-run multibody systems by name for
// the CLI and examples.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/articulate/internal/mbody"
	"github.com/san-kum/articulate/internal/spatial"
)

type builder func() (*mbody.System, *mbody.State)

var registry = map[string]struct {
	description string
	build       builder
}{
	"pendulum": {"double pendulum on tilted pin joints", buildPendulum},
	"chain":    {"slider/pin/gimbal/pin chain", buildChain},
	"leg":      {"two-link leg: pin hip, slider knee", buildLeg},
	"rodtree":  {"branched gimbal tree closed by a rod constraint", buildRodTree},
	"freefall": {"free body tumbling under assorted forces", buildFreeFall},
}

// Names lists the available scenarios in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description for a scenario name.
func Describe(name string) string {
	return registry[name].description
}

// Build constructs the named system with its default initial state.
func Build(name string) (*mbody.System, *mbody.State, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, nil, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	sys, st := entry.build()
	return sys, st, nil
}

func buildPendulum() (*mbody.System, *mbody.State) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	props := mbody.NewMassProperties(1, spatial.Vec{}, mbody.SphericalInertia(1))
	x45 := spatial.RotX(math.Pi / 4)
	inb := spatial.NewTransform(x45, spatial.V(0, -1, 0))
	out := spatial.Translation(spatial.V(0, 1, 0))
	p1 := sys.AddBody(mbody.NewPin(), mbody.Ground, inb, props, out)
	p2 := sys.AddBody(mbody.NewPin(), p1, inb, props, out)
	sys.Finalize()

	st := sys.DefaultState()
	st.SetOneQ(p1, 0, math.Pi/4)
	st.SetOneQ(p2, 0, math.Pi/4)
	st.SetOneU(p1, 0, 1)
	st.SetOneU(p2, 0, 1)
	return sys, st
}

func buildChain() (*mbody.System, *mbody.State) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	inertia := mbody.NewInertia(0.1, 0.1, 0.1, 0.01, 0.01, 0.01)
	ident := spatial.IdentityTransform()
	out := spatial.Translation(spatial.V(0, -0.2, 0))
	inb := spatial.Translation(spatial.V(0, 0.2, 0))
	b1 := sys.AddBody(mbody.NewSlider(), mbody.Ground, ident, mbody.NewMassProperties(10, spatial.Vec{}, inertia), ident)
	b2 := sys.AddBody(mbody.NewPin(), b1, spatial.Translation(spatial.V(0.1, 0.1, 0)), mbody.NewMassProperties(20, spatial.Vec{}, inertia), out)
	b3 := sys.AddBody(mbody.NewGimbal(), b2, inb, mbody.NewMassProperties(20, spatial.Vec{}, inertia), out)
	b4 := sys.AddBody(mbody.NewPin(), b3, inb, mbody.NewMassProperties(30, spatial.Vec{}, inertia), out)
	sys.Finalize()

	st := sys.DefaultState()
	st.SetOneQ(b2, 0, 0.5)
	st.SetQFromRotation(b3, spatial.RotZ(0.2).Mul(spatial.RotX(-0.1)))
	st.SetOneQ(b4, 0, -0.5)
	return sys, st
}

func buildLeg() (*mbody.System, *mbody.State) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8065, 0)})
	femur := mbody.NewMassProperties(8.806, spatial.Vec{}, mbody.PrincipalInertia(0.1268, 0.0332, 0.1337))
	tibia := mbody.NewMassProperties(3.510, spatial.Vec{}, mbody.PrincipalInertia(0.0477, 0.0048, 0.0484))
	hip := sys.AddBody(mbody.NewPin(), mbody.Ground, spatial.Translation(spatial.V(0, -0.07, 0.0935)), femur, spatial.Translation(spatial.V(0.002, 0.1715, 0)))
	knee := sys.AddBody(mbody.NewSlider(), hip, spatial.Translation(spatial.V(0.0033, -0.2294, 0)), tibia, spatial.Translation(spatial.V(0, 0.1862, 0)))
	sys.Finalize()

	st := sys.DefaultState()
	st.SetOneQ(hip, 0, -0.8)
	st.SetOneQ(knee, 0, 0.05)
	return sys, st
}

func buildRodTree() (*mbody.System, *mbody.State) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -9.8, 0)})
	inertia := mbody.NewInertia(0.1, 0.1, 0.1, 0.01, 0.01, 0.01)
	ident := spatial.IdentityTransform()
	out := spatial.Translation(spatial.V(0, 0.2, 0))
	b1 := sys.AddBody(mbody.NewGimbal(), mbody.Ground, ident, mbody.NewMassProperties(10, spatial.Vec{}, inertia), ident)
	b2 := sys.AddBody(mbody.NewGimbal(), b1, spatial.Translation(spatial.V(0, -0.1, 0.2)), mbody.NewMassProperties(20, spatial.Vec{}, inertia), out)
	b3 := sys.AddBody(mbody.NewGimbal(), b1, spatial.Translation(spatial.V(0, -0.1, -0.2)), mbody.NewMassProperties(20, spatial.Vec{}, inertia), out)
	b4 := sys.AddBody(mbody.NewGimbal(), b2, spatial.Translation(spatial.V(0, -0.2, 0)), mbody.NewMassProperties(30, spatial.Vec{}, inertia), out)
	b5 := sys.AddBody(mbody.NewGimbal(), b3, spatial.Translation(spatial.V(0, -0.2, 0)), mbody.NewMassProperties(30, spatial.Vec{}, inertia), out)
	sys.AddConstraint(mbody.NewRodConstraint(b4, spatial.Vec{}, b5, spatial.Vec{}, 0.15))
	sys.Finalize()
	return sys, sys.DefaultState()
}

func buildFreeFall() (*mbody.System, *mbody.State) {
	sys := mbody.NewSystem()
	sys.AddForce(mbody.UniformGravity{G: spatial.V(0, -1, 0)})
	com := spatial.V(1, 2, 3)
	gyration := mbody.NewInertia(1, 1.5, 2, -0.1, -0.2, -0.3)
	props := mbody.NewMassProperties(2, com, gyration.ShiftFromCOM(com, 1).Scale(2))
	xGF := spatial.NewTransform(spatial.AxisAngle(spatial.V(0.1, -0.3, 0.3), math.Pi/3), spatial.V(-4, -5, -1))
	xBM := spatial.NewTransform(spatial.AxisAngle(spatial.V(7, 5, 3), -math.Pi/10), spatial.V(0, 1.5, 0))
	b := sys.AddBody(mbody.NewFree(), mbody.Ground, xGF, props, xBM)
	sys.AddForce(mbody.ConstantForce{Body: b, Station: spatial.V(-1, 0.27, 4), Force: spatial.V(5, 0.6, -1)})
	sys.AddForce(mbody.ConstantTorque{Body: b, Torque: spatial.V(-5.5, 1.6, -1.1)})
	sys.Finalize()

	st := sys.DefaultState()
	st.SetUFromVelocity(b, spatial.SV(spatial.V(0.99, 2, 4), spatial.V(-1.2, 4, 0)))
	return sys, st
}
