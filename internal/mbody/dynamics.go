package mbody

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/articulate/internal/solver"
	"github.com/san-kum/articulate/internal/spatial"
)

// inverseDynamics runs the tip-to-base Newton-Euler pass: given realized
// kinematics (alpha, a) and applied body forces, it returns the
// generalized force each mobilizer must supply and the spatial force each
// mobilizer transmits (anchored at its outboard frame origin, in Ground).
//
// applied may be nil (treated as zero).
func inverseDynamics(sys *System, pc *posCache, vc *velCache, alpha, a []spatial.Vec, applied []spatial.SpatialVec) (tau []float64, trans []spatial.SpatialVec) {
	n := len(sys.bodies)
	tau = make([]float64, sys.nu)
	trans = make([]spatial.SpatialVec, n)
	// Net force required at each body origin, accumulated tip to base.
	net := make([]spatial.SpatialVec, n)

	for i := n - 1; i >= 1; i-- {
		b := sys.bodies[i]
		rB := pc.xGB[i].P
		w := vc.w[i]

		// Rate of change of spatial momentum, anchored at the body origin.
		cG := pc.com[i].Sub(rB)
		aCom := a[i].Add(alpha[i].Cross(cG)).Add(w.Cross(w.Cross(cG)))
		f := aCom.Mul(b.props.Mass)
		inertiaG := b.central.Rotate(pc.xGB[i].R)
		tq := inertiaG.Apply(alpha[i]).Add(w.Cross(inertiaG.Apply(w)))
		need := spatial.SV(tq.Add(cG.Cross(f)), f)

		if applied != nil {
			need = need.Sub(applied[i])
		}
		need = need.Add(net[i])

		// Report across the mobilizer, anchored at the M origin.
		trans[i] = spatial.ShiftForce(need, rB, pc.pM[i])

		// Project onto the joint's motion subspace for the generalized
		// force, then pass the load up to the parent.
		rgf := pc.rGF[i]
		for k, s := range b.joint.MotionSpace() {
			tau[b.uStart+k] = s.Rotate(rgf).Dot(trans[i])
		}
		p := b.parent
		if p != Ground {
			net[p] = net[p].Add(spatial.ShiftForce(trans[i], pc.pM[i], pc.xGB[p].P))
		}
	}
	return tau, trans
}

// constraintJacobian builds G (m x nu): row r, column j holds the
// velocity error of equation r under unit speed j. Exploits linearity of
// the velocity recursion.
func constraintJacobian(sys *System, pc *posCache) *mat.Dense {
	m := sys.nlambda
	if m == 0 {
		return nil
	}
	g := mat.NewDense(m, sys.nu, nil)
	ej := make([]float64, sys.nu)
	scratch := make([]float64, m)
	for j := 0; j < sys.nu; j++ {
		ej[j] = 1
		vc := computeVelocities(sys, pc, ej)
		row := 0
		for _, c := range sys.constraints {
			c.velocityErrors(pc, vc, scratch[row:row+c.NumEquations()])
			row += c.NumEquations()
		}
		for r := 0; r < m; r++ {
			g.Set(r, j, scratch[r])
		}
		ej[j] = 0
	}
	return g
}

// realizeAcceleration solves the equations of motion plus constraint
// equations for generalized accelerations and multipliers:
//
//	M udot + c = tau_applied - G^T lambda
//	G udot + b = 0
//
// assembled as one KKT system. M comes from inverse-dynamics columns with
// unit generalized accelerations; c from the zero-udot pass including
// applied forces.
func realizeAcceleration(sys *System, pc *posCache, vc *velCache, u []float64) (*accCache, error) {
	n := len(sys.bodies)
	nu := sys.nu

	applied := make([]spatial.SpatialVec, n)
	mobile := make([]float64, nu)
	for _, fe := range sys.forces {
		fe.apply(sys, pc, vc, applied, mobile)
	}

	zero := make([]float64, nu)

	// Bias: generalized force needed with udot = 0, minus mobility input.
	alpha0, a0 := computeAccelerations(sys, pc, vc, u, zero)
	bias, _ := inverseDynamics(sys, pc, vc, alpha0, a0, applied)
	f := make([]float64, nu)
	for j := range f {
		f[j] = mobile[j] - bias[j]
	}

	// Mass matrix, one inverse-dynamics column per unit acceleration.
	mM := mat.NewDense(nu, nu, nil)
	zeroVel := &velCache{w: make([]spatial.Vec, n), v: make([]spatial.Vec, n)}
	ej := make([]float64, nu)
	for j := 0; j < nu; j++ {
		ej[j] = 1
		alphaJ, aJ := computeAccelerations(sys, pc, zeroVel, zero, ej)
		col, _ := inverseDynamics(sys, pc, zeroVel, alphaJ, aJ, nil)
		for i := 0; i < nu; i++ {
			mM.Set(i, j, col[i])
		}
		ej[j] = 0
	}

	var g *mat.Dense
	var b []float64
	if sys.nlambda > 0 {
		g = constraintJacobian(sys, pc)
		b = make([]float64, sys.nlambda)
		row := 0
		for _, c := range sys.constraints {
			c.accelerationErrors(pc, vc, alpha0, a0, b[row:row+c.NumEquations()])
			row += c.NumEquations()
		}
		for i := range b {
			b[i] = -b[i]
		}
	}

	udot, lambda, err := solver.SolveKKT(mM, g, f, b)
	if err != nil {
		return nil, ErrSingular
	}

	alpha, a := computeAccelerations(sys, pc, vc, u, udot)
	return &accCache{alpha: alpha, a: a, udot: udot, lambda: lambda, applied: applied, mobile: mobile}, nil
}
