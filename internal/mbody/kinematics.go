package mbody

import "github.com/san-kum/articulate/internal/spatial"

// posCache holds position-stage results, all in Ground unless noted.
type posCache struct {
	xFM []spatial.Transform // across-joint transform, in F
	xGB []spatial.Transform // body frame
	rGF []spatial.Rotation  // inboard frame rotation
	pF  []spatial.Vec       // inboard frame origin
	pM  []spatial.Vec       // outboard frame origin
	com []spatial.Vec       // mass center
}

// velCache holds velocity-stage results in Ground.
type velCache struct {
	w []spatial.Vec // body angular velocity
	v []spatial.Vec // velocity of the body origin point
}

// accCache holds acceleration-stage results.
type accCache struct {
	alpha   []spatial.Vec // body angular acceleration, Ground
	a       []spatial.Vec // acceleration of the body origin point, Ground
	udot    []float64
	lambda  []float64            // stacked per-constraint multipliers
	applied []spatial.SpatialVec // force-element forces per body, body origin, Ground
	mobile  []float64            // applied mobility forces per u
}

// computePositions runs the base-to-tip position recursion.
func computePositions(sys *System, q []float64) *posCache {
	n := len(sys.bodies)
	pc := &posCache{
		xFM: make([]spatial.Transform, n),
		xGB: make([]spatial.Transform, n),
		rGF: make([]spatial.Rotation, n),
		pF:  make([]spatial.Vec, n),
		pM:  make([]spatial.Vec, n),
		com: make([]spatial.Vec, n),
	}
	pc.xGB[Ground] = spatial.IdentityTransform()
	pc.xFM[Ground] = spatial.IdentityTransform()
	pc.rGF[Ground] = spatial.Identity()
	for _, b := range sys.bodies[1:] {
		xGF := pc.xGB[b.parent].Compose(b.inboard)
		xFM := b.joint.Transform(sys.qSlice(q, b))
		xGM := xGF.Compose(xFM)
		i := b.index
		pc.xFM[i] = xFM
		pc.rGF[i] = xGF.R
		pc.pF[i] = xGF.P
		pc.pM[i] = xGM.P
		pc.xGB[i] = xGM.Compose(b.outboard.Invert())
		pc.com[i] = pc.xGB[i].Apply(b.props.COM)
	}
	return pc
}

// computeVelocities runs the base-to-tip velocity recursion for speeds u.
// Linear in u, which realizeAcceleration exploits to form Jacobians.
func computeVelocities(sys *System, pc *posCache, u []float64) *velCache {
	n := len(sys.bodies)
	vc := &velCache{w: make([]spatial.Vec, n), v: make([]spatial.Vec, n)}
	for _, b := range sys.bodies[1:] {
		i, p := b.index, b.parent
		wP, vP := vc.w[p], vc.v[p]
		rP := pc.xGB[p].P

		// Inboard frame origin rides on the parent.
		vF := vP.Add(wP.Cross(pc.pF[i].Sub(rP)))

		loc := localVelocity(b.joint, sys.uSlice(u, b))
		wRel := pc.rGF[i].Apply(loc.Ang)
		vc.w[i] = wP.Add(wRel)

		// M origin: coincident point of the (parent-fixed) F frame plus
		// the across-joint relative velocity.
		sFM := pc.pM[i].Sub(pc.pF[i])
		vM := vF.Add(wP.Cross(sFM)).Add(pc.rGF[i].Apply(loc.Lin))

		// Body origin is rigid with M.
		d := pc.xGB[i].P.Sub(pc.pM[i])
		vc.v[i] = vM.Add(vc.w[i].Cross(d))
	}
	return vc
}

// computeAccelerations runs the base-to-tip acceleration recursion for
// generalized accelerations udot against the given position and velocity
// caches. Affine in udot; with u = 0 it reduces to the same linear map as
// computeVelocities.
func computeAccelerations(sys *System, pc *posCache, vc *velCache, u, udot []float64) (alpha, a []spatial.Vec) {
	n := len(sys.bodies)
	alpha = make([]spatial.Vec, n)
	a = make([]spatial.Vec, n)
	for _, b := range sys.bodies[1:] {
		i, p := b.index, b.parent
		wP, alP, aP := vc.w[p], alpha[p], a[p]
		rP := pc.xGB[p].P

		rF := pc.pF[i].Sub(rP)
		aF := aP.Add(alP.Cross(rF)).Add(wP.Cross(wP.Cross(rF)))

		loc := localVelocity(b.joint, sys.uSlice(u, b))
		locDot := localVelocity(b.joint, sys.uSlice(udot, b))
		rgf := pc.rGF[i]

		wRel := rgf.Apply(loc.Ang)
		alpha[i] = alP.Add(rgf.Apply(locDot.Ang)).Add(wP.Cross(wRel))

		// Classical five-term acceleration of the M origin: carried
		// point of the F frame, relative acceleration, Coriolis.
		sFM := pc.pM[i].Sub(pc.pF[i])
		vRel := rgf.Apply(loc.Lin)
		aM := aF.Add(alP.Cross(sFM)).
			Add(wP.Cross(wP.Cross(sFM))).
			Add(rgf.Apply(locDot.Lin)).
			Add(wP.Cross(vRel).Mul(2))

		d := pc.xGB[i].P.Sub(pc.pM[i])
		wB := vc.w[i]
		a[i] = aM.Add(alpha[i].Cross(d)).Add(wB.Cross(wB.Cross(d)))
	}
	return alpha, a
}

// station returns the Ground position of a point fixed in body b.
func (pc *posCache) station(b BodyIndex, p spatial.Vec) spatial.Vec {
	return pc.xGB[b].Apply(p)
}

// stationVelocity returns the Ground velocity of a point fixed in body b.
func stationVelocity(pc *posCache, vc *velCache, b BodyIndex, p spatial.Vec) spatial.Vec {
	arm := pc.xGB[b].R.Apply(p)
	return vc.v[b].Add(vc.w[b].Cross(arm))
}

// stationAcceleration returns the Ground acceleration of a point fixed in
// body b given body angular/origin accelerations.
func stationAcceleration(pc *posCache, vc *velCache, alpha, a []spatial.Vec, b BodyIndex, p spatial.Vec) spatial.Vec {
	arm := pc.xGB[b].R.Apply(p)
	return a[b].Add(alpha[b].Cross(arm)).Add(vc.w[b].Cross(vc.w[b].Cross(arm)))
}
