package spatial

// Transform is a rigid transform: rotation plus translation. As a frame
// relation X_AB it takes coordinates measured in B to coordinates in A.
type Transform struct {
	R Rotation
	P Vec
}

// NewTransform builds a transform from a rotation and translation.
func NewTransform(r Rotation, p Vec) Transform { return Transform{R: r, P: p} }

// Translation builds a pure-translation transform.
func Translation(p Vec) Transform { return Transform{R: Identity(), P: p} }

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform { return Transform{R: Identity()} }

// Compose returns t*o, so that X_AC = X_AB.Compose(X_BC).
func (t Transform) Compose(o Transform) Transform {
	return Transform{R: t.R.Mul(o.R), P: t.P.Add(t.R.Apply(o.P))}
}

// Apply maps a point from the child frame into the parent frame.
func (t Transform) Apply(p Vec) Vec { return t.P.Add(t.R.Apply(p)) }

// Invert returns the inverse transform.
func (t Transform) Invert() Transform {
	rt := t.R.Transpose()
	return Transform{R: rt, P: rt.Apply(t.P.Mul(-1))}
}
