package mbody

import "github.com/san-kum/articulate/internal/spatial"

// Inertia is a symmetric rotational inertia matrix
//
//	[XX XY XZ]
//	[XY YY YZ]
//	[XZ YZ ZZ]
//
// taken about some point, expressed in some frame. Off-diagonal entries
// are stored as they appear in the matrix.
type Inertia struct {
	XX, YY, ZZ float64
	XY, XZ, YZ float64
}

// PrincipalInertia builds a diagonal inertia.
func PrincipalInertia(xx, yy, zz float64) Inertia {
	return Inertia{XX: xx, YY: yy, ZZ: zz}
}

// SphericalInertia builds the inertia of a uniform sphere-like body with
// equal moments about all axes.
func SphericalInertia(moment float64) Inertia {
	return PrincipalInertia(moment, moment, moment)
}

// NewInertia builds an inertia from its moments (xx,yy,zz) and
// off-diagonal matrix entries (xy,xz,yz), stored exactly as given.
func NewInertia(xx, yy, zz, xy, xz, yz float64) Inertia {
	return Inertia{XX: xx, YY: yy, ZZ: zz, XY: xy, XZ: xz, YZ: yz}
}

// Apply multiplies the inertia matrix by a vector.
func (i Inertia) Apply(w spatial.Vec) spatial.Vec {
	return spatial.V(
		i.XX*w.X+i.XY*w.Y+i.XZ*w.Z,
		i.XY*w.X+i.YY*w.Y+i.YZ*w.Z,
		i.XZ*w.X+i.YZ*w.Y+i.ZZ*w.Z,
	)
}

// Add sums two inertias taken about the same point.
func (i Inertia) Add(o Inertia) Inertia {
	return Inertia{
		XX: i.XX + o.XX, YY: i.YY + o.YY, ZZ: i.ZZ + o.ZZ,
		XY: i.XY + o.XY, XZ: i.XZ + o.XZ, YZ: i.YZ + o.YZ,
	}
}

// Scale multiplies all entries by f.
func (i Inertia) Scale(f float64) Inertia {
	return Inertia{
		XX: i.XX * f, YY: i.YY * f, ZZ: i.ZZ * f,
		XY: i.XY * f, XZ: i.XZ * f, YZ: i.YZ * f,
	}
}

// Rotate re-expresses the inertia in a frame rotated by r: R I R^T.
func (i Inertia) Rotate(r spatial.Rotation) Inertia {
	// Columns of I R^T.
	c0 := r.Apply(i.Apply(r.ApplyInv(spatial.V(1, 0, 0))))
	c1 := r.Apply(i.Apply(r.ApplyInv(spatial.V(0, 1, 0))))
	c2 := r.Apply(i.Apply(r.ApplyInv(spatial.V(0, 0, 1))))
	return Inertia{
		XX: c0.X, YY: c1.Y, ZZ: c2.Z,
		XY: c0.Y, XZ: c0.Z, YZ: c1.Z,
	}
}

// pointInertia is m*(|c|^2 E - c c^T), the inertia of a point mass m at c.
func pointInertia(c spatial.Vec, m float64) Inertia {
	c2 := c.Dot(c)
	return Inertia{
		XX: m * (c2 - c.X*c.X), YY: m * (c2 - c.Y*c.Y), ZZ: m * (c2 - c.Z*c.Z),
		XY: -m * c.X * c.Y, XZ: -m * c.X * c.Z, YZ: -m * c.Y * c.Z,
	}
}

// ShiftFromCOM converts a central inertia to one about a point displaced
// by -com, i.e. about the body origin when the mass center sits at com.
func (i Inertia) ShiftFromCOM(com spatial.Vec, mass float64) Inertia {
	return i.Add(pointInertia(com, mass))
}

// ShiftToCOM converts an inertia about the body origin to the central
// inertia of a body whose mass center sits at com.
func (i Inertia) ShiftToCOM(com spatial.Vec, mass float64) Inertia {
	return i.Add(pointInertia(com, mass).Scale(-1))
}

// MassProperties describes a rigid body: mass, mass center measured in
// the body frame, and inertia about the body origin in the body frame.
type MassProperties struct {
	Mass    float64
	COM     spatial.Vec
	Inertia Inertia
}

// NewMassProperties builds mass properties from mass, mass center and
// inertia about the body origin.
func NewMassProperties(mass float64, com spatial.Vec, inertia Inertia) MassProperties {
	return MassProperties{Mass: mass, COM: com, Inertia: inertia}
}

// central returns the inertia about the mass center.
func (p MassProperties) central() Inertia {
	return p.Inertia.ShiftToCOM(p.COM, p.Mass)
}
