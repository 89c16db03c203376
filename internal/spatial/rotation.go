package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Vec is the 3-vector type used throughout the engine.
type Vec = r3.Vector

// V builds a Vec from components.
func V(x, y, z float64) Vec { return Vec{X: x, Y: y, Z: z} }

// Rotation is a proper orthonormal 3x3 rotation matrix. The zero value is
// not valid; use the constructors.
type Rotation struct {
	m [3][3]float64
}

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{m: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// RotX returns a rotation by angle (radians) about the x axis.
func RotX(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{m: [3][3]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}}
}

// RotY returns a rotation by angle about the y axis.
func RotY(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{m: [3][3]float64{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}}
}

// RotZ returns a rotation by angle about the z axis.
func RotZ(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{m: [3][3]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}}
}

// AxisAngle returns the rotation by angle about the given axis. The axis
// need not be normalized.
func AxisAngle(axis Vec, angle float64) Rotation {
	n := axis.Norm()
	if n == 0 {
		return Identity()
	}
	return Exp(axis.Mul(angle / n))
}

// Exp is the exponential map: the rotation by |w| radians about w.
func Exp(w Vec) Rotation {
	theta := w.Norm()
	if theta == 0 {
		return Identity()
	}
	k := w.Mul(1 / theta)
	c, s := math.Cos(theta), math.Sin(theta)
	v := 1 - c
	return Rotation{m: [3][3]float64{
		{c + k.X*k.X*v, k.X*k.Y*v - k.Z*s, k.X*k.Z*v + k.Y*s},
		{k.Y*k.X*v + k.Z*s, c + k.Y*k.Y*v, k.Y*k.Z*v - k.X*s},
		{k.Z*k.X*v - k.Y*s, k.Z*k.Y*v + k.X*s, c + k.Z*k.Z*v},
	}}
}

// EulerBodyXYZ builds the body-fixed X-Y-Z Euler sequence Rx(ax)Ry(ay)Rz(az).
func EulerBodyXYZ(ax, ay, az float64) Rotation {
	return RotX(ax).Mul(RotY(ay)).Mul(RotZ(az))
}

// FromQuat converts a quaternion to a rotation. The quaternion is
// normalized first; a zero quaternion yields the identity.
func FromQuat(q quat.Number) Rotation {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n == 0 {
		return Identity()
	}
	w, x, y, z := q.Real/n, q.Imag/n, q.Jmag/n, q.Kmag/n
	return Rotation{m: [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}}
}

// Quat returns a unit quaternion equivalent to r, with non-negative real
// part.
func (r Rotation) Quat() quat.Number {
	m := &r.m
	tr := m[0][0] + m[1][1] + m[2][2]
	var q quat.Number
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: s / 4, Imag: (m[2][1] - m[1][2]) / s, Jmag: (m[0][2] - m[2][0]) / s, Kmag: (m[1][0] - m[0][1]) / s}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q = quat.Number{Real: (m[2][1] - m[1][2]) / s, Imag: s / 4, Jmag: (m[0][1] + m[1][0]) / s, Kmag: (m[0][2] + m[2][0]) / s}
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q = quat.Number{Real: (m[0][2] - m[2][0]) / s, Imag: (m[0][1] + m[1][0]) / s, Jmag: s / 4, Kmag: (m[1][2] + m[2][1]) / s}
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q = quat.Number{Real: (m[1][0] - m[0][1]) / s, Imag: (m[0][2] + m[2][0]) / s, Jmag: (m[1][2] + m[2][1]) / s, Kmag: s / 4}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// EulerBodyXYZ extracts angles (ax, ay, az) with r = Rx(ax)Ry(ay)Rz(az).
// Near the ay = ±pi/2 singularity az is pinned to zero.
func (r Rotation) EulerBodyXYZ() (ax, ay, az float64) {
	sy := clamp(r.m[0][2], -1, 1)
	ay = math.Asin(sy)
	if math.Abs(sy) < 1-1e-12 {
		ax = math.Atan2(-r.m[1][2], r.m[2][2])
		az = math.Atan2(-r.m[0][1], r.m[0][0])
		return ax, ay, az
	}
	// Gimbal lock: only ax±az is determined.
	ax = math.Atan2(r.m[2][1], r.m[1][1])
	return ax, ay, 0
}

// Mul composes rotations: (r.Mul(o)).Apply(v) == r.Apply(o.Apply(v)).
func (r Rotation) Mul(o Rotation) Rotation {
	var p Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.m[i][j] = r.m[i][0]*o.m[0][j] + r.m[i][1]*o.m[1][j] + r.m[i][2]*o.m[2][j]
		}
	}
	return p
}

// Transpose returns the inverse rotation.
func (r Rotation) Transpose() Rotation {
	var p Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.m[i][j] = r.m[j][i]
		}
	}
	return p
}

// Apply rotates a vector.
func (r Rotation) Apply(v Vec) Vec {
	return Vec{
		X: r.m[0][0]*v.X + r.m[0][1]*v.Y + r.m[0][2]*v.Z,
		Y: r.m[1][0]*v.X + r.m[1][1]*v.Y + r.m[1][2]*v.Z,
		Z: r.m[2][0]*v.X + r.m[2][1]*v.Y + r.m[2][2]*v.Z,
	}
}

// ApplyInv rotates a vector by the inverse of r.
func (r Rotation) ApplyInv(v Vec) Vec {
	return Vec{
		X: r.m[0][0]*v.X + r.m[1][0]*v.Y + r.m[2][0]*v.Z,
		Y: r.m[0][1]*v.X + r.m[1][1]*v.Y + r.m[2][1]*v.Z,
		Z: r.m[0][2]*v.X + r.m[1][2]*v.Y + r.m[2][2]*v.Z,
	}
}

// Col returns the i-th column: the image of the i-th base axis.
func (r Rotation) Col(i int) Vec {
	return Vec{X: r.m[0][i], Y: r.m[1][i], Z: r.m[2][i]}
}

// AngleTo returns the angle of the relative rotation between r and o.
func (r Rotation) AngleTo(o Rotation) float64 {
	q := quat.Mul(quat.Conj(r.Quat()), o.Quat())
	v := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	return 2 * math.Atan2(v, math.Abs(q.Real))
}

// SameRotationToWithinAngle reports whether r and o differ by a rotation
// of no more than tol radians.
func (r Rotation) SameRotationToWithinAngle(o Rotation, tol float64) bool {
	return r.AngleTo(o) <= tol
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
