package spatial

import "math"

// EqualWithin reports |a-b| < tol*max(|a|, 1). The scaling keeps the
// comparison meaningful for both small and large magnitudes.
func EqualWithin(a, b, tol float64) bool {
	return math.Abs(a-b) < tol*math.Max(math.Abs(a), 1)
}

// VecEqualWithin compares componentwise with tolerance scaled by the
// norm of the first operand (floored at 1).
func VecEqualWithin(a, b Vec, tol float64) bool {
	scale := math.Max(a.Norm(), 1)
	return math.Abs(a.X-b.X) < tol*scale &&
		math.Abs(a.Y-b.Y) < tol*scale &&
		math.Abs(a.Z-b.Z) < tol*scale
}

// SpatialEqualWithin compares the angular and linear parts separately.
func SpatialEqualWithin(a, b SpatialVec, tol float64) bool {
	return VecEqualWithin(a.Ang, b.Ang, tol) && VecEqualWithin(a.Lin, b.Lin, tol)
}

// TransformEqualWithin compares translations componentwise and rotations
// by relative angle.
func TransformEqualWithin(a, b Transform, tol float64) bool {
	return VecEqualWithin(a.P, b.P, tol) && a.R.SameRotationToWithinAngle(b.R, tol)
}
