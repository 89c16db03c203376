// Package spatial provides the 3D algebra used by the multibody engine:
// rotations, rigid transforms, and 6-component spatial vectors.
//
// Spatial vectors pair an angular and a linear 3-vector and represent
// either motion (angular velocity, velocity of a reference point) or
// force (torque, force at a reference point). The reference point is
// implicit; [ShiftForce] re-anchors a force at a different point.
//
// Comparisons are tolerance-based and scale with operand magnitude, so
// they stay meaningful across problem scales. Rotations are compared by
// relative angle, never componentwise.
package spatial
