package mbody

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/san-kum/articulate/internal/spatial"
)

// Joint defines one mobilizer type: the mapping between its generalized
// coordinates q / speeds u and the transform / spatial velocity of the
// outboard frame M measured in the inboard frame F.
//
// Speeds are chosen so that the across-joint velocity is a fixed linear
// combination of them: V_FM = sum_k u[k] * MotionSpace()[k], with each
// column expressed in F and anchored at the M origin. Fit operations are
// best-effort inverses, exact whenever the target lies on the joint's
// feasible manifold.
type Joint interface {
	// Name identifies the joint type.
	Name() string
	// NQ and NU are the coordinate and speed counts.
	NQ() int
	NU() int
	// DefaultQ appends the default coordinates (identity pose).
	DefaultQ() []float64
	// Transform maps coordinates to X_FM.
	Transform(q []float64) spatial.Transform
	// MotionSpace returns the NU constant motion-subspace columns in F.
	MotionSpace() []spatial.SpatialVec
	// FitTransform writes coordinates reproducing x as closely as the
	// joint allows.
	FitTransform(x spatial.Transform, q []float64)
	// FitVelocity writes speeds reproducing the across-joint velocity v
	// as closely as the joint allows.
	FitVelocity(v spatial.SpatialVec, u []float64)
	// ApplyDelta perturbs q by the u-space displacement z (used by the
	// assembly projection).
	ApplyDelta(q, z []float64)
	// QDot writes dq/dt given q and u (used by time integration).
	QDot(q, u, qdot []float64)
}

// localVelocity evaluates V_FM for a joint's speeds.
func localVelocity(j Joint, u []float64) spatial.SpatialVec {
	var v spatial.SpatialVec
	for k, s := range j.MotionSpace() {
		v = v.Add(s.Scale(u[k]))
	}
	return v
}

// Pin is a 1-dof rotational joint about the inboard frame z axis.
type Pin struct{}

// NewPin returns a pin (revolute) joint.
func NewPin() Pin { return Pin{} }

func (Pin) Name() string { return "pin" }
func (Pin) NQ() int { return 1 }
func (Pin) NU() int { return 1 }
func (Pin) DefaultQ() []float64 { return []float64{0} }
func (Pin) Transform(q []float64) spatial.Transform {
	return spatial.NewTransform(spatial.RotZ(q[0]), spatial.Vec{})
}
func (Pin) MotionSpace() []spatial.SpatialVec {
	return []spatial.SpatialVec{spatial.SV(spatial.V(0, 0, 1), spatial.Vec{})}
}

// FitTransform picks the z rotation closest to x's rotation; the
// translation is unreachable and ignored.
func (Pin) FitTransform(x spatial.Transform, q []float64) {
	q[0] = bestZAngle(x.R)
}
func (Pin) FitVelocity(v spatial.SpatialVec, u []float64) { u[0] = v.Ang.Z }
func (Pin) ApplyDelta(q, z []float64) { q[0] += z[0] }
func (Pin) QDot(q, u, qdot []float64) { qdot[0] = u[0] }

// bestZAngle maximizes trace(RotZ(a)^T r).
func bestZAngle(r spatial.Rotation) float64 {
	x := r.Col(0)
	y := r.Col(1)
	return math.Atan2(x.Y-y.X, x.X+y.Y)
}

// Slider is a 1-dof translational joint along the inboard frame x axis.
type Slider struct{}

// NewSlider returns a slider (prismatic) joint.
func NewSlider() Slider { return Slider{} }

func (Slider) Name() string { return "slider" }
func (Slider) NQ() int { return 1 }
func (Slider) NU() int { return 1 }
func (Slider) DefaultQ() []float64 { return []float64{0} }
func (Slider) Transform(q []float64) spatial.Transform {
	return spatial.Translation(spatial.V(q[0], 0, 0))
}
func (Slider) MotionSpace() []spatial.SpatialVec {
	return []spatial.SpatialVec{spatial.SV(spatial.Vec{}, spatial.V(1, 0, 0))}
}
func (Slider) FitTransform(x spatial.Transform, q []float64) { q[0] = x.P.X }
func (Slider) FitVelocity(v spatial.SpatialVec, u []float64) { u[0] = v.Lin.X }
func (Slider) ApplyDelta(q, z []float64) { q[0] += z[0] }
func (Slider) QDot(q, u, qdot []float64) { qdot[0] = u[0] }

// Ball is a 3-dof rotational joint parameterized by a quaternion. Speeds
// are the components of the angular velocity of M in F, expressed in F.
type Ball struct{}

// NewBall returns a ball (spherical) joint.
func NewBall() Ball { return Ball{} }

func (Ball) Name() string { return "ball" }
func (Ball) NQ() int { return 4 }
func (Ball) NU() int { return 3 }
func (Ball) DefaultQ() []float64 { return []float64{1, 0, 0, 0} }
func (Ball) Transform(q []float64) spatial.Transform {
	return spatial.NewTransform(rotationFromQ(q), spatial.Vec{})
}
func (Ball) MotionSpace() []spatial.SpatialVec {
	return []spatial.SpatialVec{
		spatial.SV(spatial.V(1, 0, 0), spatial.Vec{}),
		spatial.SV(spatial.V(0, 1, 0), spatial.Vec{}),
		spatial.SV(spatial.V(0, 0, 1), spatial.Vec{}),
	}
}
func (Ball) FitTransform(x spatial.Transform, q []float64) { writeQuat(x.R, q) }
func (Ball) FitVelocity(v spatial.SpatialVec, u []float64) {
	u[0], u[1], u[2] = v.Ang.X, v.Ang.Y, v.Ang.Z
}
func (Ball) ApplyDelta(q, z []float64) {
	writeQuat(spatial.Exp(spatial.V(z[0], z[1], z[2])).Mul(rotationFromQ(q)), q)
}
func (Ball) QDot(q, u, qdot []float64) { quatDot(q, u, qdot) }

// Gimbal is a 3-dof rotational joint parameterized by body-fixed X-Y-Z
// Euler angles. Speeds are angular velocity components in F, so the
// dynamics are identical to Ball; the Euler parameterization (and its
// singularity at the middle angle +-pi/2) shows up only in the
// coordinates, the fit, and QDot.
type Gimbal struct{}

// NewGimbal returns a gimbal joint.
func NewGimbal() Gimbal { return Gimbal{} }

func (Gimbal) Name() string { return "gimbal" }
func (Gimbal) NQ() int { return 3 }
func (Gimbal) NU() int { return 3 }
func (Gimbal) DefaultQ() []float64 { return []float64{0, 0, 0} }
func (Gimbal) Transform(q []float64) spatial.Transform {
	return spatial.NewTransform(spatial.EulerBodyXYZ(q[0], q[1], q[2]), spatial.Vec{})
}
func (Gimbal) MotionSpace() []spatial.SpatialVec {
	return Ball{}.MotionSpace()
}
func (Gimbal) FitTransform(x spatial.Transform, q []float64) {
	q[0], q[1], q[2] = x.R.EulerBodyXYZ()
}
func (Gimbal) FitVelocity(v spatial.SpatialVec, u []float64) {
	u[0], u[1], u[2] = v.Ang.X, v.Ang.Y, v.Ang.Z
}
func (Gimbal) ApplyDelta(q, z []float64) {
	r := spatial.Exp(spatial.V(z[0], z[1], z[2])).Mul(spatial.EulerBodyXYZ(q[0], q[1], q[2]))
	q[0], q[1], q[2] = r.EulerBodyXYZ()
}

// QDot maps angular velocity in F to Euler-angle rates by inverting the
// kinematic matrix whose columns are the partial angular velocities of
// the three Euler rotations. Blows up near the cos(q[1]) = 0 singularity.
func (Gimbal) QDot(q, u, qdot []float64) {
	e1 := spatial.V(1, 0, 0)
	rx := spatial.RotX(q[0])
	e2 := rx.Apply(spatial.V(0, 1, 0))
	e3 := rx.Mul(spatial.RotY(q[1])).Apply(spatial.V(0, 0, 1))
	w := spatial.V(u[0], u[1], u[2])
	det := e1.Dot(e2.Cross(e3))
	qdot[0] = w.Dot(e2.Cross(e3)) / det
	qdot[1] = w.Dot(e3.Cross(e1)) / det
	qdot[2] = w.Dot(e1.Cross(e2)) / det
}

// Translation is a 3-dof translational joint.
type Translation struct{}

// NewTranslation returns a translation (Cartesian) joint.
func NewTranslation() Translation { return Translation{} }

func (Translation) Name() string { return "translation" }
func (Translation) NQ() int { return 3 }
func (Translation) NU() int { return 3 }
func (Translation) DefaultQ() []float64 { return []float64{0, 0, 0} }
func (Translation) Transform(q []float64) spatial.Transform {
	return spatial.Translation(spatial.V(q[0], q[1], q[2]))
}
func (Translation) MotionSpace() []spatial.SpatialVec {
	return []spatial.SpatialVec{
		spatial.SV(spatial.Vec{}, spatial.V(1, 0, 0)),
		spatial.SV(spatial.Vec{}, spatial.V(0, 1, 0)),
		spatial.SV(spatial.Vec{}, spatial.V(0, 0, 1)),
	}
}
func (Translation) FitTransform(x spatial.Transform, q []float64) {
	q[0], q[1], q[2] = x.P.X, x.P.Y, x.P.Z
}
func (Translation) FitVelocity(v spatial.SpatialVec, u []float64) {
	u[0], u[1], u[2] = v.Lin.X, v.Lin.Y, v.Lin.Z
}
func (Translation) ApplyDelta(q, z []float64) {
	q[0] += z[0]
	q[1] += z[1]
	q[2] += z[2]
}
func (Translation) QDot(q, u, qdot []float64) { copy(qdot, u) }

// Free is an unrestricted 6-dof joint: quaternion plus translation of the
// M origin in F. Speeds are angular velocity in F followed by the
// velocity of the M origin in F. Both fit operations are exact.
type Free struct{}

// NewFree returns a free joint.
func NewFree() Free { return Free{} }

func (Free) Name() string { return "free" }
func (Free) NQ() int { return 7 }
func (Free) NU() int { return 6 }
func (Free) DefaultQ() []float64 { return []float64{1, 0, 0, 0, 0, 0, 0} }
func (Free) Transform(q []float64) spatial.Transform {
	return spatial.NewTransform(rotationFromQ(q), spatial.V(q[4], q[5], q[6]))
}
func (Free) MotionSpace() []spatial.SpatialVec {
	return []spatial.SpatialVec{
		spatial.SV(spatial.V(1, 0, 0), spatial.Vec{}),
		spatial.SV(spatial.V(0, 1, 0), spatial.Vec{}),
		spatial.SV(spatial.V(0, 0, 1), spatial.Vec{}),
		spatial.SV(spatial.Vec{}, spatial.V(1, 0, 0)),
		spatial.SV(spatial.Vec{}, spatial.V(0, 1, 0)),
		spatial.SV(spatial.Vec{}, spatial.V(0, 0, 1)),
	}
}
func (Free) FitTransform(x spatial.Transform, q []float64) {
	writeQuat(x.R, q)
	q[4], q[5], q[6] = x.P.X, x.P.Y, x.P.Z
}
func (Free) FitVelocity(v spatial.SpatialVec, u []float64) {
	u[0], u[1], u[2] = v.Ang.X, v.Ang.Y, v.Ang.Z
	u[3], u[4], u[5] = v.Lin.X, v.Lin.Y, v.Lin.Z
}
func (Free) ApplyDelta(q, z []float64) {
	writeQuat(spatial.Exp(spatial.V(z[0], z[1], z[2])).Mul(rotationFromQ(q)), q)
	q[4] += z[3]
	q[5] += z[4]
	q[6] += z[5]
}
func (Free) QDot(q, u, qdot []float64) {
	quatDot(q, u, qdot)
	qdot[4], qdot[5], qdot[6] = u[3], u[4], u[5]
}

func rotationFromQ(q []float64) spatial.Rotation {
	return spatial.FromQuat(quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]})
}

func writeQuat(r spatial.Rotation, q []float64) {
	n := r.Quat()
	q[0], q[1], q[2], q[3] = n.Real, n.Imag, n.Jmag, n.Kmag
}

// quatDot writes the quaternion derivative for angular velocity u[0:3]
// expressed in F: qdot = 0.5 * (0, w) * q.
func quatDot(q, u, qdot []float64) {
	w := quat.Number{Imag: u[0], Jmag: u[1], Kmag: u[2]}
	d := quat.Scale(0.5, quat.Mul(w, quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}))
	qdot[0], qdot[1], qdot[2], qdot[3] = d.Real, d.Imag, d.Jmag, d.Kmag
}
