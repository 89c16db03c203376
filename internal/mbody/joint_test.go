package mbody

import (
	"math"
	"testing"

	"github.com/san-kum/articulate/internal/spatial"
)

func jointCases() map[string]struct {
	joint Joint
	q     []float64
} {
	return map[string]struct {
		joint Joint
		q     []float64
	}{
		"pin":         {NewPin(), []float64{0.7}},
		"slider":      {NewSlider(), []float64{-1.3}},
		"ball":        {NewBall(), []float64{0.3, -0.1, 0.8, 0.2}},
		"gimbal":      {NewGimbal(), []float64{0.4, -0.9, 1.2}},
		"translation": {NewTranslation(), []float64{0.5, -2, 3.5}},
		"free":        {NewFree(), []float64{0.3, -0.1, 0.8, 0.2, 1, -2, 0.5}},
	}
}

func TestJointFitTransformRoundTrip(t *testing.T) {
	for name, tc := range jointCases() {
		x := tc.joint.Transform(tc.q)
		q2 := tc.joint.DefaultQ()
		tc.joint.FitTransform(x, q2)
		if !spatial.TransformEqualWithin(tc.joint.Transform(q2), x, 1e-12) {
			t.Errorf("%s: fit transform does not round-trip", name)
		}
	}
}

func TestJointFitVelocityRoundTrip(t *testing.T) {
	for name, tc := range jointCases() {
		u := make([]float64, tc.joint.NU())
		for i := range u {
			u[i] = 0.1*float64(i) - 0.25
		}
		v := localVelocity(tc.joint, u)
		u2 := make([]float64, tc.joint.NU())
		tc.joint.FitVelocity(v, u2)
		for i := range u {
			if !spatial.EqualWithin(u2[i], u[i], 1e-12) {
				t.Errorf("%s: fit velocity u[%d] = %v, want %v", name, i, u2[i], u[i])
				break
			}
		}
	}
}

// QDot must be consistent with the joint's angular velocity convention:
// stepping q along qdot for a short time rotates the frame by roughly
// exp(h*w).
func TestJointQDotMatchesVelocity(t *testing.T) {
	const h = 1e-6
	for name, tc := range jointCases() {
		u := make([]float64, tc.joint.NU())
		for i := range u {
			u[i] = 0.3*float64(i) + 0.2
		}
		qdot := make([]float64, tc.joint.NQ())
		tc.joint.QDot(tc.q, u, qdot)

		q2 := append([]float64(nil), tc.q...)
		for i := range q2 {
			q2[i] += h * qdot[i]
		}
		x0 := tc.joint.Transform(tc.q)
		x1 := tc.joint.Transform(q2)
		v := localVelocity(tc.joint, u)

		step := spatial.Exp(v.Ang.Mul(h)).Mul(x0.R)
		if !x1.R.SameRotationToWithinAngle(step, 1e-9) {
			t.Errorf("%s: qdot inconsistent with angular velocity", name)
		}
		dp := x1.P.Sub(x0.P).Mul(1 / h)
		if !spatial.VecEqualWithin(dp, v.Lin, 1e-5) {
			t.Errorf("%s: qdot inconsistent with linear velocity: %v vs %v", name, dp, v.Lin)
		}
	}
}

func TestPinFitRecoversAngleFromNoisyRotation(t *testing.T) {
	// A rotation that is not purely about z should still fit the best
	// z angle, matching the projection used for assembly.
	r := spatial.RotZ(0.9).Mul(spatial.RotX(0.05))
	q := []float64{0}
	NewPin().FitTransform(spatial.NewTransform(r, spatial.Vec{}), q)
	if math.Abs(q[0]-0.9) > 0.01 {
		t.Errorf("fit angle = %v, want about 0.9", q[0])
	}
}

func TestBallApplyDeltaStaysNormalized(t *testing.T) {
	q := []float64{0.3, -0.1, 0.8, 0.2}
	NewBall().ApplyDelta(q, []float64{0.4, -0.2, 0.1})
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if math.Abs(n-1) > 1e-12 {
		t.Errorf("quaternion norm = %v after delta", n)
	}
}
