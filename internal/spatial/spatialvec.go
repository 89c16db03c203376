package spatial

// SpatialVec pairs an angular and a linear 3-vector. For motion the pair
// is (angular velocity, velocity of the reference point); for force it is
// (torque, force at the reference point).
type SpatialVec struct {
	Ang Vec
	Lin Vec
}

// SV builds a spatial vector.
func SV(ang, lin Vec) SpatialVec { return SpatialVec{Ang: ang, Lin: lin} }

func (s SpatialVec) Add(o SpatialVec) SpatialVec {
	return SpatialVec{Ang: s.Ang.Add(o.Ang), Lin: s.Lin.Add(o.Lin)}
}

func (s SpatialVec) Sub(o SpatialVec) SpatialVec {
	return SpatialVec{Ang: s.Ang.Sub(o.Ang), Lin: s.Lin.Sub(o.Lin)}
}

func (s SpatialVec) Neg() SpatialVec {
	return SpatialVec{Ang: s.Ang.Mul(-1), Lin: s.Lin.Mul(-1)}
}

func (s SpatialVec) Scale(f float64) SpatialVec {
	return SpatialVec{Ang: s.Ang.Mul(f), Lin: s.Lin.Mul(f)}
}

// Dot is the 6-component dot product. Pairing a motion vector with a
// force vector anchored at the same point yields mechanical power.
func (s SpatialVec) Dot(o SpatialVec) float64 {
	return s.Ang.Dot(o.Ang) + s.Lin.Dot(o.Lin)
}

// Rotate applies a rotation to both components.
func (s SpatialVec) Rotate(r Rotation) SpatialVec {
	return SpatialVec{Ang: r.Apply(s.Ang), Lin: r.Apply(s.Lin)}
}

// RotateInv applies the inverse rotation to both components.
func (s SpatialVec) RotateInv(r Rotation) SpatialVec {
	return SpatialVec{Ang: r.ApplyInv(s.Ang), Lin: r.ApplyInv(s.Lin)}
}

// ShiftForce re-anchors a spatial force from point "from" to point "to"
// (both expressed in the same frame as f). The force component is
// unchanged; the torque picks up the moment of the force about the new
// point: torque_to = torque_from + (from-to) x force.
func ShiftForce(f SpatialVec, from, to Vec) SpatialVec {
	return SpatialVec{
		Ang: f.Ang.Add(from.Sub(to).Cross(f.Lin)),
		Lin: f.Lin,
	}
}
