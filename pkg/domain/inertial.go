package domain

// Inertial holds the mass properties of a link. Values are stored verbatim;
// no physical plausibility checks are made.
type Inertial struct {
	Transform Transform
	Mass      float64
	Ixx       float64
	Ixy       float64
	Ixz       float64
	Iyy       float64
	Iyz       float64
	Izz       float64
}

// Mirrored reflects the inertial frame across axis. The products of inertia
// that mix the mirrored axis with another one change sign.
func (in Inertial) Mirrored(axis MirrorAxis) Inertial {
	in.Transform = in.Transform.Mirror(axis)
	switch axis {
	case MirrorX:
		in.Ixy, in.Ixz = -in.Ixy, -in.Ixz
	case MirrorY:
		in.Ixy, in.Iyz = -in.Ixy, -in.Iyz
	case MirrorZ:
		in.Ixz, in.Iyz = -in.Ixz, -in.Iyz
	}
	return in
}
