package domain

import (
	"fmt"
	"strings"
)

// JointType defines how a joint lets its child link move.
type JointType int

const (
	JointFixed JointType = iota
	JointRevolute
	JointContinuous
	JointPrismatic
	JointFloating
	JointPlanar
)

var jointTypeNames = [...]string{"fixed", "revolute", "continuous", "prismatic", "floating", "planar"}

func (t JointType) String() string {
	if t < 0 || int(t) >= len(jointTypeNames) {
		return fmt.Sprintf("JointType(%d)", int(t))
	}
	return jointTypeNames[t]
}

// ParseJointType maps the URDF type attribute back to a JointType.
func ParseJointType(s string) (JointType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i, name := range jointTypeNames {
		if name == needle {
			return JointType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown joint type %q", s)
}

// HasAxis reports whether an axis is meaningful for the joint type.
func (t JointType) HasAxis() bool {
	switch t {
	case JointRevolute, JointContinuous, JointPrismatic, JointPlanar:
		return true
	}
	return false
}

// IsRotational reports whether the axis is a rotation axis.
func (t JointType) IsRotational() bool {
	return t == JointRevolute || t == JointContinuous
}

// Limit bounds the motion of a joint.
type Limit struct {
	Effort   float64
	Velocity float64
	Lower    *float64
	Upper    *float64
}

// Calibration holds the reference positions of a joint.
type Calibration struct {
	Rising  *float64
	Falling *float64
}

// IsEmpty reports whether no field is set.
func (c Calibration) IsEmpty() bool { return c.Rising == nil && c.Falling == nil }

// Dynamics holds the physical damping and friction of a joint.
type Dynamics struct {
	Damping  *float64
	Friction *float64
}

// IsEmpty reports whether no field is set.
func (d Dynamics) IsEmpty() bool { return d.Damping == nil && d.Friction == nil }

// Mimic makes a joint follow another joint: value = multiplier * other + offset.
type Mimic struct {
	Joint      string
	Multiplier *float64
	Offset     *float64
}

// SafetyController describes the soft limits enforced by a controller.
type SafetyController struct {
	KVelocity      float64
	KPosition      *float64
	SoftLowerLimit *float64
	SoftUpperLimit *float64
}

// Float returns a pointer to v, for the optional fields above.
func Float(v float64) *float64 { return &v }
