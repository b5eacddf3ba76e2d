package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
)

// JointBuilder stages a joint that is not attached to any tree yet.
type JointBuilder struct {
	spec jointSpec
}

// JointOption configures a JointBuilder at construction.
type JointOption func(*JointBuilder)

// WithTransform places the child link relative to the parent link frame.
func WithTransform(t domain.Transform) JointOption {
	return func(b *JointBuilder) { b.spec.transform = t }
}

// WithAxis sets the rotation or translation axis.
func WithAxis(axis mgl64.Vec3) JointOption {
	return func(b *JointBuilder) { b.spec.axis = &axis }
}

// WithLimit bounds the joint motion.
func WithLimit(l domain.Limit) JointOption {
	return func(b *JointBuilder) { b.spec.limit = &l }
}

// WithCalibration sets the calibration reference positions.
func WithCalibration(c domain.Calibration) JointOption {
	return func(b *JointBuilder) { b.spec.calibration = c }
}

// WithDynamics sets damping and friction.
func WithDynamics(d domain.Dynamics) JointOption {
	return func(b *JointBuilder) { b.spec.dynamics = d }
}

// WithMimic makes the joint follow another joint.
func WithMimic(m domain.Mimic) JointOption {
	return func(b *JointBuilder) { b.spec.mimic = &m }
}

// WithSafetyController sets the controller soft limits.
func WithSafetyController(s domain.SafetyController) JointOption {
	return func(b *JointBuilder) { b.spec.safety = &s }
}

// NewJointBuilder creates a joint builder of the given type.
func NewJointBuilder(name string, jointType domain.JointType, opts ...JointOption) *JointBuilder {
	b := &JointBuilder{spec: jointSpec{name: name, jointType: jointType}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFixed creates a fixed joint builder.
func NewFixed(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointFixed, opts...)
}

// NewRevolute creates a revolute joint builder.
func NewRevolute(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointRevolute, opts...)
}

// NewContinuous creates a continuous joint builder.
func NewContinuous(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointContinuous, opts...)
}

// NewPrismatic creates a prismatic joint builder.
func NewPrismatic(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointPrismatic, opts...)
}

// NewFloating creates a floating joint builder.
func NewFloating(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointFloating, opts...)
}

// NewPlanar creates a planar joint builder.
func NewPlanar(name string, opts ...JointOption) *JointBuilder {
	return NewJointBuilder(name, domain.JointPlanar, opts...)
}

// Name returns the staged joint name.
func (b *JointBuilder) Name() string { return b.spec.name }

// Type returns the staged joint type.
func (b *JointBuilder) Type() domain.JointType { return b.spec.jointType }

// Transform returns the staged origin.
func (b *JointBuilder) Transform() domain.Transform { return b.spec.transform }

// SetTransform replaces the origin.
func (b *JointBuilder) SetTransform(t domain.Transform) *JointBuilder {
	b.spec.transform = t
	return b
}

// SetAxis sets the joint axis.
func (b *JointBuilder) SetAxis(x, y, z float64) *JointBuilder {
	b.spec.axis = &mgl64.Vec3{x, y, z}
	return b
}

// SetLimit sets effort and velocity limits, keeping any position bounds.
func (b *JointBuilder) SetLimit(effort, velocity float64) *JointBuilder {
	if b.spec.limit == nil {
		b.spec.limit = &domain.Limit{}
	}
	b.spec.limit.Effort = effort
	b.spec.limit.Velocity = velocity
	return b
}

// SetLowerLimit sets the lower position bound.
func (b *JointBuilder) SetLowerLimit(lower float64) *JointBuilder {
	if b.spec.limit == nil {
		b.spec.limit = &domain.Limit{}
	}
	b.spec.limit.Lower = domain.Float(lower)
	return b
}

// SetUpperLimit sets the upper position bound.
func (b *JointBuilder) SetUpperLimit(upper float64) *JointBuilder {
	if b.spec.limit == nil {
		b.spec.limit = &domain.Limit{}
	}
	b.spec.limit.Upper = domain.Float(upper)
	return b
}

// SetMimic makes the joint follow another joint.
func (b *JointBuilder) SetMimic(m domain.Mimic) *JointBuilder {
	b.spec.mimic = &m
	return b
}

func (b *JointBuilder) validate() error {
	s := b.spec
	switch {
	case s.name == "":
		return &domain.BuildError{Name: s.name, Reason: "joint name is empty"}
	case s.axis != nil && !s.jointType.HasAxis():
		return &domain.BuildError{Name: s.name, Reason: "axis is not allowed on " + s.jointType.String() + " joints"}
	case s.axis != nil && *s.axis == (mgl64.Vec3{}):
		return &domain.BuildError{Name: s.name, Reason: "axis must not be the zero vector"}
	case s.mimic != nil && s.mimic.Joint == "":
		return &domain.BuildError{Name: s.name, Reason: "mimic requires a joint name"}
	}
	return nil
}
