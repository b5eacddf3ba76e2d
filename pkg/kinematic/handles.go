package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
)

// Link is a handle to a link owned by a Tree. The zero value is invalid.
type Link struct {
	tree *Tree
	id   int
}

// IsValid reports whether the handle points at a link still in a live tree.
func (l Link) IsValid() bool {
	return l.tree != nil && !l.tree.consumed && !l.node().removed
}

// Tree returns the owning tree.
func (l Link) Tree() *Tree { return l.tree }

func (l Link) node() *linkNode { return l.tree.links[l.id] }

// Name returns the raw link name, group id delimiters included.
func (l Link) Name() string { return l.node().name }

// Visuals returns a copy of the visual elements.
func (l Link) Visuals() []domain.Visual {
	return append([]domain.Visual(nil), l.node().visuals...)
}

// Collisions returns a copy of the collision elements.
func (l Link) Collisions() []domain.Collision {
	return append([]domain.Collision(nil), l.node().collisions...)
}

// Inertial returns the mass properties, if set.
func (l Link) Inertial() (domain.Inertial, bool) {
	if in := l.node().inertial; in != nil {
		return *in, true
	}
	return domain.Inertial{}, false
}

// ParentJoint returns the joint this link hangs from. Root links have none.
func (l Link) ParentJoint() (Joint, bool) {
	p := l.node().parent
	if p == noParent {
		return Joint{}, false
	}
	return Joint{tree: l.tree, id: p}, true
}

// ChildJoints returns the outgoing joints in insertion order.
func (l Link) ChildJoints() []Joint {
	ids := l.node().joints
	out := make([]Joint, len(ids))
	for i, id := range ids {
		out[i] = Joint{tree: l.tree, id: id}
	}
	return out
}

// Joint is a handle to a joint owned by a Tree. The zero value is invalid.
type Joint struct {
	tree *Tree
	id   int
}

// IsValid reports whether the handle points at a joint still in a live tree.
func (j Joint) IsValid() bool {
	return j.tree != nil && !j.tree.consumed && !j.node().removed
}

// Tree returns the owning tree.
func (j Joint) Tree() *Tree { return j.tree }

func (j Joint) node() *jointNode { return j.tree.joints[j.id] }

// Name returns the raw joint name.
func (j Joint) Name() string { return j.node().name }

// Type returns the joint type.
func (j Joint) Type() domain.JointType { return j.node().jointType }

// Transform is the offset of the child frame in the parent link frame.
func (j Joint) Transform() domain.Transform { return j.node().transform }

// Axis returns the joint axis, if one was set.
func (j Joint) Axis() (mgl64.Vec3, bool) {
	if a := j.node().axis; a != nil {
		return *a, true
	}
	return mgl64.Vec3{}, false
}

// Limit returns the motion limits, if set.
func (j Joint) Limit() (domain.Limit, bool) {
	if l := j.node().limit; l != nil {
		return *l, true
	}
	return domain.Limit{}, false
}

// Calibration returns the reference positions.
func (j Joint) Calibration() domain.Calibration { return j.node().calibration }

// Dynamics returns the damping and friction values.
func (j Joint) Dynamics() domain.Dynamics { return j.node().dynamics }

// Mimic returns the joint this one follows, if any.
func (j Joint) Mimic() (domain.Mimic, bool) {
	if m := j.node().mimic; m != nil {
		return *m, true
	}
	return domain.Mimic{}, false
}

// SafetyController returns the soft limits, if set.
func (j Joint) SafetyController() (domain.SafetyController, bool) {
	if s := j.node().safety; s != nil {
		return *s, true
	}
	return domain.SafetyController{}, false
}

// Parent returns the link the joint hangs from.
func (j Joint) Parent() Link { return Link{tree: j.tree, id: j.node().parent} }

// Child returns the link the joint carries.
func (j Joint) Child() Link { return Link{tree: j.tree, id: j.node().child} }
