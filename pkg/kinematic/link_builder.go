package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
)

// LinkBuilder stages a link and, optionally, a subtree of children below it.
type LinkBuilder struct {
	spec     linkSpec
	children []stagedChild
}

type stagedChild struct {
	joint *JointBuilder
	link  *LinkBuilder
}

// NewLinkBuilder creates a builder for a link called name.
func NewLinkBuilder(name string) *LinkBuilder {
	return &LinkBuilder{spec: linkSpec{name: name}}
}

// Name returns the staged link name.
func (b *LinkBuilder) Name() string { return b.spec.name }

// AddVisual appends a visual element.
func (b *LinkBuilder) AddVisual(v domain.Visual) *LinkBuilder {
	b.spec.visuals = append(b.spec.visuals, v)
	return b
}

// AddCollision appends a collision element.
func (b *LinkBuilder) AddCollision(c domain.Collision) *LinkBuilder {
	b.spec.collisions = append(b.spec.collisions, c)
	return b
}

// SetInertial sets the mass properties, replacing earlier ones.
func (b *LinkBuilder) SetInertial(in domain.Inertial) *LinkBuilder {
	b.spec.inertial = &in
	return b
}

// AttachChild stages child below this link through joint.
// Nothing is validated until the builder is committed.
func (b *LinkBuilder) AttachChild(joint *JointBuilder, child *LinkBuilder) *LinkBuilder {
	b.children = append(b.children, stagedChild{joint: joint, link: child})
	return b
}

// Build commits the builder into a new standalone tree rooted at this link.
func (b *LinkBuilder) Build() (*Tree, error) {
	src, err := b.stage()
	if err != nil {
		return nil, err
	}

	t := newTree()
	if err := t.checkMaterials(src.arena.materials()); err != nil {
		return nil, err
	}
	t.arena = *src.arena
	t.root = src.root
	// addBuilder numbers links in pre-order, so the last one is the last leaf.
	t.newest = len(t.links) - 1
	t.registerMaterials(t.arena.materials())
	t.indexAll()
	return t, nil
}

// stage validates the staged subtree and flattens it into a scratch arena.
func (b *LinkBuilder) stage() (source, error) {
	v := stageValidator{
		links:    make(map[string]bool),
		joints:   make(map[string]bool),
		builders: make(map[*LinkBuilder]bool),
	}
	if err := v.checkLink(b); err != nil {
		return source{}, err
	}

	a := &arena{}
	root := a.addBuilder(b, noParent)
	return source{arena: a, root: root}, nil
}

func (b *LinkBuilder) attachSource() (source, error) {
	return b.stage()
}

type stageValidator struct {
	links    map[string]bool
	joints   map[string]bool
	builders map[*LinkBuilder]bool
}

func (v *stageValidator) checkLink(b *LinkBuilder) error {
	if b == nil {
		return &domain.BuildError{Reason: "missing child link"}
	}
	name := b.spec.name
	switch {
	case v.builders[b]:
		return &domain.BuildError{Name: name, Reason: "link builder is staged more than once"}
	case name == "":
		return &domain.BuildError{Name: name, Reason: "link name is empty"}
	case v.links[name]:
		return &domain.BuildError{Name: name, Reason: "duplicate link name"}
	}
	v.builders[b] = true
	v.links[name] = true

	for _, vis := range b.spec.visuals {
		if vis.Geometry == nil {
			return &domain.BuildError{Name: name, Reason: "visual without geometry"}
		}
	}
	for _, col := range b.spec.collisions {
		if col.Geometry == nil {
			return &domain.BuildError{Name: name, Reason: "collision without geometry"}
		}
	}

	for _, c := range b.children {
		if c.joint == nil {
			return &domain.BuildError{Name: name, Reason: "missing child joint"}
		}
		if err := c.joint.validate(); err != nil {
			return err
		}
		if v.joints[c.joint.spec.name] {
			return &domain.BuildError{Name: c.joint.spec.name, Reason: "duplicate joint name"}
		}
		v.joints[c.joint.spec.name] = true
		if err := v.checkLink(c.link); err != nil {
			return err
		}
	}
	return nil
}

func (a *arena) addBuilder(b *LinkBuilder, parentJoint int) int {
	id := a.addLink(b.spec.clone(), parentJoint)
	for _, c := range b.children {
		j := a.addJoint(c.joint.spec.clone(), id)
		a.joints[j].child = a.addBuilder(c.link, j)
	}
	return id
}
