package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
)

// TryAttachChild commits child below l through joint and returns the handle
// of the attached child link. child is a *LinkBuilder or a *Tree; an attached
// tree is consumed.
//
// The joint name is checked first, then every incoming link and joint in
// pre-order. The first collision fails the call with *domain.AddJointError
// or *domain.AddLinkError and leaves the tree untouched.
func (l Link) TryAttachChild(joint *JointBuilder, child Attachable) (Link, error) {
	t := l.tree
	if joint == nil {
		return Link{}, &domain.BuildError{Reason: "missing joint"}
	}
	if !l.IsValid() {
		return Link{}, &domain.AddJointError{Name: joint.Name(), Err: domain.ErrConsumed}
	}
	if child == nil {
		return Link{}, &domain.BuildError{Name: joint.Name(), Reason: "missing child"}
	}
	if err := joint.validate(); err != nil {
		return Link{}, err
	}

	src, err := child.attachSource()
	if err != nil {
		if err == domain.ErrConsumed {
			return Link{}, &domain.AddLinkError{Err: err}
		}
		return Link{}, err
	}
	if src.tree == t {
		return Link{}, &domain.BuildError{Name: joint.Name(), Reason: "a tree cannot be attached below itself"}
	}

	if err := t.checkIncoming(joint.spec.name, src); err != nil {
		return Link{}, err
	}
	if err := t.checkMaterials(src.arena.materials()); err != nil {
		return Link{}, err
	}
	if err := t.checkTransmissions(src.transmissions); err != nil {
		return Link{}, err
	}

	jid := t.addJoint(joint.spec.clone(), l.id)
	cid := t.graftLink(src.arena, src.root, jid, t.track)
	t.joints[jid].child = cid
	t.commit(src.arena, src.transmissions)
	if src.tree != nil {
		src.tree.consume()
	}
	return Link{tree: t, id: cid}, nil
}

// AttachJointChain grafts a detached chain below l. Every name that collides
// with the tree, or repeats inside the chain, is reported at once in
// *domain.AttachChainError. The chain is consumed.
func (l Link) AttachJointChain(c *Chain) error {
	t := l.tree
	if c == nil {
		return &domain.BuildError{Reason: "missing chain"}
	}
	if !l.IsValid() || c.consumed {
		return &domain.AttachChainError{Err: domain.ErrConsumed}
	}

	var clash domain.AttachChainError
	links := make(map[string]bool)
	joints := make(map[string]bool)
	c.walkJoint(c.root,
		func(id int) {
			name := c.links[id].name
			if t.hasLink(name) || links[name] {
				clash.Links = append(clash.Links, name)
			}
			links[name] = true
		},
		func(id int) {
			name := c.joints[id].name
			if t.hasJoint(name) || joints[name] {
				clash.Joints = append(clash.Joints, name)
			}
			joints[name] = true
		},
	)
	if len(clash.Links) > 0 || len(clash.Joints) > 0 {
		return &clash
	}
	if err := t.checkMaterials(c.materials()); err != nil {
		return err
	}

	t.graftJoint(&c.arena, c.root, l.id, t.track)
	t.commit(&c.arena, nil)
	c.consume()
	return nil
}

func (t *Tree) hasLink(name string) bool {
	_, ok := t.linkIndex[name]
	return ok
}

func (t *Tree) hasJoint(name string) bool {
	_, ok := t.jointIndex[name]
	return ok
}

// checkIncoming finds the first name of an incoming subtree that is already
// taken, including a clash between the new joint and the subtree itself.
func (t *Tree) checkIncoming(jointName string, src source) error {
	if t.hasJoint(jointName) {
		return &domain.AddJointError{Name: jointName}
	}
	var err error
	src.arena.walkLink(src.root,
		func(id int) {
			if name := src.arena.links[id].name; err == nil && t.hasLink(name) {
				err = &domain.AddLinkError{Name: name}
			}
		},
		func(id int) {
			if name := src.arena.joints[id].name; err == nil && (t.hasJoint(name) || name == jointName) {
				err = &domain.AddJointError{Name: name}
			}
		},
	)
	return err
}

func (t *Tree) checkTransmissions(incoming []domain.Transmission) error {
	for _, tr := range incoming {
		for _, existing := range t.transmissions {
			if existing.Name == tr.Name {
				return &domain.AddTransmissionError{Name: tr.Name, Reason: "duplicate transmission name"}
			}
		}
	}
	return nil
}

// track records freshly grafted links; the last one visited is the newest.
func (t *Tree) track(id int) {
	t.newest = id
}

// commit finishes an attach once the nodes are in place.
func (t *Tree) commit(src *arena, transmissions []domain.Transmission) {
	t.indexAll()
	t.registerMaterials(src.materials())
	t.transmissions = append(t.transmissions, transmissions...)
}
