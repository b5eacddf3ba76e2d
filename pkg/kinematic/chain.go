package kinematic

import (
	"sort"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
)

// Chain is a detached copy of a joint and everything below it. It is not
// registered in any tree and is the unit of branch transplantation.
type Chain struct {
	arena
	root     int
	consumed bool
}

// RebuildBranch copies j and its whole subtree into a new Chain. The tree is
// left untouched.
func (j Joint) RebuildBranch() (*Chain, error) {
	if j.tree == nil {
		return nil, &domain.RebuildBranchError{Err: domain.ErrConsumed}
	}
	if !j.IsValid() {
		return nil, &domain.RebuildBranchError{Joint: j.Name(), Err: domain.ErrConsumed}
	}
	return j.tree.copyBranch(j.id), nil
}

func (a *arena) copyBranch(id int) *Chain {
	c := &Chain{}
	c.root = c.graftJoint(a, id, noParent, nil)
	return c
}

func (c *Chain) consume() {
	c.consumed = true
	c.arena = arena{}
}

// Consumed reports whether the chain was mirrored or attached.
func (c *Chain) Consumed() bool { return c.consumed }

// Name returns the name of the root joint, or "" once consumed.
func (c *Chain) Name() string {
	if c.consumed {
		return ""
	}
	return c.joints[c.root].name
}

// JointNames lists the joints in pre-order, root joint first.
func (c *Chain) JointNames() []string {
	if c.consumed {
		return nil
	}
	var names []string
	c.walkJoint(c.root, nil, func(id int) { names = append(names, c.joints[id].name) })
	return names
}

// LinkNames lists the links in pre-order.
func (c *Chain) LinkNames() []string {
	if c.consumed {
		return nil
	}
	var names []string
	c.walkJoint(c.root, func(id int) { names = append(names, c.links[id].name) }, nil)
	return names
}

// Transform returns the offset of the root joint. A consumed chain reports
// the identity.
func (c *Chain) Transform() domain.Transform {
	if c.consumed {
		return domain.Transform{}
	}
	return c.joints[c.root].transform
}

// SetTransform replaces the offset of the root joint. It does nothing on a
// consumed chain.
func (c *Chain) SetTransform(t domain.Transform) *Chain {
	if !c.consumed {
		c.joints[c.root].transform = t
	}
	return c
}

// SetAxis replaces the axis of the root joint. It does nothing on a consumed
// chain.
func (c *Chain) SetAxis(x, y, z float64) *Chain {
	if !c.consumed {
		a := mgl64.Vec3{x, y, z}
		c.joints[c.root].axis = &a
	}
	return c
}

// Mirror reflects every node of the chain across the plane normal to axis.
// Each transform is conjugated by the reflection, so translations flip along
// axis while rotations about axis are kept. The receiver is consumed.
func (c *Chain) Mirror(axis domain.MirrorAxis) (*Chain, error) {
	if c.consumed {
		return nil, domain.ErrConsumed
	}
	out := &Chain{arena: c.arena, root: c.root}
	c.consumed = true
	c.arena = arena{}
	out.mirror(axis)
	return out, nil
}

// ChangeGroupID rewrites the group id field of every name in the chain.
// Link and joint names without a field get one appended; element and
// material names are only rewritten when they already carry one.
func (c *Chain) ChangeGroupID(id string) error {
	if c.consumed {
		return domain.ErrConsumed
	}
	if err := domain.ValidateGroupID(id); err != nil {
		return err
	}
	tag := func(name string) string { return domain.TagGroupID(name, id) }
	if clashes := c.renameClashes(tag); len(clashes) > 0 {
		return &domain.GroupIDError{GroupID: id, Kind: domain.GroupIDCollision, Names: clashes}
	}
	c.renameAll(
		tag,
		func(name string) string {
			renamed, _ := domain.ReplaceGroupID(name, id)
			return renamed
		},
	)
	return nil
}

// ApplyGroupID strips group id delimiters from every name in the chain.
func (c *Chain) ApplyGroupID() error {
	if c.consumed {
		return domain.ErrConsumed
	}
	if clashes := c.renameClashes(domain.DisplayName); len(clashes) > 0 {
		return &domain.GroupIDError{Kind: domain.GroupIDCollision, Names: clashes}
	}
	c.renameAll(domain.DisplayName, domain.DisplayName)
	return nil
}

// renameClashes lists the names that would be shared by two links or two
// joints once rename is applied to every node.
func (a *arena) renameClashes(rename func(string) string) []string {
	seen := make(map[string]bool)
	var clashes []string
	check := func(kind, name string) {
		key := kind + ":" + rename(name)
		if seen[key] {
			clashes = append(clashes, rename(name))
		}
		seen[key] = true
	}
	for _, l := range a.links {
		if !l.removed {
			check("link", l.name)
		}
	}
	for _, j := range a.joints {
		if !j.removed {
			check("joint", j.name)
		}
	}
	sort.Strings(clashes)
	return clashes
}
