package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
)

// YankRoot moves the whole tree into a new standalone tree, ready to be
// attached elsewhere. Materials no visual uses are dropped, and so are
// transmissions that reference a joint outside the tree. The receiver is
// consumed.
func (t *Tree) YankRoot() (*Tree, error) {
	if t.consumed {
		return nil, domain.ErrConsumed
	}
	out := newTree()
	out.root = out.graftLink(&t.arena, t.root, noParent, nil)
	out.indexAll()
	out.newest = out.root
	if newest, ok := out.linkIndex[t.links[t.newest].name]; ok {
		out.newest = newest
	}

	for _, m := range out.arena.materials() {
		if declared, ok := t.materials[m.Name]; ok {
			m = declared
		}
		out.materials[m.Name] = m
	}
	for _, tr := range t.transmissions {
		if out.hasJoints(tr.JointNames()) {
			out.transmissions = append(out.transmissions, tr)
		}
	}
	t.consume()
	return out, nil
}

// YankJoint cuts the named joint and everything below it out of the tree and
// returns it as a detached chain. The joint's parent link becomes the newest
// link, and transmissions left driving a removed joint are dropped. Handles
// into the removed branch stop being valid.
func (t *Tree) YankJoint(name string) (*Chain, error) {
	if t.consumed {
		return nil, &domain.YankError{Element: "joint", Name: name, Err: domain.ErrConsumed}
	}
	id, ok := t.jointIndex[name]
	if !ok {
		return nil, &domain.YankError{Element: "joint", Name: name, Reason: "no such joint"}
	}
	c := t.copyBranch(id)
	t.cut(id)
	return c, nil
}

// YankLink cuts the named link, the joint it hangs from and everything below
// it out of the tree, returning the link's subtree as a standalone tree.
// Materials come along as in YankRoot, and so do the transmissions whose
// joints all moved. The root link cannot be yanked this way; use YankRoot.
func (t *Tree) YankLink(name string) (*Tree, error) {
	if t.consumed {
		return nil, &domain.YankError{Element: "link", Name: name, Err: domain.ErrConsumed}
	}
	id, ok := t.linkIndex[name]
	if !ok {
		return nil, &domain.YankError{Element: "link", Name: name, Reason: "no such link"}
	}
	parent := t.links[id].parent
	if parent == noParent {
		return nil, &domain.YankError{Element: "link", Name: name, Reason: "the root link is moved with YankRoot"}
	}

	out := newTree()
	out.root = out.graftLink(&t.arena, id, noParent, out.track)
	out.indexAll()
	for _, m := range out.arena.materials() {
		if declared, ok := t.materials[m.Name]; ok {
			m = declared
		}
		out.materials[m.Name] = m
	}
	for _, tr := range t.transmissions {
		if len(tr.Joints) > 0 && out.hasJoints(tr.JointNames()) {
			out.transmissions = append(out.transmissions, tr)
		}
	}

	t.cut(parent)
	return out, nil
}

// cut unlinks joint id from its parent link and retires its subtree.
func (t *Tree) cut(id int) {
	parent := t.joints[id].parent
	kept := make([]int, 0, len(t.links[parent].joints))
	for _, j := range t.links[parent].joints {
		if j != id {
			kept = append(kept, j)
		}
	}
	t.links[parent].joints = kept
	t.markRemoved(id)
	t.indexAll()
	t.newest = parent

	var transmissions []domain.Transmission
	for _, tr := range t.transmissions {
		if t.hasJoints(tr.JointNames()) {
			transmissions = append(transmissions, tr)
		}
	}
	t.transmissions = transmissions
}

func (t *Tree) hasJoints(names []string) bool {
	for _, n := range names {
		if !t.hasJoint(n) {
			return false
		}
	}
	return true
}

// AddMaterial declares a named material on the tree without a visual using
// it yet. A different material under the same name fails with
// *domain.AddMaterialError.
func (t *Tree) AddMaterial(m domain.Material) error {
	if !m.IsNamed() {
		return &domain.AddMaterialError{Name: m.Name}
	}
	if err := t.checkMaterials([]domain.Material{m}); err != nil {
		return err
	}
	t.registerMaterials([]domain.Material{m})
	return nil
}

// ApplyGroupID strips group id delimiters from every link, joint, element,
// material and transmission reference in the tree. It fails with
// *domain.GroupIDError, changing nothing, when two names would collide.
func (t *Tree) ApplyGroupID() error {
	if t.consumed {
		return domain.ErrConsumed
	}
	clashes := t.renameClashes(domain.DisplayName)
	materials := make(map[string]domain.Material, len(t.materials))
	for _, m := range t.materials {
		applied := m.Named(domain.DisplayName(m.Name))
		if prev, ok := materials[applied.Name]; ok && !prev.SameContent(applied) {
			clashes = append(clashes, applied.Name)
		}
		materials[applied.Name] = applied
	}
	if len(clashes) > 0 {
		return &domain.GroupIDError{Kind: domain.GroupIDCollision, Names: clashes}
	}

	t.renameAll(domain.DisplayName, domain.DisplayName)
	t.materials = materials
	for i := range t.transmissions {
		tr := &t.transmissions[i]
		tr.Name = domain.DisplayName(tr.Name)
		joints := make([]domain.TransmissionJoint, len(tr.Joints))
		for k, j := range tr.Joints {
			j.Name = domain.DisplayName(j.Name)
			joints[k] = j
		}
		tr.Joints = joints
	}
	t.indexAll()
	return nil
}
