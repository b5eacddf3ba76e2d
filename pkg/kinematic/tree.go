package kinematic

import (
	"fmt"
	"sort"

	"github.com/aretw0/kinetree/pkg/domain"
)

// Tree is a rooted, acyclic assembly of uniquely named links and joints,
// together with its named materials and transmissions.
type Tree struct {
	arena
	linkIndex     map[string]int
	jointIndex    map[string]int
	root          int
	newest        int
	materials     map[string]domain.Material
	transmissions []domain.Transmission
	consumed      bool
}

func newTree() *Tree {
	return &Tree{
		linkIndex:  make(map[string]int),
		jointIndex: make(map[string]int),
		materials:  make(map[string]domain.Material),
	}
}

// Attachable is something that can be grafted below a joint: a *LinkBuilder
// or a whole *Tree.
type Attachable interface {
	attachSource() (source, error)
}

// source is a validated subtree ready to be copied into a tree.
type source struct {
	arena         *arena
	root          int
	transmissions []domain.Transmission
	tree          *Tree // consumed once the attach succeeds
}

func (t *Tree) attachSource() (source, error) {
	if t.consumed {
		return source{}, domain.ErrConsumed
	}
	return source{arena: &t.arena, root: t.root, transmissions: t.transmissions, tree: t}, nil
}

func (t *Tree) consume() {
	t.consumed = true
}

// Consumed reports whether the tree was moved into another structure.
func (t *Tree) Consumed() bool { return t.consumed }

func (t *Tree) indexAll() {
	t.linkIndex = make(map[string]int, len(t.links))
	t.jointIndex = make(map[string]int, len(t.joints))
	for id, l := range t.links {
		if !l.removed {
			t.linkIndex[l.name] = id
		}
	}
	for id, j := range t.joints {
		if !j.removed {
			t.jointIndex[j.name] = id
		}
	}
}

// Root returns the link without a parent joint.
func (t *Tree) Root() Link { return Link{tree: t, id: t.root} }

// Newest returns the last leaf added by the most recent build or attach.
func (t *Tree) Newest() Link { return Link{tree: t, id: t.newest} }

// Link looks a link up by name.
func (t *Tree) Link(name string) (Link, bool) {
	id, ok := t.linkIndex[name]
	if !ok {
		return Link{}, false
	}
	return Link{tree: t, id: id}, true
}

// Joint looks a joint up by name.
func (t *Tree) Joint(name string) (Joint, bool) {
	id, ok := t.jointIndex[name]
	if !ok {
		return Joint{}, false
	}
	return Joint{tree: t, id: id}, true
}

// Links returns every link in depth-first pre-order from the root.
func (t *Tree) Links() []Link {
	out := make([]Link, 0, len(t.links))
	t.walkLink(t.root, func(id int) { out = append(out, Link{tree: t, id: id}) }, nil)
	return out
}

// Joints returns every joint in depth-first pre-order from the root.
func (t *Tree) Joints() []Joint {
	out := make([]Joint, 0, len(t.joints))
	t.walkLink(t.root, nil, func(id int) { out = append(out, Joint{tree: t, id: id}) })
	return out
}

// LinkNames returns the link names in pre-order.
func (t *Tree) LinkNames() []string {
	names := make([]string, 0, len(t.links))
	t.walkLink(t.root, func(id int) { names = append(names, t.links[id].name) }, nil)
	return names
}

// JointNames returns the joint names in pre-order.
func (t *Tree) JointNames() []string {
	names := make([]string, 0, len(t.joints))
	t.walkLink(t.root, nil, func(id int) { names = append(names, t.joints[id].name) })
	return names
}

// Material looks a named material up.
func (t *Tree) Material(name string) (domain.Material, bool) {
	m, ok := t.materials[name]
	return m, ok
}

// Materials returns the named materials sorted by name.
func (t *Tree) Materials() []domain.Material {
	out := make([]domain.Material, 0, len(t.materials))
	for _, m := range t.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddTransmission registers a transmission. Only the name is checked here;
// joint references are resolved when the tree is serialized.
func (t *Tree) AddTransmission(tr domain.Transmission) error {
	if t.consumed {
		return fmt.Errorf("add transmission %q: %w", tr.Name, domain.ErrConsumed)
	}
	if tr.Name == "" {
		return &domain.AddTransmissionError{Name: tr.Name, Reason: "transmission name is empty"}
	}
	for _, existing := range t.transmissions {
		if existing.Name == tr.Name {
			return &domain.AddTransmissionError{Name: tr.Name, Reason: "duplicate transmission name"}
		}
	}
	t.transmissions = append(t.transmissions, tr)
	return nil
}

// Transmission looks a transmission up by name.
func (t *Tree) Transmission(name string) (domain.Transmission, bool) {
	for _, tr := range t.transmissions {
		if tr.Name == name {
			return tr, true
		}
	}
	return domain.Transmission{}, false
}

// Transmissions returns the transmissions in insertion order.
func (t *Tree) Transmissions() []domain.Transmission {
	return append([]domain.Transmission(nil), t.transmissions...)
}

// checkMaterials fails when incoming materials disagree with each other or
// with the tree on the content behind a name.
func (t *Tree) checkMaterials(incoming []domain.Material) error {
	seen := make(map[string]domain.Material, len(incoming))
	for _, m := range incoming {
		if existing, ok := t.materials[m.Name]; ok && !existing.SameContent(m) {
			return &domain.AddMaterialError{Name: m.Name}
		}
		if prev, ok := seen[m.Name]; ok && !prev.SameContent(m) {
			return &domain.AddMaterialError{Name: m.Name}
		}
		seen[m.Name] = m
	}
	return nil
}

func (t *Tree) registerMaterials(ms []domain.Material) {
	for _, m := range ms {
		if _, ok := t.materials[m.Name]; !ok {
			t.materials[m.Name] = m
		}
	}
}

// ToRobot names the tree, producing the document root the emitter writes.
func (t *Tree) ToRobot(name string) *Robot {
	return &Robot{Tree: t, name: name}
}

// Robot is a named kinematic tree.
type Robot struct {
	*Tree
	name string
}

// Name returns the robot name.
func (r *Robot) Name() string { return r.name }
