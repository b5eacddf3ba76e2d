package kinematic

import (
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
)

const noParent = -1

type linkSpec struct {
	name       string
	visuals    []domain.Visual
	collisions []domain.Collision
	inertial   *domain.Inertial
}

func (s linkSpec) clone() linkSpec {
	out := linkSpec{name: s.name}
	if len(s.visuals) > 0 {
		out.visuals = make([]domain.Visual, len(s.visuals))
		for i, v := range s.visuals {
			if v.Material != nil {
				m := *v.Material
				v.Material = &m
			}
			out.visuals[i] = v
		}
	}
	if len(s.collisions) > 0 {
		out.collisions = append([]domain.Collision(nil), s.collisions...)
	}
	if s.inertial != nil {
		in := *s.inertial
		out.inertial = &in
	}
	return out
}

type jointSpec struct {
	name        string
	jointType   domain.JointType
	transform   domain.Transform
	axis        *mgl64.Vec3
	limit       *domain.Limit
	calibration domain.Calibration
	dynamics    domain.Dynamics
	mimic       *domain.Mimic
	safety      *domain.SafetyController
}

func (s jointSpec) clone() jointSpec {
	out := s
	if s.axis != nil {
		a := *s.axis
		out.axis = &a
	}
	if s.limit != nil {
		l := *s.limit
		out.limit = &l
	}
	if s.mimic != nil {
		m := *s.mimic
		out.mimic = &m
	}
	if s.safety != nil {
		sc := *s.safety
		out.safety = &sc
	}
	return out
}

type linkNode struct {
	linkSpec
	parent  int   // parent joint, noParent for a root
	joints  []int // child joints in insertion order
	removed bool
}

type jointNode struct {
	jointSpec
	parent  int // parent link, noParent for the root of a chain
	child   int
	removed bool
}

// arena stores the nodes of a Tree or a Chain. Ids stay stable for the life
// of the arena: yanking a branch unlinks it and marks its nodes removed
// instead of compacting the slices.
type arena struct {
	links  []*linkNode
	joints []*jointNode
}

func (a *arena) addLink(spec linkSpec, parentJoint int) int {
	id := len(a.links)
	a.links = append(a.links, &linkNode{linkSpec: spec, parent: parentJoint})
	return id
}

func (a *arena) addJoint(spec jointSpec, parentLink int) int {
	id := len(a.joints)
	a.joints = append(a.joints, &jointNode{jointSpec: spec, parent: parentLink, child: noParent})
	if parentLink != noParent {
		a.links[parentLink].joints = append(a.links[parentLink].joints, id)
	}
	return id
}

// graftLink copies the subtree of src rooted at link id below parentJoint.
// visit sees every new link in depth-first pre-order.
func (a *arena) graftLink(src *arena, id, parentJoint int, visit func(int)) int {
	n := src.links[id]
	newID := a.addLink(n.linkSpec.clone(), parentJoint)
	if visit != nil {
		visit(newID)
	}
	for _, j := range n.joints {
		a.graftJoint(src, j, newID, visit)
	}
	return newID
}

// graftJoint copies the joint id of src and everything below it under parentLink.
func (a *arena) graftJoint(src *arena, id, parentLink int, visit func(int)) int {
	n := src.joints[id]
	newID := a.addJoint(n.jointSpec.clone(), parentLink)
	a.joints[newID].child = a.graftLink(src, n.child, newID, visit)
	return newID
}

// walkLink visits the subtree rooted at link id in depth-first pre-order,
// reporting links and joints in the order they appear.
func (a *arena) walkLink(id int, onLink, onJoint func(int)) {
	if onLink != nil {
		onLink(id)
	}
	for _, j := range a.links[id].joints {
		a.walkJoint(j, onLink, onJoint)
	}
}

func (a *arena) walkJoint(id int, onLink, onJoint func(int)) {
	if onJoint != nil {
		onJoint(id)
	}
	a.walkLink(a.joints[id].child, onLink, onJoint)
}

// mirror reflects every node in place.
func (a *arena) mirror(axis domain.MirrorAxis) {
	m := axis.Matrix()
	for _, l := range a.links {
		for i := range l.visuals {
			l.visuals[i] = l.visuals[i].Mirrored(axis)
		}
		for i := range l.collisions {
			l.collisions[i] = l.collisions[i].Mirrored(axis)
		}
		if l.inertial != nil {
			in := l.inertial.Mirrored(axis)
			l.inertial = &in
		}
	}
	for _, j := range a.joints {
		j.transform = j.transform.Mirror(axis)
		if j.axis == nil {
			continue
		}
		mirrored := m.Mul3x1(*j.axis)
		// Rotation axes are pseudovectors and flip once more under reflection.
		if j.jointType.IsRotational() {
			mirrored = mirrored.Mul(-1)
		}
		j.axis = &mirrored
	}
}

// materials lists the named materials used by visuals, in walk order.
func (a *arena) materials() []domain.Material {
	var out []domain.Material
	for _, l := range a.links {
		if l.removed {
			continue
		}
		for _, v := range l.visuals {
			if v.Material != nil && v.Material.IsNamed() {
				out = append(out, *v.Material)
			}
		}
	}
	return out
}

// markRemoved flags the joint id and everything below it as removed.
func (a *arena) markRemoved(id int) {
	a.walkJoint(id,
		func(l int) { a.links[l].removed = true },
		func(j int) { a.joints[j].removed = true },
	)
}

// renameAll rewrites link, joint, element and material names with the given
// functions and keeps mimic references pointing at renamed joints.
func (a *arena) renameAll(nodeName, elementName func(string) string) {
	renamedJoints := make(map[string]string, len(a.joints))
	for _, j := range a.joints {
		newName := nodeName(j.name)
		renamedJoints[j.name] = newName
		j.name = newName
	}
	for _, j := range a.joints {
		if j.mimic != nil {
			if newName, ok := renamedJoints[j.mimic.Joint]; ok {
				j.mimic.Joint = newName
			}
		}
	}
	for _, l := range a.links {
		l.name = nodeName(l.name)
		for i := range l.visuals {
			l.visuals[i].Name = elementName(l.visuals[i].Name)
			if mat := l.visuals[i].Material; mat != nil && mat.IsNamed() {
				renamed := mat.Named(elementName(mat.Name))
				l.visuals[i].Material = &renamed
			}
		}
		for i := range l.collisions {
			l.collisions[i].Name = elementName(l.collisions[i].Name)
		}
	}
}
