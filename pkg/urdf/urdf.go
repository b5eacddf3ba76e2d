// Package urdf writes kinematic trees as URDF documents.
//
// The output is a pure function of the tree and the Config: the same tree
// written twice with the same settings yields identical bytes.
package urdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/go-gl/mathgl/mgl64"
)

// ToURDFString writes r with the given indentation and default settings.
func ToURDFString(r *kinematic.Robot, indent Indent) (string, error) {
	cfg := NewConfig()
	cfg.Indent = indent
	b, err := Marshal(r, cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Marshal writes r as a URDF document. It fails with *domain.XMLError when
// the tree cannot be described consistently.
func Marshal(r *kinematic.Robot, cfg Config) ([]byte, error) {
	if r == nil || r.Tree == nil {
		return nil, &domain.XMLError{Element: "robot", Reason: "no tree"}
	}
	if r.Consumed() {
		return nil, &domain.XMLError{Element: "robot", Reason: domain.ErrConsumed.Error()}
	}
	if err := checkNames(r.Tree); err != nil {
		return nil, err
	}

	e := &emitter{cfg: cfg, uses: materialUses(r.Tree)}
	root, err := e.robot(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeDocument(&buf, root, cfg.Indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checkNames rejects trees whose link, joint or material names only differ
// in their group id delimiters.
func checkNames(t *kinematic.Tree) error {
	check := func(kind string, names []string) error {
		seen := make(map[string]string, len(names))
		for _, n := range names {
			display := domain.DisplayName(n)
			if prev, ok := seen[display]; ok {
				return &domain.XMLError{
					Element: kind,
					Reason:  fmt.Sprintf("%q and %q are both written as %q", prev, n, display),
				}
			}
			seen[display] = n
		}
		return nil
	}
	if err := check("link", t.LinkNames()); err != nil {
		return err
	}
	if err := check("joint", t.JointNames()); err != nil {
		return err
	}
	var materials []string
	for _, m := range t.Materials() {
		materials = append(materials, m.Name)
	}
	return check("material", materials)
}

func materialUses(t *kinematic.Tree) map[string]int {
	uses := make(map[string]int)
	for _, l := range t.Links() {
		for _, v := range l.Visuals() {
			if v.Material != nil && v.Material.IsNamed() {
				uses[v.Material.Name]++
			}
		}
	}
	return uses
}

type emitter struct {
	cfg  Config
	uses map[string]int
}

func (e *emitter) robot(r *kinematic.Robot) (*element, error) {
	root := newElement("robot").attr("name", domain.DisplayName(r.Name()))
	for _, l := range r.Links() {
		root.add(e.link(l))
	}
	for _, j := range r.Joints() {
		root.add(e.joint(j))
	}
	for _, m := range r.Materials() {
		if e.onTop(m) {
			root.add(material(m))
		}
	}
	for _, tr := range r.Transmissions() {
		el, err := e.transmission(r.Tree, tr)
		if err != nil {
			return nil, err
		}
		root.add(el)
	}
	return root, nil
}

// onTop reports whether a named material is described at the robot level.
func (e *emitter) onTop(m domain.Material) bool {
	switch e.cfg.MaterialReferences {
	case AlwaysInline:
		return false
	case OnlyMultiUse:
		return e.uses[m.Name] > 1
	default:
		return true
	}
}

func (e *emitter) link(l kinematic.Link) *element {
	el := newElement("link").attr("name", domain.DisplayName(l.Name()))
	if in, ok := l.Inertial(); ok {
		el.add(inertial(in))
	}
	for _, v := range l.Visuals() {
		vis := newElement("visual").attr("name", domain.DisplayName(v.Name)).
			add(origin(v.Transform), geometry(v.Geometry))
		if v.Material != nil {
			vis.add(e.materialRef(*v.Material))
		}
		el.add(vis)
	}
	for _, c := range l.Collisions() {
		el.add(newElement("collision").attr("name", domain.DisplayName(c.Name)).
			add(origin(c.Transform), geometry(c.Geometry)))
	}
	return el
}

func (e *emitter) materialRef(m domain.Material) *element {
	if m.IsNamed() && e.onTop(m) {
		return newElement("material").attr("name", domain.DisplayName(m.Name))
	}
	return material(m)
}

func (e *emitter) joint(j kinematic.Joint) *element {
	el := newElement("joint").
		attr("name", domain.DisplayName(j.Name())).
		attr("type", j.Type().String()).
		add(
			origin(j.Transform()),
			newElement("parent").attr("link", domain.DisplayName(j.Parent().Name())),
			newElement("child").attr("link", domain.DisplayName(j.Child().Name())),
		)
	if axis, ok := j.Axis(); ok {
		el.add(newElement("axis").attr("xyz", domain.FormatVec3(axis)))
	}
	if c := j.Calibration(); !c.IsEmpty() {
		el.add(newElement("calibration").
			attr("rising", optFloat(c.Rising)).
			attr("falling", optFloat(c.Falling)))
	}
	if d := j.Dynamics(); !d.IsEmpty() {
		el.add(newElement("dynamics").
			attr("damping", optFloat(d.Damping)).
			attr("friction", optFloat(d.Friction)))
	}
	if l, ok := j.Limit(); ok {
		el.add(newElement("limit").
			attr("effort", domain.FormatFloat(l.Effort)).
			attr("velocity", domain.FormatFloat(l.Velocity)).
			attr("lower", optFloat(l.Lower)).
			attr("upper", optFloat(l.Upper)))
	}
	if m, ok := j.Mimic(); ok {
		el.add(newElement("mimic").
			attr("joint", domain.DisplayName(m.Joint)).
			attr("multiplier", optFloat(m.Multiplier)).
			attr("offset", optFloat(m.Offset)))
	}
	if s, ok := j.SafetyController(); ok {
		el.add(newElement("safety_controller").
			attr("soft_lower_limit", optFloat(s.SoftLowerLimit)).
			attr("soft_upper_limit", optFloat(s.SoftUpperLimit)).
			attr("k_position", optFloat(s.KPosition)).
			attr("k_velocity", domain.FormatFloat(s.KVelocity)))
	}
	return el
}

func (e *emitter) transmission(t *kinematic.Tree, tr domain.Transmission) (*element, error) {
	el := newElement("transmission").attr("name", domain.DisplayName(tr.Name)).
		add(newElement("type").withText("transmission_interface/" + tr.Type.String()))
	for _, tj := range tr.Joints {
		if _, ok := t.Joint(tj.Name); !ok {
			return nil, &domain.XMLError{
				Element: "transmission",
				Reason:  fmt.Sprintf("%q references unknown joint %q", tr.Name, tj.Name),
			}
		}
		joint := newElement("joint").attr("name", domain.DisplayName(tj.Name))
		for _, hw := range tj.HardwareInterfaces {
			joint.add(newElement("hardwareInterface").withText(e.hardwareInterface(hw)))
		}
		el.add(joint)
	}
	for _, a := range tr.Actuators {
		act := newElement("actuator").attr("name", domain.DisplayName(a.Name))
		if a.MechanicalReduction != nil {
			act.add(newElement("mechanicalReduction").withText(domain.FormatFloat(*a.MechanicalReduction)))
		}
		el.add(act)
	}
	return el, nil
}

func (e *emitter) hardwareInterface(hw domain.HardwareInterface) string {
	if e.cfg.Target == Gazebo {
		return hw.String()
	}
	return "hardware_interface/" + hw.String()
}

// origin returns nil for the identity so that no element is written.
func origin(t domain.Transform) *element {
	if t.IsIdentity() {
		return nil
	}
	el := newElement("origin")
	if t.Translation != (mgl64.Vec3{}) {
		el.attr("xyz", domain.FormatVec3(t.Translation))
	}
	if t.Rotation != (mgl64.Vec3{}) {
		el.attr("rpy", domain.FormatVec3(t.Rotation))
	}
	return el
}

func inertial(in domain.Inertial) *element {
	return newElement("inertial").add(
		origin(in.Transform),
		newElement("mass").attr("value", domain.FormatFloat(in.Mass)),
		newElement("inertia").
			attr("ixx", domain.FormatFloat(in.Ixx)).
			attr("ixy", domain.FormatFloat(in.Ixy)).
			attr("ixz", domain.FormatFloat(in.Ixz)).
			attr("iyy", domain.FormatFloat(in.Iyy)).
			attr("iyz", domain.FormatFloat(in.Iyz)).
			attr("izz", domain.FormatFloat(in.Izz)),
	)
}

func geometry(g domain.Geometry) *element {
	el := newElement("geometry")
	switch g := g.(type) {
	case domain.Box:
		el.add(newElement("box").attr("size", domain.FormatVec3(g.Size())))
	case domain.Cylinder:
		el.add(newElement("cylinder").
			attr("radius", domain.FormatFloat(g.Radius)).
			attr("length", domain.FormatFloat(g.Length)))
	case domain.Sphere:
		el.add(newElement("sphere").attr("radius", domain.FormatFloat(g.Radius)))
	case domain.Mesh:
		mesh := newElement("mesh").attr("filename", g.Path)
		if g.Scale != nil {
			mesh.attr("scale", domain.FormatVec3(*g.Scale))
		}
		el.add(mesh)
	}
	return el
}

// material describes m in full.
func material(m domain.Material) *element {
	el := newElement("material").attr("name", domain.DisplayName(m.Name))
	switch d := m.Data.(type) {
	case domain.Color:
		el.add(newElement("color").attr("rgba", d.String()))
	case domain.Texture:
		el.add(newElement("texture").attr("filename", d.Path))
	}
	return el
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return domain.FormatFloat(*v)
}

// SortedMaterialNames lists the display names of the tree's named materials.
func SortedMaterialNames(t *kinematic.Tree) []string {
	var names []string
	for _, m := range t.Materials() {
		names = append(names, domain.DisplayName(m.Name))
	}
	sort.Strings(names)
	return names
}

// Summary is a one-line description of a tree, used in logs.
func Summary(r *kinematic.Robot) string {
	return fmt.Sprintf("robot %q: %d links, %d joints, materials [%s], %d transmissions",
		domain.DisplayName(r.Name()), len(r.LinkNames()), len(r.JointNames()),
		strings.Join(SortedMaterialNames(r.Tree), ", "), len(r.Transmissions()))
}
