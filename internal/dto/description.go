package dto

// Description is a robot described as data: a flat list of links and the
// joints connecting them, followed by branch operations replayed in order.
// It uses "mapstructure" tags so that YAML documents and Loam frontmatter
// decode the same way.
type Description struct {
	Robot         string         `json:"robot" mapstructure:"robot"`
	Materials     []Material     `json:"materials" mapstructure:"materials"`
	Links         []Link         `json:"links" mapstructure:"links"`
	Joints        []Joint        `json:"joints" mapstructure:"joints"`
	Transmissions []Transmission `json:"transmissions" mapstructure:"transmissions"`
	Operations    []Operation    `json:"operations" mapstructure:"operations"`
}

// Material is a named color (rgb or rgba) or texture.
type Material struct {
	Name    string    `json:"name" mapstructure:"name"`
	Color   []float64 `json:"color" mapstructure:"color"`
	Texture string    `json:"texture" mapstructure:"texture"`
}

type Link struct {
	Name       string    `json:"name" mapstructure:"name"`
	Visuals    []Visual  `json:"visuals" mapstructure:"visuals"`
	Collisions []Element `json:"collisions" mapstructure:"collisions"`
	Inertial   *Inertial `json:"inertial" mapstructure:"inertial"`
}

// Element is the shape shared by visuals and collisions.
type Element struct {
	Name     string     `json:"name" mapstructure:"name"`
	Geometry Geometry   `json:"geometry" mapstructure:"geometry"`
	Origin   *Transform `json:"origin" mapstructure:"origin"`
}

// Visual references a material by name or describes one inline.
type Visual struct {
	Element  `mapstructure:",squash"`
	Material any `json:"material" mapstructure:"material"`
}

// Geometry holds exactly one shape.
type Geometry struct {
	Box      []float64 `json:"box" mapstructure:"box"`
	Cylinder *Cylinder `json:"cylinder" mapstructure:"cylinder"`
	Sphere   *Sphere   `json:"sphere" mapstructure:"sphere"`
	Mesh     *Mesh     `json:"mesh" mapstructure:"mesh"`
}

type Cylinder struct {
	Radius float64 `json:"radius" mapstructure:"radius"`
	Length float64 `json:"length" mapstructure:"length"`
}

type Sphere struct {
	Radius float64 `json:"radius" mapstructure:"radius"`
}

type Mesh struct {
	Filename string    `json:"filename" mapstructure:"filename"`
	Scale    []float64 `json:"scale" mapstructure:"scale"`
}

type Transform struct {
	XYZ []float64 `json:"xyz" mapstructure:"xyz"`
	RPY []float64 `json:"rpy" mapstructure:"rpy"`
}

type Inertial struct {
	Origin *Transform `json:"origin" mapstructure:"origin"`
	Mass   float64    `json:"mass" mapstructure:"mass"`
	Ixx    float64    `json:"ixx" mapstructure:"ixx"`
	Ixy    float64    `json:"ixy" mapstructure:"ixy"`
	Ixz    float64    `json:"ixz" mapstructure:"ixz"`
	Iyy    float64    `json:"iyy" mapstructure:"iyy"`
	Iyz    float64    `json:"iyz" mapstructure:"iyz"`
	Izz    float64    `json:"izz" mapstructure:"izz"`
}

// Joint connects Parent to either a Child link of the same document or a
// Part resolved from the part library. Every other key is a joint argument
// (transform, axis, limit, ...) and is checked when the joint is built.
type Joint struct {
	Name   string         `json:"name" mapstructure:"name"`
	Type   string         `json:"type" mapstructure:"type"`
	Parent string         `json:"parent" mapstructure:"parent"`
	Child  string         `json:"child" mapstructure:"child"`
	Part   string         `json:"part" mapstructure:"part"`
	Args   map[string]any `json:"-" mapstructure:",remain"`
}

type Transmission struct {
	Name      string              `json:"name" mapstructure:"name"`
	Type      string              `json:"type" mapstructure:"type"`
	Joints    []TransmissionJoint `json:"joints" mapstructure:"joints"`
	Actuators []Actuator          `json:"actuators" mapstructure:"actuators"`
}

type TransmissionJoint struct {
	Name               string   `json:"name" mapstructure:"name"`
	HardwareInterfaces []string `json:"hardware_interfaces" mapstructure:"hardware_interfaces"`
}

type Actuator struct {
	Name                string   `json:"name" mapstructure:"name"`
	MechanicalReduction *float64 `json:"mechanical_reduction" mapstructure:"mechanical_reduction"`
}

// Operation is one replayed step. Exactly one field is set.
//
//	rebuild: <joint>       copy the branch below a joint into the working chain
//	yank_joint: <joint>    move the branch below a joint into the working chain
//	mirror: X|Y|Z          mirror the working chain
//	group_id: <id>         change the group id of the working chain
//	axis: [x, y, z]        set the axis of the chain's root joint
//	transform: {xyz, rpy}  set the transform of the chain's root joint
//	attach_chain: <link>   attach the working chain below a link
//	apply_group_id: true   apply pending group ids on the whole tree
//	yank: true             replace the tree by its yanked copy
type Operation struct {
	Rebuild      string     `json:"rebuild" mapstructure:"rebuild"`
	YankJoint    string     `json:"yank_joint" mapstructure:"yank_joint"`
	Mirror       string     `json:"mirror" mapstructure:"mirror"`
	GroupID      string     `json:"group_id" mapstructure:"group_id"`
	Axis         []float64  `json:"axis" mapstructure:"axis"`
	Transform    *Transform `json:"transform" mapstructure:"transform"`
	AttachChain  string     `json:"attach_chain" mapstructure:"attach_chain"`
	ApplyGroupID bool       `json:"apply_group_id" mapstructure:"apply_group_id"`
	Yank         bool       `json:"yank" mapstructure:"yank"`
}

// Kind names the step an operation performs, or "" when no field is set.
func (o Operation) Kind() string {
	switch {
	case o.Rebuild != "":
		return "rebuild"
	case o.YankJoint != "":
		return "yank_joint"
	case o.Mirror != "":
		return "mirror"
	case o.GroupID != "":
		return "group_id"
	case o.Axis != nil:
		return "axis"
	case o.Transform != nil:
		return "transform"
	case o.AttachChain != "":
		return "attach_chain"
	case o.ApplyGroupID:
		return "apply_group_id"
	case o.Yank:
		return "yank"
	}
	return ""
}

// fieldCount reports how many steps an operation names.
func (o Operation) fieldCount() int {
	n := 0
	for _, set := range []bool{
		o.Rebuild != "", o.YankJoint != "", o.Mirror != "", o.GroupID != "", o.Axis != nil,
		o.Transform != nil, o.AttachChain != "", o.ApplyGroupID, o.Yank,
	} {
		if set {
			n++
		}
	}
	return n
}
