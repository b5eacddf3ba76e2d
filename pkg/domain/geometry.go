package domain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is the shape of a visual or collision element.
// Implementations are comparable values, so == is structural equality.
type Geometry interface {
	fmt.Stringer
	// Kind is the URDF element name ("box", "cylinder", "sphere", "mesh").
	Kind() string
	// Mirrored returns the geometry reflected across the plane perpendicular to axis.
	Mirrored(axis MirrorAxis) Geometry
}

// Box is an axis aligned box centered at its origin.
type Box struct {
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Height float64 `json:"height" yaml:"height"`
}

func (b Box) Kind() string { return "box" }
func (b Box) Mirrored(MirrorAxis) Geometry { return b }

// Size is the URDF size attribute vector.
func (b Box) Size() mgl64.Vec3 { return mgl64.Vec3{b.Width, b.Depth, b.Height} }

func (b Box) String() string {
	return fmt.Sprintf("BoxGeometry(%s, %s, %s)", FormatFloat(b.Width), FormatFloat(b.Depth), FormatFloat(b.Height))
}

// Cylinder is a cylinder along the local Z axis.
type Cylinder struct {
	Radius float64 `json:"radius" yaml:"radius"`
	Length float64 `json:"length" yaml:"length"`
}

func (c Cylinder) Kind() string { return "cylinder" }
func (c Cylinder) Mirrored(MirrorAxis) Geometry { return c }

func (c Cylinder) String() string {
	return fmt.Sprintf("CylinderGeometry(%s, %s)", FormatFloat(c.Radius), FormatFloat(c.Length))
}

// Sphere is a sphere centered at its origin.
type Sphere struct {
	Radius float64 `json:"radius" yaml:"radius"`
}

func (s Sphere) Kind() string { return "sphere" }
func (s Sphere) Mirrored(MirrorAxis) Geometry { return s }

func (s Sphere) String() string {
	return fmt.Sprintf("SphereGeometry(%s)", FormatFloat(s.Radius))
}

// Mesh references an external mesh file. A nil Scale means (1, 1, 1).
type Mesh struct {
	Path  string      `json:"path" yaml:"path"`
	Scale *mgl64.Vec3 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

func (m Mesh) Kind() string { return "mesh" }

// Mirrored flips the scale along axis so the mesh itself is reflected.
func (m Mesh) Mirrored(axis MirrorAxis) Geometry {
	scale := mgl64.Vec3{1, 1, 1}
	if m.Scale != nil {
		scale = *m.Scale
	}
	mirrored := axis.Matrix().Mul3x1(scale)
	return Mesh{Path: m.Path, Scale: &mirrored}
}

// Equal compares path and effective scale.
func (m Mesh) Equal(other Mesh) bool {
	return m.Path == other.Path && m.scale() == other.scale()
}

func (m Mesh) scale() mgl64.Vec3 {
	if m.Scale == nil {
		return mgl64.Vec3{1, 1, 1}
	}
	return *m.Scale
}

func (m Mesh) String() string {
	s := m.scale()
	return fmt.Sprintf("MeshGeometry(%q, (%s, %s, %s))", m.Path, FormatFloat(s[0]), FormatFloat(s[1]), FormatFloat(s[2]))
}

// GeometryEqual compares two geometries structurally.
func GeometryEqual(a, b Geometry) bool {
	am, aok := a.(Mesh)
	bm, bok := b.(Mesh)
	if aok && bok {
		return am.Equal(bm)
	}
	return a == b
}
