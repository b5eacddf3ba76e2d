package domain

import "fmt"

// MaterialData is the appearance of a material: a Color or a Texture.
type MaterialData interface {
	isMaterialData()
}

// Color is a flat RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

func (Color) isMaterialData() {}

func (c Color) String() string {
	return fmt.Sprintf("%s %s %s %s", FormatFloat(c.R), FormatFloat(c.G), FormatFloat(c.B), FormatFloat(c.A))
}

// Texture references an image, usually as a package:// path.
type Texture struct {
	Path string
}

func (Texture) isMaterialData() {}

// Material is an appearance shared by visuals. Named materials are
// deduplicated per tree; anonymous ones are inlined at each use.
type Material struct {
	Name string
	Data MaterialData
}

// NewColor creates an anonymous color material.
func NewColor(r, g, b, a float64) Material {
	return Material{Data: Color{R: r, G: g, B: b, A: a}}
}

// NewRGB creates an anonymous opaque color material.
func NewRGB(r, g, b float64) Material {
	return NewColor(r, g, b, 1)
}

// NewTexture creates an anonymous texture material.
func NewTexture(path string) Material {
	return Material{Data: Texture{Path: path}}
}

// Named returns a copy of the material carrying name.
func (m Material) Named(name string) Material {
	m.Name = name
	return m
}

// IsNamed reports whether the material takes part in per-tree deduplication.
func (m Material) IsNamed() bool {
	return m.Name != ""
}

// SameContent reports whether both materials describe the same appearance.
func (m Material) SameContent(other Material) bool {
	return m.Data == other.Data
}
