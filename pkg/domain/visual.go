package domain

// Visual is the rendered appearance of a link.
type Visual struct {
	Name      string
	Geometry  Geometry
	Transform Transform
	Material  *Material
}

// NewVisual creates an unnamed visual at the link origin.
func NewVisual(g Geometry) Visual {
	return Visual{Geometry: g}
}

// Named returns a copy carrying name.
func (v Visual) Named(name string) Visual {
	v.Name = name
	return v
}

// Transformed returns a copy placed at t.
func (v Visual) Transformed(t Transform) Visual {
	v.Transform = t
	return v
}

// Materialized returns a copy using m.
func (v Visual) Materialized(m Material) Visual {
	v.Material = &m
	return v
}

// Mirrored reflects placement and geometry across axis.
func (v Visual) Mirrored(axis MirrorAxis) Visual {
	v.Transform = v.Transform.Mirror(axis)
	v.Geometry = v.Geometry.Mirrored(axis)
	return v
}

// Collision is the contact shape of a link.
type Collision struct {
	Name      string
	Geometry  Geometry
	Transform Transform
}

// NewCollision creates an unnamed collision at the link origin.
func NewCollision(g Geometry) Collision {
	return Collision{Geometry: g}
}

// Named returns a copy carrying name.
func (c Collision) Named(name string) Collision {
	c.Name = name
	return c
}

// Transformed returns a copy placed at t.
func (c Collision) Transformed(t Transform) Collision {
	c.Transform = t
	return c
}

// Mirrored reflects placement and geometry across axis.
func (c Collision) Mirrored(axis MirrorAxis) Collision {
	c.Transform = c.Transform.Mirror(axis)
	c.Geometry = c.Geometry.Mirrored(axis)
	return c
}
