package compiler

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/mitchellh/mapstructure"
)

// builder assembles the initial tree of one description.
type builder struct {
	compiler  *Compiler
	desc      *dto.Description
	stack     []string // part ids being built, outermost first
	materials map[string]domain.Material
	links     map[string]dto.Link
}

func (b *builder) tree(ctx context.Context) (*kinematic.Tree, error) {
	b.links = make(map[string]dto.Link, len(b.desc.Links))
	for _, l := range b.desc.Links {
		if _, dup := b.links[l.Name]; dup {
			return nil, &domain.BuildError{Name: l.Name, Reason: "duplicate link name"}
		}
		b.links[l.Name] = l
	}

	root, err := b.root()
	if err != nil {
		return nil, err
	}
	rootBuilder, err := b.link(root)
	if err != nil {
		return nil, err
	}
	tree, err := rootBuilder.Build()
	if err != nil {
		return nil, err
	}

	// Joints may be listed in any order: attach whatever has its parent in
	// the tree until nothing is left or nothing moves.
	pending := append([]dto.Joint(nil), b.desc.Joints...)
	for len(pending) > 0 {
		var next []dto.Joint
		for _, j := range pending {
			parent, ok := tree.Link(j.Parent)
			if !ok {
				next = append(next, j)
				continue
			}
			if err := b.attach(ctx, parent, j); err != nil {
				return nil, err
			}
		}
		if len(next) == len(pending) {
			names := make([]string, len(next))
			for i, j := range next {
				names[i] = fmt.Sprintf("%s (parent %s)", j.Name, j.Parent)
			}
			return nil, &domain.BuildError{
				Name:   next[0].Name,
				Reason: "parent link is not part of the tree: " + strings.Join(names, ", "),
			}
		}
		pending = next
	}
	return tree, nil
}

// root finds the only link that is no joint's child.
func (b *builder) root() (dto.Link, error) {
	children := make(map[string]bool, len(b.desc.Joints))
	for _, j := range b.desc.Joints {
		if j.Child != "" {
			children[j.Child] = true
		}
	}
	var roots []string
	for _, l := range b.desc.Links {
		if !children[l.Name] {
			roots = append(roots, l.Name)
		}
	}
	if len(roots) != 1 {
		return dto.Link{}, &domain.BuildError{
			Name:   b.desc.Robot,
			Reason: fmt.Sprintf("expected exactly one root link, found [%s]", strings.Join(roots, ", ")),
		}
	}
	return b.links[roots[0]], nil
}

func (b *builder) attach(ctx context.Context, parent kinematic.Link, j dto.Joint) error {
	jointType := domain.JointFixed
	if j.Type != "" {
		t, err := domain.ParseJointType(j.Type)
		if err != nil {
			return &domain.BuildError{Name: j.Name, Reason: err.Error()}
		}
		jointType = t
	}
	jb, err := kinematic.JointBuilderFromArgs(j.Name, jointType, j.Args)
	if err != nil {
		return err
	}

	var child kinematic.Attachable
	if j.Part != "" {
		part, err := b.part(ctx, j.Part)
		if err != nil {
			return err
		}
		child = part
	} else {
		def, ok := b.links[j.Child]
		if !ok {
			return &domain.BuildError{Name: j.Name, Reason: fmt.Sprintf("unknown child link %q", j.Child)}
		}
		lb, err := b.link(def)
		if err != nil {
			return err
		}
		child = lb
	}

	_, err = parent.TryAttachChild(jb, child)
	return err
}

// part builds a part from the library and yanks it, so that only the
// materials and transmissions it actually uses come along.
func (b *builder) part(ctx context.Context, id string) (*kinematic.Tree, error) {
	c := b.compiler
	if c.parts == nil {
		return nil, fmt.Errorf("part %q: no part library configured", id)
	}
	if slices.Contains(b.stack, id) {
		return nil, fmt.Errorf("part %q: includes itself through %s", id, strings.Join(b.stack, " -> "))
	}
	if len(b.stack) >= maxPartDepth {
		return nil, fmt.Errorf("part %q: parts nest deeper than %d", id, maxPartDepth)
	}

	desc, err := c.parts.ResolvePart(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", id, err)
	}
	c.logger.Debug("building part", "part", id, "depth", len(b.stack)+1)
	tree, err := c.buildTree(ctx, desc, append(slices.Clone(b.stack), id))
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", id, err)
	}
	return tree.YankRoot()
}

func (b *builder) link(l dto.Link) (*kinematic.LinkBuilder, error) {
	lb := kinematic.NewLinkBuilder(l.Name)
	for _, v := range l.Visuals {
		vis, err := b.visual(v)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", l.Name, err)
		}
		lb.AddVisual(vis)
	}
	for _, c := range l.Collisions {
		g, err := geometry(c.Geometry)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", l.Name, err)
		}
		t, err := transform(c.Origin)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", l.Name, err)
		}
		lb.AddCollision(domain.NewCollision(g).Named(c.Name).Transformed(t))
	}
	if in := l.Inertial; in != nil {
		t, err := transform(in.Origin)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", l.Name, err)
		}
		lb.SetInertial(domain.Inertial{
			Transform: t,
			Mass:      in.Mass,
			Ixx:       in.Ixx,
			Ixy:       in.Ixy,
			Ixz:       in.Ixz,
			Iyy:       in.Iyy,
			Iyz:       in.Iyz,
			Izz:       in.Izz,
		})
	}
	return lb, nil
}

func (b *builder) visual(v dto.Visual) (domain.Visual, error) {
	g, err := geometry(v.Geometry)
	if err != nil {
		return domain.Visual{}, err
	}
	t, err := transform(v.Origin)
	if err != nil {
		return domain.Visual{}, err
	}
	vis := domain.NewVisual(g).Named(v.Name).Transformed(t)

	switch m := v.Material.(type) {
	case nil:
	case string:
		vis = vis.Materialized(b.materials[m])
	default:
		var inline dto.Material
		if err := mapstructure.Decode(m, &inline); err != nil {
			return domain.Visual{}, &domain.TypeConversionError{Argument: "material", Expected: "material name or mapping", Value: m}
		}
		if (inline.Color == nil) == (inline.Texture == "") || (inline.Color != nil && len(inline.Color) != 3 && len(inline.Color) != 4) {
			return domain.Visual{}, &domain.TypeConversionError{Argument: "material", Expected: "color or texture", Value: m}
		}
		vis = vis.Materialized(material(inline))
	}
	return vis, nil
}

func geometry(g dto.Geometry) (domain.Geometry, error) {
	switch {
	case g.Box != nil:
		return domain.Box{Width: g.Box[0], Depth: g.Box[1], Height: g.Box[2]}, nil
	case g.Cylinder != nil:
		return domain.Cylinder{Radius: g.Cylinder.Radius, Length: g.Cylinder.Length}, nil
	case g.Sphere != nil:
		return domain.Sphere{Radius: g.Sphere.Radius}, nil
	case g.Mesh != nil:
		mesh := domain.Mesh{Path: g.Mesh.Filename}
		if g.Mesh.Scale != nil {
			s, err := vec3("scale", g.Mesh.Scale)
			if err != nil {
				return nil, err
			}
			mesh.Scale = &s
		}
		return mesh, nil
	}
	return nil, &domain.BuildError{Reason: "geometry without a shape"}
}
