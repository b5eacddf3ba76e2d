// Package compiler turns robot descriptions into kinematic trees.
package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/internal/logging"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/go-gl/mathgl/mgl64"
)

// maxPartDepth bounds how deeply parts may include other parts.
const maxPartDepth = 8

// PartResolver looks sub-assemblies up by id.
type PartResolver interface {
	ResolvePart(ctx context.Context, id string) (*dto.Description, error)
}

// Compiler builds trees from descriptions.
type Compiler struct {
	logger *slog.Logger
	parts  PartResolver
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used to trace replayed operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// WithParts enables joints that attach parts from a library.
func WithParts(r PartResolver) Option {
	return func(c *Compiler) { c.parts = r }
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// Compile parses data and builds the described robot.
func (c *Compiler) Compile(ctx context.Context, data []byte) (*kinematic.Robot, error) {
	d, err := dto.Parse(data)
	if err != nil {
		return nil, err
	}
	return c.Build(ctx, d)
}

// Build builds the robot described by d. Validation problems are reported
// together in a *domain.AggregateError; tree errors are returned as is.
func (c *Compiler) Build(ctx context.Context, d *dto.Description) (*kinematic.Robot, error) {
	tree, err := c.buildTree(ctx, d, nil)
	if err != nil {
		return nil, err
	}
	return tree.ToRobot(d.Robot), nil
}

func (c *Compiler) buildTree(ctx context.Context, d *dto.Description, stack []string) (*kinematic.Tree, error) {
	if errs := d.Validate(); len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}

	b := &builder{
		compiler:  c,
		desc:      d,
		stack:     stack,
		materials: make(map[string]domain.Material, len(d.Materials)),
	}
	for _, m := range d.Materials {
		b.materials[m.Name] = material(m)
	}

	tree, err := b.tree(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range d.Materials {
		if err := tree.AddMaterial(b.materials[m.Name]); err != nil {
			return nil, err
		}
	}
	for _, tr := range d.Transmissions {
		t, err := transmission(tr)
		if err != nil {
			return nil, err
		}
		if err := tree.AddTransmission(t); err != nil {
			return nil, err
		}
	}
	return c.replay(tree, d.Operations)
}

func material(m dto.Material) domain.Material {
	if m.Texture != "" {
		return domain.NewTexture(m.Texture).Named(m.Name)
	}
	if len(m.Color) == 3 {
		return domain.NewRGB(m.Color[0], m.Color[1], m.Color[2]).Named(m.Name)
	}
	return domain.NewColor(m.Color[0], m.Color[1], m.Color[2], m.Color[3]).Named(m.Name)
}

func transform(t *dto.Transform) (domain.Transform, error) {
	if t == nil {
		return domain.Transform{}, nil
	}
	var out domain.Transform
	if t.XYZ != nil {
		v, err := vec3("xyz", t.XYZ)
		if err != nil {
			return out, err
		}
		out.Translation = v
	}
	if t.RPY != nil {
		v, err := vec3("rpy", t.RPY)
		if err != nil {
			return out, err
		}
		out.Rotation = v
	}
	return out, nil
}

func vec3(argument string, xs []float64) (mgl64.Vec3, error) {
	if len(xs) != 3 {
		return mgl64.Vec3{}, &domain.TypeConversionError{Argument: argument, Expected: "3-vector", Value: xs}
	}
	return mgl64.Vec3{xs[0], xs[1], xs[2]}, nil
}

func transmission(tr dto.Transmission) (domain.Transmission, error) {
	out := domain.Transmission{Name: tr.Name}
	if tr.Type != "" {
		t, err := domain.ParseTransmissionType(tr.Type)
		if err != nil {
			return out, fmt.Errorf("transmission %q: %w", tr.Name, err)
		}
		out.Type = t
	}
	for _, j := range tr.Joints {
		tj := domain.TransmissionJoint{Name: j.Name}
		for _, hw := range j.HardwareInterfaces {
			h, err := domain.ParseHardwareInterface(hw)
			if err != nil {
				return out, fmt.Errorf("transmission %q: %w", tr.Name, err)
			}
			tj.HardwareInterfaces = append(tj.HardwareInterfaces, h)
		}
		out.Joints = append(out.Joints, tj)
	}
	for _, a := range tr.Actuators {
		out.Actuators = append(out.Actuators, domain.TransmissionActuator{Name: a.Name, MechanicalReduction: a.MechanicalReduction})
	}
	return out, nil
}
