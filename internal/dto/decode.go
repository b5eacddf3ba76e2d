package dto

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parse reads a YAML (or JSON) description.
func Parse(data []byte) (*Description, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse description: %w", err)
	}
	if raw == nil {
		return nil, errors.New("description is empty")
	}
	return Decode(raw)
}

// Decode converts an already parsed document. Unknown keys are rejected,
// except on joints where they are kept as joint arguments.
func Decode(raw map[string]any) (*Description, error) {
	var d Description
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &d,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode description: %w", err)
	}
	return &d, nil
}

// Validate checks the description for problems that do not need a tree,
// reporting all of them at once.
func (d *Description) Validate() []error {
	var errs []error
	materials := make(map[string]bool, len(d.Materials))
	for i, m := range d.Materials {
		switch {
		case m.Name == "":
			errs = append(errs, fmt.Errorf("materials[%d]: name is required", i))
		case materials[m.Name]:
			errs = append(errs, fmt.Errorf("material %q: declared twice", m.Name))
		}
		materials[m.Name] = true
		if (m.Color == nil) == (m.Texture == "") {
			errs = append(errs, fmt.Errorf("material %q: exactly one of color or texture is required", m.Name))
		}
		if m.Color != nil && len(m.Color) != 3 && len(m.Color) != 4 {
			errs = append(errs, fmt.Errorf("material %q: color needs 3 or 4 components", m.Name))
		}
	}

	if len(d.Links) == 0 {
		errs = append(errs, errors.New("at least one link is required"))
	}
	for _, l := range d.Links {
		for i, v := range l.Visuals {
			if err := v.Geometry.validate(); err != nil {
				errs = append(errs, fmt.Errorf("link %q visuals[%d]: %w", l.Name, i, err))
			}
			if name, ok := v.Material.(string); ok && !materials[name] {
				errs = append(errs, fmt.Errorf("link %q visuals[%d]: unknown material %q", l.Name, i, name))
			}
		}
		for i, c := range l.Collisions {
			if err := c.Geometry.validate(); err != nil {
				errs = append(errs, fmt.Errorf("link %q collisions[%d]: %w", l.Name, i, err))
			}
		}
	}

	for _, j := range d.Joints {
		if j.Parent == "" {
			errs = append(errs, fmt.Errorf("joint %q: parent is required", j.Name))
		}
		if (j.Child == "") == (j.Part == "") {
			errs = append(errs, fmt.Errorf("joint %q: exactly one of child or part is required", j.Name))
		}
	}

	for i, op := range d.Operations {
		if n := op.fieldCount(); n != 1 {
			errs = append(errs, fmt.Errorf("operations[%d]: expected exactly one step, found %d", i, n))
		}
	}
	return errs
}

func (g Geometry) validate() error {
	n := 0
	if g.Box != nil {
		n++
		if len(g.Box) != 3 {
			return errors.New("box needs 3 dimensions")
		}
	}
	if g.Cylinder != nil {
		n++
	}
	if g.Sphere != nil {
		n++
	}
	if g.Mesh != nil {
		n++
		if g.Mesh.Filename == "" {
			return errors.New("mesh filename is required")
		}
		if g.Mesh.Scale != nil && len(g.Mesh.Scale) != 3 {
			return errors.New("mesh scale needs 3 components")
		}
	}
	if n != 1 {
		return fmt.Errorf("expected exactly one shape, found %d", n)
	}
	return nil
}
