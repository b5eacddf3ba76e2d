package kinematic

import "github.com/aretw0/kinetree/pkg/domain"

// Overview is a flat, serializable summary of a robot. Names are display
// names.
type Overview struct {
	Robot         string          `json:"robot"`
	Root          string          `json:"root"`
	Links         []LinkOverview  `json:"links"`
	Joints        []JointOverview `json:"joints"`
	Materials     []string        `json:"materials,omitempty"`
	Transmissions []string        `json:"transmissions,omitempty"`
}

type LinkOverview struct {
	Name       string   `json:"name"`
	Visuals    int      `json:"visuals"`
	Collisions int      `json:"collisions"`
	Mass       *float64 `json:"mass,omitempty"`
}

type JointOverview struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Parent string    `json:"parent"`
	Child  string    `json:"child"`
	Axis   []float64 `json:"axis,omitempty"`
}

// Overview lists links and joints in pre-order.
func (r *Robot) Overview() Overview {
	o := Overview{
		Robot: domain.DisplayName(r.Name()),
		Root:  domain.DisplayName(r.Root().Name()),
	}
	for _, l := range r.Links() {
		lo := LinkOverview{
			Name:       domain.DisplayName(l.Name()),
			Visuals:    len(l.Visuals()),
			Collisions: len(l.Collisions()),
		}
		if in, ok := l.Inertial(); ok {
			mass := in.Mass
			lo.Mass = &mass
		}
		o.Links = append(o.Links, lo)
	}
	for _, j := range r.Joints() {
		jo := JointOverview{
			Name:   domain.DisplayName(j.Name()),
			Type:   j.Type().String(),
			Parent: domain.DisplayName(j.Parent().Name()),
			Child:  domain.DisplayName(j.Child().Name()),
		}
		if axis, ok := j.Axis(); ok {
			jo.Axis = []float64{axis[0], axis[1], axis[2]}
		}
		o.Joints = append(o.Joints, jo)
	}
	for _, m := range r.Materials() {
		o.Materials = append(o.Materials, domain.DisplayName(m.Name))
	}
	for _, tr := range r.Transmissions() {
		o.Transmissions = append(o.Transmissions, domain.DisplayName(tr.Name))
	}
	return o
}
