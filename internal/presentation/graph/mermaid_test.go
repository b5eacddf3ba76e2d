package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/kinetree/internal/presentation/graph"
	"github.com/aretw0/kinetree/internal/testutils"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func mass(m float64) *float64 { return &m }

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		overview    kinematic.Overview
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name: "Link Shapes",
			overview: kinematic.Overview{
				Root: "base",
				Links: []kinematic.LinkOverview{
					{Name: "base", Mass: mass(1)},
					{Name: "arm", Mass: mass(1)},
					{Name: "tool_frame"},
				},
			},
			contains: []string{
				`L0(("base"))`,
				`L1["arm"]`,
				`L2[/"tool_frame"/]`,
			},
		},
		{
			name: "Joint Styles",
			overview: kinematic.Overview{
				Root:  "base",
				Links: []kinematic.LinkOverview{{Name: "base"}, {Name: "arm"}, {Name: "tip"}},
				Joints: []kinematic.JointOverview{
					{Name: "shoulder", Type: "revolute", Parent: "base", Child: "arm"},
					{Name: "arm_to_tip", Type: "fixed", Parent: "arm", Child: "tip"},
				},
			},
			contains: []string{
				`L0 -- "shoulder <br/> revolute" --> L1`,
				`L1 -. "arm_to_tip" .-> L2`,
			},
		},
		{
			name: "Label Escaping",
			overview: kinematic.Overview{
				Root:  `say "hi"`,
				Links: []kinematic.LinkOverview{{Name: `say "hi"`}},
			},
			contains: []string{`L0(("say #quot;hi#quot;"))`},
		},
		{
			name: "Overlay",
			overview: kinematic.Overview{
				Root:  "base",
				Links: []kinematic.LinkOverview{{Name: "base"}, {Name: "arm"}},
			},
			overlay: &graph.Overlay{Highlight: []string{"arm", "arm", "missing"}},
			contains: []string{
				"classDef highlight",
				"class L1 highlight;",
			},
			notContains: []string{"class L0 highlight;"},
		},
		{
			name: "No Overlay",
			overview: kinematic.Overview{
				Root:  "base",
				Links: []kinematic.LinkOverview{{Name: "base"}},
			},
			overlay:     &graph.Overlay{},
			notContains: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.overview, tt.overlay)
			assert.True(t, strings.HasPrefix(got, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_WheeledRobot(t *testing.T) {
	o := testutils.WheeledRobot(t).Overview()
	got := graph.GenerateMermaid(o, nil)

	assert.Equal(t, 1+len(o.Links)+len(o.Joints), strings.Count(got, "\n"))
	assert.Contains(t, got, `L0(("base_link"))`)
	assert.Contains(t, got, `-- "left_back_wheel_joint <br/> continuous" -->`)
}
