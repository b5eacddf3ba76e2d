package compiler_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/aretw0/kinetree/internal/compiler"
	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/internal/testutils"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/urdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_MatchesHandBuiltRobot(t *testing.T) {
	data, err := os.ReadFile("testdata/physics.yaml")
	require.NoError(t, err)

	robot, err := compiler.New().Compile(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "physics", robot.Name())

	got, err := urdf.ToURDFString(robot, urdf.DefaultIndent)
	require.NoError(t, err)
	want, err := urdf.ToURDFString(testutils.WheeledRobot(t), urdf.DefaultIndent)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCompile_JointsInAnyOrder(t *testing.T) {
	src := `
robot: r
links: [{name: a}, {name: b}, {name: c}]
joints:
  - {name: b_to_c, parent: b, child: c}
  - {name: a_to_b, type: revolute, parent: a, child: b, axis: [0, 0, 1]}
`
	robot, err := compiler.New().Compile(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, robot.LinkNames())
	assert.Equal(t, []string{"a_to_b", "b_to_c"}, robot.JointNames())
	j, _ := robot.Joint("a_to_b")
	assert.Equal(t, domain.JointRevolute, j.Type())
}

func TestCompile_YankJointMovesBranch(t *testing.T) {
	src := `
robot: r
links: [{name: a}, {name: b}, {name: c}]
joints:
  - {name: a_to_b, parent: a, child: b}
  - {name: b_to_c, parent: b, child: c}
operations:
  - yank_joint: b_to_c
  - attach_chain: a
`
	robot, err := compiler.New().Compile(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, robot.LinkNames())
	j, ok := robot.Joint("b_to_c")
	require.True(t, ok)
	assert.Equal(t, "a", j.Parent().Name())
	b, _ := robot.Link("b")
	assert.Empty(t, b.ChildJoints())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown top level key",
			src:  "robot: r\nlinks: [{name: a}]\nwheels: 4\n",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "wheels")
			},
		},
		{
			name: "validation problems are aggregated",
			src: `
links:
  - name: a
    visuals:
      - geometry: {box: [1, 2]}
        material: chrome
joints:
  - {name: j, parent: a}
`,
			check: func(t *testing.T, err error) {
				var agg *domain.AggregateError
				require.ErrorAs(t, err, &agg)
				assert.Len(t, agg.Errors, 3)
			},
		},
		{
			name: "unknown joint argument",
			src:  "links: [{name: a}, {name: b}]\njoints: [{name: j, parent: a, child: b, axle: [0, 0, 1]}]\n",
			check: func(t *testing.T, err error) {
				var unknown *domain.UnknownArgumentError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, "axle", unknown.Argument)
			},
		},
		{
			name: "badly shaped transform",
			src:  "links: [{name: a}, {name: b}]\njoints: [{name: j, parent: a, child: b, transform: up}]\n",
			check: func(t *testing.T, err error) {
				var conv *domain.TypeConversionError
				require.ErrorAs(t, err, &conv)
				assert.Equal(t, "transform", conv.Argument)
			},
		},
		{
			name: "two roots",
			src:  "links: [{name: a}, {name: b}]\n",
			check: func(t *testing.T, err error) {
				var buildErr *domain.BuildError
				require.ErrorAs(t, err, &buildErr)
				assert.Contains(t, buildErr.Reason, "a, b")
			},
		},
		{
			name: "parent outside the tree",
			src:  "links: [{name: a}, {name: b}, {name: c}]\njoints: [{name: j1, parent: a, child: b}, {name: j2, parent: ghost, child: c}]\n",
			check: func(t *testing.T, err error) {
				var buildErr *domain.BuildError
				require.ErrorAs(t, err, &buildErr)
				assert.Equal(t, "j2", buildErr.Name)
			},
		},
		{
			name: "step without a chain",
			src:  "links: [{name: a}]\noperations: [{mirror: X}]\n",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "start with rebuild")
			},
		},
		{
			name: "yank of an unknown joint",
			src:  "links: [{name: a}]\noperations: [{yank_joint: ghost}]\n",
			check: func(t *testing.T, err error) {
				var yankErr *domain.YankError
				require.ErrorAs(t, err, &yankErr)
				assert.Equal(t, "ghost", yankErr.Name)
			},
		},
		{
			name: "reattaching a copy collides",
			src:  "links: [{name: a}, {name: b}]\njoints: [{name: j, parent: a, child: b}]\noperations: [{rebuild: j}, {attach_chain: a}]\n",
			check: func(t *testing.T, err error) {
				var chainErr *domain.AttachChainError
				require.ErrorAs(t, err, &chainErr)
				assert.Equal(t, []string{"b"}, chainErr.Links)
				assert.Equal(t, []string{"j"}, chainErr.Joints)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.New().Compile(context.Background(), []byte(tt.src))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

type partMap map[string]string

func (p partMap) ResolvePart(_ context.Context, id string) (*dto.Description, error) {
	src, ok := p[id]
	if !ok {
		return nil, fmt.Errorf("no part %q", id)
	}
	return dto.Parse([]byte(src))
}

func TestCompile_Parts(t *testing.T) {
	parts := partMap{
		"gripper": `
materials:
  - {name: steel, color: [0.5, 0.5, 0.5, 1]}
  - {name: unused, texture: package://x.png}
links:
  - name: palm
    visuals: [{geometry: {sphere: {radius: 0.05}}, material: steel}]
  - name: finger
joints:
  - {name: palm_to_finger, type: prismatic, parent: palm, child: finger, axis: [1, 0, 0]}
transmissions:
  - name: finger_trans
    type: SimpleTransmission
    joints: [{name: palm_to_finger, hardware_interfaces: [EffortJointInterface]}]
`,
		"loop": "links: [{name: l}]\njoints: [{name: again, parent: l, part: loop}]\n",
	}
	c := compiler.New(compiler.WithParts(parts), compiler.WithLogger(testutils.Logger(t)))

	robot, err := c.Compile(context.Background(), []byte(`
robot: arm
links: [{name: base}]
joints: [{name: base_to_gripper, parent: base, part: gripper, transform: {xyz: [0, 0, 1]}}]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "palm", "finger"}, robot.LinkNames())
	assert.Equal(t, "finger", robot.Newest().Name())
	require.Len(t, robot.Materials(), 1, "unused part materials are stripped")
	assert.Equal(t, "steel", robot.Materials()[0].Name)
	require.Len(t, robot.Transmissions(), 1)

	_, err = c.Compile(context.Background(), []byte("links: [{name: base}]\njoints: [{name: j, parent: base, part: loop}]\n"))
	assert.ErrorContains(t, err, "includes itself")

	_, err = compiler.New().Compile(context.Background(), []byte("links: [{name: base}]\njoints: [{name: j, parent: base, part: gripper}]\n"))
	assert.ErrorContains(t, err, "no part library")
}
