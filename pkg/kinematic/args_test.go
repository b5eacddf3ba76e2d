package kinematic

import (
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointBuilderFromArgs(t *testing.T) {
	b, err := JointBuilderFromArgs("wheel", domain.JointContinuous, map[string]any{
		"transform": map[string]any{"xyz": []any{0.1, 0, -0.085}},
		"axis":      []any{0, 1, 0},
		"limit":     map[string]any{"effort": 30, "velocity": 1.5, "lower": -1.0},
		"dynamics":  map[string]any{"damping": 0.7},
		"mimic":     map[string]any{"joint": "other", "multiplier": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "wheel", b.Name())
	assert.Equal(t, domain.Translation(0.1, 0, -0.085), b.Transform())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, *b.spec.axis)
	assert.Equal(t, 30.0, b.spec.limit.Effort)
	assert.Equal(t, -1.0, *b.spec.limit.Lower)
	assert.Nil(t, b.spec.limit.Upper)
	assert.Equal(t, 0.7, *b.spec.dynamics.Damping)
	assert.Equal(t, "other", b.spec.mimic.Joint)
	assert.Equal(t, 2.0, *b.spec.mimic.Multiplier)
}

func TestJointBuilderFromArgs_TransformValue(t *testing.T) {
	b, err := JointBuilderFromArgs("j", domain.JointFixed, map[string]any{
		"transform": domain.Rotation(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Rotation(0, 0, 1), b.Transform())
}

func TestJointBuilderFromArgs_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		wantUnknown string
		wantConvert string
	}{
		{"unknown key", map[string]any{"axle": []any{0, 0, 1}}, "axle", ""},
		{"unknown reported before bad value", map[string]any{"zz": 1, "transform": "nope"}, "zz", ""},
		{"nested unknown key", map[string]any{"limit": map[string]any{"effort": 1, "speed": 2}}, "limit.speed", ""},
		{"transform of wrong type", map[string]any{"transform": "up"}, "", "transform"},
		{"transform with short xyz", map[string]any{"transform": map[string]any{"xyz": []any{1, 2}}}, "", "transform"},
		{"transform with stray key", map[string]any{"transform": map[string]any{"pos": []any{1, 2, 3}}}, "", "transform"},
		{"axis of wrong length", map[string]any{"axis": []any{1, 0}}, "", "axis"},
		{"limit not a mapping", map[string]any{"limit": 4}, "", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := JointBuilderFromArgs("j", domain.JointRevolute, tt.args)
			assert.Nil(t, b)
			if tt.wantUnknown != "" {
				var unknown *domain.UnknownArgumentError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, tt.wantUnknown, unknown.Argument)
				return
			}
			var conv *domain.TypeConversionError
			require.ErrorAs(t, err, &conv)
			assert.Equal(t, tt.wantConvert, conv.Argument)
		})
	}
}
