package domain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestGeometry_String(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
		want string
	}{
		{"box integers", Box{3, 4, 6}, "BoxGeometry(3, 4, 6)"},
		{"box trailing zeros", Box{3, 4, 6.0000}, "BoxGeometry(3, 4, 6)"},
		{"box significant digit", Box{3, 4, 6.0009}, "BoxGeometry(3, 4, 6.0009)"},
		{"cylinder", Cylinder{3.33, 6.0009}, "CylinderGeometry(3.33, 6.0009)"},
		{"cylinder trailing zeros", Cylinder{1.0, 2.50}, "CylinderGeometry(1, 2.5)"},
		{"sphere", Sphere{6.0}, "SphereGeometry(6)"},
		{"sphere fraction", Sphere{0.035}, "SphereGeometry(0.035)"},
		{"mesh default scale", Mesh{Path: "package://a/b.dae"}, `MeshGeometry("package://a/b.dae", (1, 1, 1))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geom.String())
		})
	}
}

func TestGeometry_MirrorKeepsPrimitiveDimensions(t *testing.T) {
	for _, axis := range []MirrorAxis{MirrorX, MirrorY, MirrorZ} {
		assert.Equal(t, Box{1, 2, 3}, Box{1, 2, 3}.Mirrored(axis))
		assert.Equal(t, Cylinder{1, 2}, Cylinder{1, 2}.Mirrored(axis))
		assert.Equal(t, Sphere{1}, Sphere{1}.Mirrored(axis))
	}
}

func TestMesh_MirrorFlipsScale(t *testing.T) {
	scale := mgl64.Vec3{0.1, 0.05, 0.06}
	m := Mesh{Path: "package://urdf_tutorial/meshes/l_finger.dae", Scale: &scale}

	mirrored := m.Mirrored(MirrorY).(Mesh)
	assert.Equal(t, mgl64.Vec3{0.1, -0.05, 0.06}, *mirrored.Scale)
	assert.True(t, GeometryEqual(m, mirrored.Mirrored(MirrorY)))
	assert.False(t, GeometryEqual(m, mirrored))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(math.Copysign(0, -1)))
	assert.Equal(t, "-0.13", FormatFloat(-0.13))
	assert.Equal(t, "0.001", FormatFloat(1e-3))
	assert.Equal(t, "1000", FormatFloat(1e3))
	assert.Equal(t, "1 -2 0.5", FormatVec3(mgl64.Vec3{1, -2, 0.5}))
}
