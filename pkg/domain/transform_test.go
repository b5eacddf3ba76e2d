package domain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "component %d of %v", i, got)
	}
}

func assertMat3InDelta(t *testing.T, want, got mgl64.Mat3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "entry %d of %v", i, got)
	}
}

func TestTransform_MirrorTwiceIsIdentity(t *testing.T) {
	transforms := []Transform{
		{},
		Translation(0.13, -0.2, 0.25),
		Rotation(math.Pi/2, 0, 0),
		NewTransform(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.1, -0.7, 2.5}),
		NewTransform(mgl64.Vec3{-0.0, 0, -4.5}, mgl64.Vec3{0, math.Pi / 2, 0}),
	}

	for _, tr := range transforms {
		for _, axis := range []MirrorAxis{MirrorX, MirrorY, MirrorZ} {
			assert.Equal(t, tr, tr.Mirror(axis).Mirror(axis), "axis %s on %s", axis, tr)
		}
	}
}

func TestTransform_MirrorSigns(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{0.13, 0.2, 0.3}, mgl64.Vec3{0.4, 0.5, 0.6})

	tests := []struct {
		axis    MirrorAxis
		wantXYZ mgl64.Vec3
		wantRPY mgl64.Vec3
	}{
		{MirrorX, mgl64.Vec3{-0.13, 0.2, 0.3}, mgl64.Vec3{0.4, -0.5, -0.6}},
		{MirrorY, mgl64.Vec3{0.13, -0.2, 0.3}, mgl64.Vec3{-0.4, 0.5, -0.6}},
		{MirrorZ, mgl64.Vec3{0.13, 0.2, -0.3}, mgl64.Vec3{-0.4, -0.5, 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			got := tr.Mirror(tt.axis)
			assertVec3InDelta(t, tt.wantXYZ, got.Translation)
			assertVec3InDelta(t, tt.wantRPY, got.Rotation)
		})
	}
}

func TestTransform_MirrorMatchesMatrixConjugation(t *testing.T) {
	tr := Rotation(0.3, -0.4, 1.1)
	for _, axis := range []MirrorAxis{MirrorX, MirrorY, MirrorZ} {
		m := axis.Matrix()
		want := m.Mul3(tr.RotationMatrix()).Mul3(m)
		got := tr.Mirror(axis).RotationMatrix()
		assertMat3InDelta(t, want, got)
	}
}

func TestTransform_Compose(t *testing.T) {
	t.Run("identity is neutral", func(t *testing.T) {
		tr := NewTransform(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.1, 0.2, 0.3})
		left := Transform{}.Compose(tr)
		right := tr.Compose(Transform{})
		assertVec3InDelta(t, tr.Translation, left.Translation)
		assertVec3InDelta(t, tr.Rotation, left.Rotation)
		assertVec3InDelta(t, tr.Translation, right.Translation)
		assertVec3InDelta(t, tr.Rotation, right.Rotation)
	})

	t.Run("rotated parent moves child offset", func(t *testing.T) {
		parent := Rotation(0, 0, math.Pi/2)
		child := Translation(1, 0, 0)
		got := parent.Compose(child)
		assertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, got.Translation)
		assert.InDelta(t, math.Pi/2, got.Rotation.Z(), 1e-12)
	})

	t.Run("associative", func(t *testing.T) {
		a := NewTransform(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0.2, 0, 0})
		b := NewTransform(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 0.3, 0})
		c := NewTransform(mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, 0.4})
		abC := a.Compose(b).Compose(c)
		aBC := a.Compose(b.Compose(c))
		assertVec3InDelta(t, aBC.Translation, abC.Translation)
		assertMat3InDelta(t, aBC.RotationMatrix(), abC.RotationMatrix())
	})
}

func TestParseMirrorAxis(t *testing.T) {
	axis, err := ParseMirrorAxis("Y")
	assert.NoError(t, err)
	assert.Equal(t, MirrorY, axis)

	_, err = ParseMirrorAxis("w")
	assert.Error(t, err)
}
