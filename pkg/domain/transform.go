package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid pose: a translation followed by a roll/pitch/yaw rotation.
// The zero value is the identity.
type Transform struct {
	Translation mgl64.Vec3 `json:"xyz" yaml:"xyz"`
	Rotation    mgl64.Vec3 `json:"rpy" yaml:"rpy"`
}

// NewTransform creates a transform from a translation and a roll/pitch/yaw triple.
func NewTransform(xyz, rpy mgl64.Vec3) Transform {
	return Transform{Translation: xyz, Rotation: rpy}
}

// Translation creates a pure translation.
func Translation(x, y, z float64) Transform {
	return Transform{Translation: mgl64.Vec3{x, y, z}}
}

// Rotation creates a pure rotation.
func Rotation(roll, pitch, yaw float64) Transform {
	return Transform{Rotation: mgl64.Vec3{roll, pitch, yaw}}
}

// IsIdentity reports whether both translation and rotation are zero.
func (t Transform) IsIdentity() bool {
	return t.Translation == (mgl64.Vec3{}) && t.Rotation == (mgl64.Vec3{})
}

// RotationMatrix returns Rz(yaw)·Ry(pitch)·Rx(roll).
func (t Transform) RotationMatrix() mgl64.Mat3 {
	return mgl64.Rotate3DZ(t.Rotation.Z()).
		Mul3(mgl64.Rotate3DY(t.Rotation.Y())).
		Mul3(mgl64.Rotate3DX(t.Rotation.X()))
}

// Compose chains child after t, both expressed as parent-to-child offsets.
func (t Transform) Compose(child Transform) Transform {
	r := t.RotationMatrix()
	return Transform{
		Translation: t.Translation.Add(r.Mul3x1(child.Translation)),
		Rotation:    rpyFromMatrix(r.Mul3(child.RotationMatrix())),
	}
}

// Mirror reflects the transform across the plane perpendicular to axis.
// This is the conjugation M·T·M with M the reflection matrix: the translation
// along axis and the two rotations that flip handedness change sign, while the
// rotation about axis itself is kept.
func (t Transform) Mirror(axis MirrorAxis) Transform {
	m := axis.Matrix()
	return Transform{
		Translation: m.Mul3x1(t.Translation),
		Rotation:    m.Mul3x1(t.Rotation).Mul(-1),
	}
}

func (t Transform) String() string {
	var sb strings.Builder
	sb.WriteString("Transform(")
	fmt.Fprintf(&sb, "xyz=(%s)", strings.ReplaceAll(FormatVec3(t.Translation), " ", ", "))
	fmt.Fprintf(&sb, ", rpy=(%s)", strings.ReplaceAll(FormatVec3(t.Rotation), " ", ", "))
	sb.WriteString(")")
	return sb.String()
}

const gimbalEpsilon = 1e-12

func rpyFromMatrix(r mgl64.Mat3) mgl64.Vec3 {
	sp := -r.At(2, 0)
	if sp >= 1-gimbalEpsilon || sp <= -1+gimbalEpsilon {
		pitch := math.Copysign(math.Pi/2, sp)
		return mgl64.Vec3{0, pitch, math.Atan2(-r.At(0, 1), r.At(1, 1))}
	}
	return mgl64.Vec3{
		math.Atan2(r.At(2, 1), r.At(2, 2)),
		math.Asin(sp),
		math.Atan2(r.At(1, 0), r.At(0, 0)),
	}
}

// MirrorAxis selects the plane a branch is reflected across.
type MirrorAxis int

const (
	MirrorX MirrorAxis = iota
	MirrorY
	MirrorZ
)

// Matrix returns the diagonal reflection matrix of the axis.
func (a MirrorAxis) Matrix() mgl64.Mat3 {
	switch a {
	case MirrorY:
		return mgl64.Diag3(mgl64.Vec3{1, -1, 1})
	case MirrorZ:
		return mgl64.Diag3(mgl64.Vec3{1, 1, -1})
	default:
		return mgl64.Diag3(mgl64.Vec3{-1, 1, 1})
	}
}

func (a MirrorAxis) String() string {
	switch a {
	case MirrorX:
		return "X"
	case MirrorY:
		return "Y"
	case MirrorZ:
		return "Z"
	}
	return fmt.Sprintf("MirrorAxis(%d)", int(a))
}

// ParseMirrorAxis accepts "x", "y" or "z" in any case.
func ParseMirrorAxis(s string) (MirrorAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return MirrorX, nil
	case "y":
		return MirrorY, nil
	case "z":
		return MirrorZ, nil
	}
	return 0, fmt.Errorf("unknown mirror axis %q", s)
}
