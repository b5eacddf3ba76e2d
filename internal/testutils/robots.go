package testutils

import (
	"math"
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

var (
	Blue  = domain.NewRGB(0, 0, 0.8).Named("blue")
	Black = domain.NewRGB(0, 0, 0).Named("black")
	White = domain.NewRGB(1, 1, 1).Named("white")
)

func inertial(mass float64) domain.Inertial {
	return domain.Inertial{Mass: mass, Ixx: 1e-3, Iyy: 1e-3, Izz: 1e-3}
}

// WheeledRobot assembles the two legged, four wheeled robot of the URDF
// tutorials: the right leg gets its back wheel by mirroring the front one,
// and the left leg is a mirrored copy of the whole right leg.
func WheeledRobot(t *testing.T) *kinematic.Robot {
	t.Helper()

	model, err := kinematic.NewLinkBuilder("base_link").
		AddVisual(domain.NewVisual(domain.Cylinder{Radius: 0.2, Length: 0.6}).Materialized(Blue)).
		AddCollision(domain.NewCollision(domain.Cylinder{Radius: 0.2, Length: 0.6})).
		SetInertial(inertial(10)).
		Build()
	require.NoError(t, err)

	legVisual := domain.NewVisual(domain.Box{Width: 0.6, Depth: 0.1, Height: 0.2}).
		Transformed(domain.NewTransform(mgl64.Vec3{0, 0, -0.3}, mgl64.Vec3{0, math.Pi / 2, 0})).
		Materialized(White)
	rightLeg, err := kinematic.NewLinkBuilder(`[\[right]\]_leg`).
		AddVisual(legVisual).
		AddCollision(domain.NewCollision(legVisual.Geometry).Transformed(legVisual.Transform)).
		SetInertial(inertial(10)).
		Build()
	require.NoError(t, err)

	_, err = rightLeg.Root().TryAttachChild(
		kinematic.NewFixed(`[\[right]\]_base_joint`, kinematic.WithTransform(domain.Translation(0, 0, -0.6))),
		kinematic.NewLinkBuilder(`[\[right]\]_base`).
			AddVisual(domain.NewVisual(domain.Box{Width: 0.4, Depth: 0.1, Height: 0.1}).Materialized(White)).
			AddCollision(domain.NewCollision(domain.Box{Width: 0.4, Depth: 0.1, Height: 0.1})).
			SetInertial(inertial(10)),
	)
	require.NoError(t, err)

	wheelPose := domain.Rotation(math.Pi/2, 0, 0)
	_, err = rightLeg.Newest().TryAttachChild(
		kinematic.NewContinuous(`[\[right]\]_[[front]]_wheel_joint`,
			kinematic.WithTransform(domain.Translation(0.133333333333, 0, -0.085))).SetAxis(0, 1, 0),
		kinematic.NewLinkBuilder(`[\[right]\]_[[front]]_wheel`).
			AddVisual(domain.NewVisual(domain.Cylinder{Radius: 0.035, Length: 0.1}).Transformed(wheelPose).Materialized(Black)).
			AddCollision(domain.NewCollision(domain.Cylinder{Radius: 0.035, Length: 0.1}).Transformed(wheelPose)).
			SetInertial(inertial(1)),
	)
	require.NoError(t, err)

	front, ok := rightLeg.Joint(`[\[right]\]_[[front]]_wheel_joint`)
	require.True(t, ok)
	branch, err := front.RebuildBranch()
	require.NoError(t, err)
	backWheel, err := branch.Mirror(domain.MirrorX)
	require.NoError(t, err)
	require.NoError(t, backWheel.ChangeGroupID("back"))
	backWheel.SetAxis(0, 1, 0)

	rightBase, ok := rightLeg.Link(`[\[right]\]_base`)
	require.True(t, ok)
	require.NoError(t, rightBase.AttachJointChain(backWheel))

	rightLeg, err = rightLeg.YankRoot()
	require.NoError(t, err)
	require.NoError(t, rightLeg.ApplyGroupID())

	_, err = model.Root().TryAttachChild(
		kinematic.NewFixed("base_to_[[right]]_leg", kinematic.WithTransform(domain.Translation(0, -0.22, 0.25))),
		rightLeg,
	)
	require.NoError(t, err)

	toRight, ok := model.Joint("base_to_[[right]]_leg")
	require.True(t, ok)
	branch, err = toRight.RebuildBranch()
	require.NoError(t, err)
	leftLeg, err := branch.Mirror(domain.MirrorY)
	require.NoError(t, err)
	require.NoError(t, leftLeg.ChangeGroupID("left"))
	require.NoError(t, model.Root().AttachJointChain(leftLeg))

	return model.ToRobot("physics")
}
