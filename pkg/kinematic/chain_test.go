package kinematic

import (
	"math"
	"testing"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewLinkBuilder(`[\[right]\]_leg`).
		AddVisual(box().Materialized(white)).
		AttachChild(
			NewFixed(`[\[right]\]_base_joint`, WithTransform(domain.Translation(0, 0, -0.6))),
			NewLinkBuilder(`[\[right]\]_base`).AddVisual(box().Materialized(white)),
		).
		Build()
	require.NoError(t, err)

	_, err = tree.Newest().TryAttachChild(
		NewContinuous(`[\[right]\]_[[front]]_wheel_joint`, WithTransform(domain.Translation(0.133333333333, 0, -0.085))).SetAxis(0, 1, 0),
		NewLinkBuilder(`[\[right]\]_[[front]]_wheel`).
			AddVisual(domain.NewVisual(domain.Cylinder{Radius: 0.035, Length: 0.1}).Transformed(domain.Rotation(math.Pi/2, 0, 0))),
	)
	require.NoError(t, err)
	return tree
}

func TestRebuildBranch_IsACopy(t *testing.T) {
	tree := legTree(t)
	j, ok := tree.Joint(`[\[right]\]_base_joint`)
	require.True(t, ok)

	chain, err := j.RebuildBranch()
	require.NoError(t, err)

	assert.Equal(t, []string{`[\[right]\]_base_joint`, `[\[right]\]_[[front]]_wheel_joint`}, chain.JointNames())
	assert.Equal(t, []string{`[\[right]\]_base`, `[\[right]\]_[[front]]_wheel`}, chain.LinkNames())
	assert.Len(t, tree.LinkNames(), 3)

	// Edits on the copy do not leak back.
	chain.SetTransform(domain.Translation(1, 2, 3))
	assert.Equal(t, domain.Translation(0, 0, -0.6), j.Transform())

	again, err := j.RebuildBranch()
	require.NoError(t, err)
	assert.Equal(t, chain.JointNames(), again.JointNames())
}

func TestRebuildBranch_Stale(t *testing.T) {
	tree := legTree(t)
	j, _ := tree.Joint(`[\[right]\]_base_joint`)

	_, err := tree.YankRoot()
	require.NoError(t, err)

	_, err = j.RebuildBranch()
	var rbErr *domain.RebuildBranchError
	require.ErrorAs(t, err, &rbErr)
	assert.Equal(t, `[\[right]\]_base_joint`, rbErr.Joint)
	assert.ErrorIs(t, err, domain.ErrConsumed)
}

func TestChain_Mirror(t *testing.T) {
	tree := legTree(t)
	j, _ := tree.Joint(`[\[right]\]_[[front]]_wheel_joint`)
	chain, err := j.RebuildBranch()
	require.NoError(t, err)

	mirrored, err := chain.Mirror(domain.MirrorX)
	require.NoError(t, err)
	assert.True(t, chain.Consumed())

	root := mirrored.joints[mirrored.root]
	assert.InDelta(t, -0.133333333333, root.transform.Translation.X(), 1e-12)
	assert.InDelta(t, -0.085, root.transform.Translation.Z(), 1e-12)
	// The rotation axis is a pseudovector: mirroring across X flips the y axis.
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, *root.axis)

	wheel := mirrored.links[root.child]
	// A roll about the mirror axis survives.
	assert.InDelta(t, math.Pi/2, wheel.visuals[0].Transform.Rotation.X(), 1e-12)

	_, err = chain.Mirror(domain.MirrorX)
	assert.ErrorIs(t, err, domain.ErrConsumed)

	back, err := mirrored.Mirror(domain.MirrorX)
	require.NoError(t, err)
	orig, _ := j.RebuildBranch()
	assert.Equal(t, orig.joints[orig.root].transform.Translation, back.joints[back.root].transform.Translation)
	assert.Equal(t, *orig.joints[orig.root].axis, *back.joints[back.root].axis)
}

func TestChain_ChangeGroupID(t *testing.T) {
	tree := legTree(t)
	j, _ := tree.Joint(`[\[right]\]_[[front]]_wheel_joint`)
	chain, err := j.RebuildBranch()
	require.NoError(t, err)

	require.NoError(t, chain.ChangeGroupID("back"))
	assert.Equal(t, []string{`[\[right]\]_[[back]]_wheel_joint`}, chain.JointNames())
	assert.Equal(t, []string{`[\[right]\]_[[back]]_wheel`}, chain.LinkNames())

	tests := []struct {
		id   string
		kind domain.GroupIDErrorKind
	}{
		{"", domain.GroupIDEmpty},
		{"a[[b", domain.GroupIDContainsOpen},
		{"a]]b", domain.GroupIDContainsClose},
	}
	for _, tt := range tests {
		err := chain.ChangeGroupID(tt.id)
		var gErr *domain.GroupIDError
		require.ErrorAs(t, err, &gErr, "id %q", tt.id)
		assert.Equal(t, tt.kind, gErr.Kind)
	}
}

func TestChain_ChangeGroupID_TagsPlainNames(t *testing.T) {
	tree, err := NewLinkBuilder("base").
		AttachChild(NewFixed("arm_joint"), NewLinkBuilder("arm").
			AttachChild(NewRevolute("wrist").SetAxis(0, 0, 1), NewLinkBuilder("hand"))).
		AttachChild(NewFixed("follower"), NewLinkBuilder("shadow")).
		Build()
	require.NoError(t, err)
	j, _ := tree.Joint("arm_joint")
	chain, err := j.RebuildBranch()
	require.NoError(t, err)
	chain.joints[chain.root].mimic = &domain.Mimic{Joint: "wrist"}

	require.NoError(t, chain.ChangeGroupID("left"))

	assert.Equal(t, []string{"arm_joint_[[left]]", "wrist_[[left]]"}, chain.JointNames())
	assert.Equal(t, []string{"arm_[[left]]", "hand_[[left]]"}, chain.LinkNames())
	assert.Equal(t, "wrist_[[left]]", chain.joints[chain.root].mimic.Joint)

	require.NoError(t, tree.Root().AttachJointChain(chain))
	assert.Contains(t, tree.JointNames(), "arm_joint_[[left]]")
}

func TestAttachJointChain_ReportsAllCollisions(t *testing.T) {
	tree := legTree(t)
	j, _ := tree.Joint(`[\[right]\]_base_joint`)
	chain, err := j.RebuildBranch()
	require.NoError(t, err)

	err = tree.Root().AttachJointChain(chain)
	var chainErr *domain.AttachChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, []string{`[\[right]\]_base`, `[\[right]\]_[[front]]_wheel`}, chainErr.Links)
	assert.Equal(t, []string{`[\[right]\]_base_joint`, `[\[right]\]_[[front]]_wheel_joint`}, chainErr.Joints)
	assert.Len(t, tree.LinkNames(), 3)
	assert.False(t, chain.Consumed())
}

func TestTree_ApplyGroupID(t *testing.T) {
	tree := legTree(t)
	require.NoError(t, tree.AddTransmission(domain.Transmission{
		Name:   "[[front]]_trans",
		Joints: []domain.TransmissionJoint{{Name: `[\[right]\]_[[front]]_wheel_joint`}},
	}))

	require.NoError(t, tree.ApplyGroupID())

	assert.Equal(t, []string{"[[right]]_leg", "[[right]]_base", "[[right]]_front_wheel"}, tree.LinkNames())
	assert.Equal(t, []string{"[[right]]_base_joint", "[[right]]_front_wheel_joint"}, tree.JointNames())
	assert.Equal(t, "front_trans", tree.Transmissions()[0].Name)
	assert.Equal(t, []string{"[[right]]_front_wheel_joint"}, tree.Transmissions()[0].JointNames())
	_, ok := tree.Link("[[right]]_base")
	assert.True(t, ok)
}

func TestTree_ApplyGroupID_Collision(t *testing.T) {
	tree, err := NewLinkBuilder("a_x").
		AttachChild(NewFixed("j"), NewLinkBuilder("[[a]]_x")).
		Build()
	require.NoError(t, err)

	err = tree.ApplyGroupID()
	var gErr *domain.GroupIDError
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, domain.GroupIDCollision, gErr.Kind)
	assert.Equal(t, []string{"a_x"}, gErr.Names)
	assert.Equal(t, []string{"a_x", "[[a]]_x"}, tree.LinkNames())
}

func TestYankRoot(t *testing.T) {
	tree := legTree(t)
	require.NoError(t, tree.AddMaterial(domain.NewRGB(0, 0, 0).Named("black")))
	require.NoError(t, tree.AddTransmission(domain.Transmission{
		Name:   "dangling",
		Joints: []domain.TransmissionJoint{{Name: "nowhere"}},
	}))
	require.NoError(t, tree.AddTransmission(domain.Transmission{
		Name:   "wheel",
		Joints: []domain.TransmissionJoint{{Name: `[\[right]\]_[[front]]_wheel_joint`}},
	}))
	names := tree.LinkNames()

	yanked, err := tree.YankRoot()
	require.NoError(t, err)

	assert.True(t, tree.Consumed())
	assert.Equal(t, names, yanked.LinkNames())
	assert.Equal(t, `[\[right]\]_[[front]]_wheel`, yanked.Newest().Name())
	require.Len(t, yanked.Materials(), 1)
	assert.Equal(t, "white", yanked.Materials()[0].Name)
	require.Len(t, yanked.Transmissions(), 1)
	assert.Equal(t, "wheel", yanked.Transmissions()[0].Name)

	_, err = tree.YankRoot()
	assert.ErrorIs(t, err, domain.ErrConsumed)
}

func TestChain_ChangeGroupID_Collision(t *testing.T) {
	tree, err := NewLinkBuilder("base").
		AttachChild(NewFixed("j"), NewLinkBuilder("a").
			AttachChild(NewFixed("j_[[x]]"), NewLinkBuilder("a_[[x]]"))).
		Build()
	require.NoError(t, err)
	j, _ := tree.Joint("j")
	chain, err := j.RebuildBranch()
	require.NoError(t, err)

	err = chain.ChangeGroupID("y")
	var gErr *domain.GroupIDError
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, domain.GroupIDCollision, gErr.Kind)
	assert.Equal(t, []string{"a_[[y]]", "j_[[y]]"}, gErr.Names)
	assert.Equal(t, []string{"a", "a_[[x]]"}, chain.LinkNames())
	assert.Equal(t, []string{"j", "j_[[x]]"}, chain.JointNames())
}

func TestAttachJointChain_RepeatedNamesInChain(t *testing.T) {
	tree, err := NewLinkBuilder("base").
		AttachChild(NewFixed("j1"), NewLinkBuilder("a").
			AttachChild(NewFixed("j2"), NewLinkBuilder("b"))).
		Build()
	require.NoError(t, err)
	j, _ := tree.Joint("j1")
	chain, err := j.RebuildBranch()
	require.NoError(t, err)
	chain.links[1].name = "a"

	other, err := NewLinkBuilder("other").Build()
	require.NoError(t, err)
	err = other.Root().AttachJointChain(chain)
	var chainErr *domain.AttachChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, []string{"a"}, chainErr.Links)
	assert.Empty(t, chainErr.Joints)
	assert.Equal(t, []string{"other"}, other.LinkNames())
	assert.False(t, chain.Consumed())
}

func TestChain_ConsumedAccessors(t *testing.T) {
	tree := legTree(t)
	j, _ := tree.Joint(`[\[right]\]_base_joint`)
	chain, err := j.RebuildBranch()
	require.NoError(t, err)
	_, err = chain.Mirror(domain.MirrorX)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		chain.SetTransform(domain.Translation(1, 0, 0)).SetAxis(0, 0, 1)
	})
	assert.Empty(t, chain.Name())
	assert.Nil(t, chain.JointNames())
	assert.Nil(t, chain.LinkNames())
	assert.Equal(t, domain.Transform{}, chain.Transform())

	_, err = chain.Mirror(domain.MirrorY)
	assert.ErrorIs(t, err, domain.ErrConsumed)
	assert.ErrorIs(t, chain.ChangeGroupID("x"), domain.ErrConsumed)
}

func TestTree_YankJoint(t *testing.T) {
	tree := legTree(t)
	require.NoError(t, tree.AddTransmission(domain.Transmission{
		Name:   "wheel",
		Joints: []domain.TransmissionJoint{{Name: `[\[right]\]_[[front]]_wheel_joint`}},
	}))
	base, _ := tree.Link(`[\[right]\]_base`)
	j, _ := tree.Joint(`[\[right]\]_base_joint`)

	chain, err := tree.YankJoint(`[\[right]\]_base_joint`)
	require.NoError(t, err)

	assert.Equal(t, []string{`[\[right]\]_base_joint`, `[\[right]\]_[[front]]_wheel_joint`}, chain.JointNames())
	assert.Equal(t, []string{`[\[right]\]_leg`}, tree.LinkNames())
	assert.Empty(t, tree.JointNames())
	assert.Empty(t, tree.Root().ChildJoints())
	assert.Equal(t, `[\[right]\]_leg`, tree.Newest().Name())
	assert.Empty(t, tree.Transmissions())
	assert.False(t, base.IsValid())
	assert.False(t, j.IsValid())
	_, ok := tree.Link(`[\[right]\]_base`)
	assert.False(t, ok)

	_, err = base.TryAttachChild(NewFixed("late"), NewLinkBuilder("late"))
	assert.ErrorIs(t, err, domain.ErrConsumed)

	// The names are free again.
	require.NoError(t, tree.Root().AttachJointChain(chain))
	assert.Len(t, tree.LinkNames(), 3)
	assert.Equal(t, `[\[right]\]_[[front]]_wheel`, tree.Newest().Name())
}

func TestTree_YankLink(t *testing.T) {
	tree := legTree(t)
	require.NoError(t, tree.AddTransmission(domain.Transmission{
		Name:   "wheel",
		Joints: []domain.TransmissionJoint{{Name: `[\[right]\]_[[front]]_wheel_joint`}},
	}))

	yanked, err := tree.YankLink(`[\[right]\]_base`)
	require.NoError(t, err)

	assert.Equal(t, []string{`[\[right]\]_base`, `[\[right]\]_[[front]]_wheel`}, yanked.LinkNames())
	assert.Equal(t, []string{`[\[right]\]_[[front]]_wheel_joint`}, yanked.JointNames())
	assert.Equal(t, `[\[right]\]_[[front]]_wheel`, yanked.Newest().Name())
	require.Len(t, yanked.Materials(), 1)
	assert.Equal(t, "white", yanked.Materials()[0].Name)
	_, ok := yanked.Transmission("wheel")
	assert.True(t, ok)

	assert.Equal(t, []string{`[\[right]\]_leg`}, tree.LinkNames())
	assert.Empty(t, tree.JointNames())
	_, ok = tree.Transmission("wheel")
	assert.False(t, ok)

	_, err = tree.Root().TryAttachChild(NewFixed("again"), yanked)
	require.NoError(t, err)
	assert.True(t, yanked.Consumed())
	assert.Equal(t, []string{`[\[right]\]_leg`, `[\[right]\]_base`, `[\[right]\]_[[front]]_wheel`}, tree.LinkNames())
}

func TestTree_YankErrors(t *testing.T) {
	tree := legTree(t)
	var yankErr *domain.YankError

	_, err := tree.YankLink(`[\[right]\]_leg`)
	require.ErrorAs(t, err, &yankErr)
	assert.Equal(t, "link", yankErr.Element)

	_, err = tree.YankJoint("ghost")
	require.ErrorAs(t, err, &yankErr)
	assert.Equal(t, "ghost", yankErr.Name)

	_, err = tree.YankLink("ghost")
	require.ErrorAs(t, err, &yankErr)
	assert.Equal(t, "no such link", yankErr.Reason)

	_, err = tree.YankRoot()
	require.NoError(t, err)
	_, err = tree.YankJoint(`[\[right]\]_base_joint`)
	assert.ErrorIs(t, err, domain.ErrConsumed)
}
