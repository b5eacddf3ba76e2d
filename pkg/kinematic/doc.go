/*
Package kinematic builds and edits kinematic trees of links and joints.

Links and joints are staged with LinkBuilder and JointBuilder, committed into
a Tree, and rearranged with branch operations: a branch is copied out as a
Chain with Joint.RebuildBranch, reflected with Chain.Mirror, renamed with
Chain.ChangeGroupID and grafted back with Link.AttachJointChain.

	base := kinematic.NewLinkBuilder("base_link").
		AddVisual(domain.NewVisual(domain.Cylinder{Radius: 0.2, Length: 0.6}))
	tree, err := base.Build()
	if err != nil {
		return err
	}

	leg, err := tree.Root().TryAttachChild(
		kinematic.NewFixed("base_to_[[right]]_leg").SetTransform(domain.Translation(0, -0.22, 0.25)),
		kinematic.NewLinkBuilder("[[right]]_leg"),
	)

# Storage

Every node lives in an arena owned by its Tree (or Chain) and is addressed by
index; parent and child edges and the name maps are index relations. Link and
Joint are lightweight handles into that arena. Once a tree is consumed, by
Tree.YankRoot or by being attached below another tree, its handles are stale.
Tree.YankJoint and Tree.YankLink cut a branch out in place: ids of the rest of
the tree do not move, and only handles into the cut branch go stale.

A Tree is owned by a single caller. Mutations are not synchronized; guard a
shared tree with one lock.
*/
package kinematic
