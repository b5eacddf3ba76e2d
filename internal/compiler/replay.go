package compiler

import (
	"fmt"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
)

// replay runs the operations against tree. A rebuild or yank_joint starts a
// working chain that the following steps edit until attach_chain grafts it.
func (c *Compiler) replay(tree *kinematic.Tree, ops []dto.Operation) (*kinematic.Tree, error) {
	var chain *kinematic.Chain
	for i, op := range ops {
		kind := op.Kind()
		c.logger.Debug("replaying operation", "index", i, "op", kind)

		if chain == nil && kind != "rebuild" && kind != "yank_joint" && kind != "apply_group_id" && kind != "yank" {
			return nil, fmt.Errorf("operations[%d] %s: no working chain, start with rebuild", i, kind)
		}

		var err error
		switch kind {
		case "rebuild":
			j, ok := tree.Joint(op.Rebuild)
			if !ok {
				return nil, fmt.Errorf("operations[%d] rebuild: unknown joint %q", i, op.Rebuild)
			}
			chain, err = j.RebuildBranch()
		case "yank_joint":
			if chain != nil {
				return nil, fmt.Errorf("operations[%d] yank_joint: working chain %q was never attached", i, chain.Name())
			}
			chain, err = tree.YankJoint(op.YankJoint)
		case "mirror":
			var axis domain.MirrorAxis
			if axis, err = domain.ParseMirrorAxis(op.Mirror); err == nil {
				chain, err = chain.Mirror(axis)
			}
		case "group_id":
			err = chain.ChangeGroupID(op.GroupID)
		case "axis":
			v, verr := vec3("axis", op.Axis)
			if verr != nil {
				err = verr
				break
			}
			chain.SetAxis(v[0], v[1], v[2])
		case "transform":
			t, terr := transform(op.Transform)
			if terr != nil {
				err = terr
				break
			}
			chain.SetTransform(t)
		case "attach_chain":
			l, ok := tree.Link(op.AttachChain)
			if !ok {
				return nil, fmt.Errorf("operations[%d] attach_chain: unknown link %q", i, op.AttachChain)
			}
			if err = l.AttachJointChain(chain); err == nil {
				chain = nil
			}
		case "apply_group_id":
			err = tree.ApplyGroupID()
		case "yank":
			tree, err = tree.YankRoot()
		}
		if err != nil {
			return nil, fmt.Errorf("operations[%d] %s: %w", i, kind, err)
		}
	}

	if chain != nil {
		c.logger.Warn("working chain was never attached", "chain", chain.Name())
	}
	return tree, nil
}
