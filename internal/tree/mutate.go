package tree

import "github.com/AkkiPaul2000/Screening-Ontology/internal/types"

// AddLayer appends an auto-named layer under parentID and returns it.
//
// An empty parentID adds the root layer, which is only allowed while s is
// empty. A parent that is missing or not a layer leaves s untouched and
// returns a nil layer.
func AddLayer(s types.Structure, parentID string) (types.Structure, *types.Layer) {
	if parentID == "" {
		if len(s) > 0 {
			return s, nil
		}
		root := &types.Layer{
			ID:       types.RootLayerID,
			Name:     NextName(s, types.NodeTypeLayer, LayerBaseName),
			Children: types.Structure{},
		}
		return types.Structure{root}, root
	}

	parent, ok := findLayer(s, parentID)
	if !ok {
		return s, nil
	}
	child := &types.Layer{
		ID:       types.NewNodeID(),
		Name:     NextName(parent.Children, types.NodeTypeLayer, LayerBaseName),
		Children: types.Structure{},
	}
	return appendChild(s, parentID, child), child
}

// AddCriteria appends an auto-named criteria without rules under parentID.
// Only layers accept criteria; anything else is a no-op with a nil result.
func AddCriteria(s types.Structure, parentID string) (types.Structure, *types.Criteria) {
	parent, ok := findLayer(s, parentID)
	if !ok {
		return s, nil
	}
	child := &types.Criteria{
		ID:   types.NewNodeID(),
		Name: NextName(parent.Children, types.NodeTypeCriteria, CriteriaBaseName),
	}
	return appendChild(s, parentID, child), child
}

// RenameNode sets the name of every node carrying id. Names need not be
// unique among siblings.
func RenameNode(s types.Structure, id, name string) types.Structure {
	out, _ := rebuild(s, id, func(node types.TreeNode) types.TreeNode {
		switch n := node.(type) {
		case *types.Layer:
			cp := *n
			cp.Name = name
			return &cp
		case *types.Criteria:
			cp := *n
			cp.Name = name
			return &cp
		}
		return node
	})
	return out
}

// DeleteNode removes the node with id together with its subtree.
//
// The returned selection is the (rebuilt) parent layer, or the root layer
// when the node sat at the top level. Deleting the root layer fails with
// types.ErrRootNotDeletable. An unknown id returns s, a nil selection and no
// error.
func DeleteNode(s types.Structure, id string) (types.Structure, types.TreeNode, error) {
	if id == types.RootLayerID {
		return s, nil, types.ErrRootNotDeletable
	}

	node, parent := Find(s, id)
	if node == nil {
		return s, nil, nil
	}

	out, _ := rebuild(s, id, func(types.TreeNode) types.TreeNode { return nil })

	selectID := types.RootLayerID
	if parent != nil {
		selectID = parent.ID
	}
	selection, _ := Find(out, selectID)
	return out, selection, nil
}

// UpdateCriteria replaces the criteria with id by fn applied to a copy of it.
// Pair it with the rule-tree helpers in internal/rules. Layers are left alone.
func UpdateCriteria(s types.Structure, id string, fn func(types.Criteria) types.Criteria) types.Structure {
	out, _ := rebuild(s, id, func(node types.TreeNode) types.TreeNode {
		c, ok := node.(*types.Criteria)
		if !ok {
			return node
		}
		next := fn(*c)
		return &next
	})
	return out
}

func findLayer(s types.Structure, id string) (*types.Layer, bool) {
	node, _ := Find(s, id)
	l, ok := node.(*types.Layer)
	return l, ok
}

func appendChild(s types.Structure, parentID string, child types.TreeNode) types.Structure {
	out, _ := rebuild(s, parentID, func(node types.TreeNode) types.TreeNode {
		l, ok := node.(*types.Layer)
		if !ok {
			return node
		}
		cp := *l
		cp.Children = make(types.Structure, len(l.Children), len(l.Children)+1)
		copy(cp.Children, l.Children)
		cp.Children = append(cp.Children, child)
		return &cp
	})
	return out
}

// rebuild returns s with every node carrying id replaced by fn(node); a nil
// result removes the node. Layers on the path to a match are copied, all
// other subtrees are shared. The second result reports whether id matched;
// when it did not, s itself is returned.
func rebuild(s types.Structure, id string, fn func(types.TreeNode) types.TreeNode) (types.Structure, bool) {
	hit := false
	out := make(types.Structure, 0, len(s))
	for _, node := range s {
		if node.NodeID() == id {
			hit = true
			if next := fn(node); next != nil {
				out = append(out, next)
			}
			continue
		}
		if l, ok := node.(*types.Layer); ok {
			if children, found := rebuild(l.Children, id, fn); found {
				hit = true
				cp := *l
				cp.Children = children
				out = append(out, &cp)
				continue
			}
		}
		out = append(out, node)
	}
	if !hit {
		return s, false
	}
	return out, true
}
