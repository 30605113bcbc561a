package tree

import "github.com/AkkiPaul2000/Screening-Ontology/internal/types"

// NewStructure returns the default forest: a single empty root layer.
func NewStructure() types.Structure {
	return types.Structure{
		&types.Layer{ID: types.RootLayerID, Name: types.DefaultRootName, Children: types.Structure{}},
	}
}

// VisitFunc is called for every node. parent is nil for top-level nodes and
// depth starts at 1. Returning false skips the node's children.
type VisitFunc func(node types.TreeNode, parent *types.Layer, depth int) bool

// Walk visits s depth-first, pre-order, children in storage order.
func Walk(s types.Structure, fn VisitFunc) {
	walk(s, nil, 1, fn)
}

func walk(s types.Structure, parent *types.Layer, depth int, fn VisitFunc) {
	for _, node := range s {
		if !fn(node, parent, depth) {
			continue
		}
		if l, ok := node.(*types.Layer); ok {
			walk(l.Children, l, depth+1, fn)
		}
	}
}

// Find returns the first node with id in pre-order and its parent layer.
// Both are nil when id is absent; parent is nil for top-level nodes.
func Find(s types.Structure, id string) (types.TreeNode, *types.Layer) {
	var found types.TreeNode
	var owner *types.Layer
	Walk(s, func(node types.TreeNode, parent *types.Layer, _ int) bool {
		if found != nil {
			return false
		}
		if node.NodeID() == id {
			found, owner = node, parent
			return false
		}
		return true
	})
	return found, owner
}

// Measure returns the node count and the deepest nesting level of s.
func Measure(s types.Structure) (nodes, depth int) {
	Walk(s, func(_ types.TreeNode, _ *types.Layer, d int) bool {
		nodes++
		if d > depth {
			depth = d
		}
		return true
	})
	return nodes, depth
}

// CheckLimits rejects forests larger or deeper than the given bounds.
// A non-positive bound disables that check.
func CheckLimits(s types.Structure, maxNodes, maxDepth int) error {
	nodes, depth := Measure(s)
	if maxNodes > 0 && nodes > maxNodes {
		return types.ErrStructureTooLarge
	}
	if maxDepth > 0 && depth > maxDepth {
		return types.ErrStructureTooDeep
	}
	return nil
}
