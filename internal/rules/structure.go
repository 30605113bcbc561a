// internal/rules/structure.go
package rules

import (
	"fmt"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

/*
 * Whole-forest validation.
 *
 * Walks the forest depth-first, pre-order: a node is checked before its
 * children and children are visited in storage order, so the error list
 * reads top to bottom the way the tree is displayed.
 *
 * Per node:
 *   - blank name -> "Name for <type> cannot be empty." and the node id
 *   - criteria whose rule-trees fail ValidateGroup ->
 *     "Rules for criteria "<name>" are invalid." and the criteria id
 *
 * Only the owning criteria id is recorded for a bad rule-tree; ids of the
 * statements and groups inside are not. InvalidNodeIDs behaves as a set
 * (first-insertion order, no duplicates).
 */

// ValidationResult aggregates the problems found in a structure.
type ValidationResult struct {
	IsValid        bool     `json:"isValid"`
	Errors         []string `json:"errors"`
	InvalidNodeIDs []string `json:"invalidNodeIds"`

	invalid map[string]struct{}
}

// Invalid reports whether id was flagged during validation.
func (r *ValidationResult) Invalid(id string) bool {
	if r.invalid == nil {
		// Decoded results carry only the list.
		for _, got := range r.InvalidNodeIDs {
			if got == id {
				return true
			}
		}
		return false
	}
	_, ok := r.invalid[id]
	return ok
}

func (r *ValidationResult) flag(id, msg string) {
	r.Errors = append(r.Errors, msg)
	if _, seen := r.invalid[id]; seen {
		return
	}
	r.invalid[id] = struct{}{}
	r.InvalidNodeIDs = append(r.InvalidNodeIDs, id)
}

// ValidateStructure validates every node of the forest.
func ValidateStructure(s types.Structure) ValidationResult {
	r := ValidationResult{
		Errors:         []string{},
		InvalidNodeIDs: []string{},
		invalid:        make(map[string]struct{}),
	}
	for _, node := range s {
		validateNode(node, &r)
	}
	r.IsValid = len(r.Errors) == 0
	return r
}

func validateNode(node types.TreeNode, r *ValidationResult) {
	if isBlank(node.NodeName()) {
		r.flag(node.NodeID(), fmt.Sprintf("Name for %s cannot be empty.", node.NodeType()))
	}

	switch n := node.(type) {
	case *types.Criteria:
		if len(n.Rules) > 0 && !ValidateRuleTrees(n.Rules) {
			r.flag(n.ID, fmt.Sprintf("Rules for criteria \"%s\" are invalid.", n.Name))
		}
	case *types.Layer:
		for _, child := range n.Children {
			validateNode(child, r)
		}
	}
}
