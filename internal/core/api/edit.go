package api

import (
	"fmt"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/tree"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Edit operations accepted by the Edit RPC.
const (
	OpAddLayer       = "addLayer"
	OpAddCriteria    = "addCriteria"
	OpRenameNode     = "renameNode"
	OpDeleteNode     = "deleteNode"
	OpAddRuleTree    = "addRuleTree"
	OpUpdateRuleTree = "updateRuleTree"
	OpDeleteRuleTree = "deleteRuleTree"
)

// EditRequest is one mutation applied to a submitted structure.
// NodeID is the parent for add operations and the target otherwise.
type EditRequest struct {
	Structure types.Structure  `json:"structure"`
	Op        string           `json:"op"`
	NodeID    string           `json:"nodeId,omitempty"`
	Name      string           `json:"name,omitempty"`
	Index     int              `json:"index,omitempty"`
	Group     *types.RuleGroup `json:"group,omitempty"`
}

// EditResponse carries the new structure, the node the caller should select
// next and a fresh validation of the result. SelectionID is "" when the
// target id did not name a node the op applies to.
type EditResponse struct {
	Structure   types.Structure        `json:"structure"`
	SelectionID string                 `json:"selectionId"`
	Validation  rules.ValidationResult `json:"validation"`
}

// applyEdit runs the tree or rule-tree helper named by req.Op. Refused
// edits return the structure unchanged with an empty selection; only root
// deletion and malformed requests are errors.
func applyEdit(req EditRequest) (types.Structure, string, error) {
	s := req.Structure

	switch req.Op {
	case OpAddLayer:
		out, l := tree.AddLayer(s, req.NodeID)
		if l == nil {
			return s, "", nil
		}
		return out, l.ID, nil

	case OpAddCriteria:
		out, c := tree.AddCriteria(s, req.NodeID)
		if c == nil {
			return s, "", nil
		}
		return out, c.ID, nil

	case OpRenameNode:
		if node, _ := tree.Find(s, req.NodeID); node == nil {
			return s, "", nil
		}
		return tree.RenameNode(s, req.NodeID, req.Name), req.NodeID, nil

	case OpDeleteNode:
		out, sel, err := tree.DeleteNode(s, req.NodeID)
		if err != nil {
			return s, "", err
		}
		if sel == nil {
			return out, "", nil
		}
		return out, sel.NodeID(), nil

	case OpAddRuleTree:
		if !isCriteria(s, req.NodeID) {
			return s, "", nil
		}
		return tree.UpdateCriteria(s, req.NodeID, rules.AddRuleTree), req.NodeID, nil

	case OpUpdateRuleTree:
		if req.Group == nil {
			return s, "", fmt.Errorf("%w: %s needs a group", errBadRequest, req.Op)
		}
		if !isCriteria(s, req.NodeID) {
			return s, "", nil
		}
		g := *req.Group
		return tree.UpdateCriteria(s, req.NodeID, func(c types.Criteria) types.Criteria {
			return rules.UpdateRuleTree(c, req.Index, g)
		}), req.NodeID, nil

	case OpDeleteRuleTree:
		if !isCriteria(s, req.NodeID) {
			return s, "", nil
		}
		return tree.UpdateCriteria(s, req.NodeID, func(c types.Criteria) types.Criteria {
			return rules.DeleteRuleTree(c, req.Index)
		}), req.NodeID, nil

	default:
		return s, "", fmt.Errorf("%w: unknown edit op %q", errBadRequest, req.Op)
	}
}

func isCriteria(s types.Structure, id string) bool {
	node, _ := tree.Find(s, id)
	_, ok := node.(*types.Criteria)
	return ok
}
