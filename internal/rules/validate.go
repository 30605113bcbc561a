// internal/rules/validate.go
package rules

import (
	"strings"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

/*
 * Rule-tree shape validation.
 *
 * A statement is complete when property and value are non-blank and the
 * operator is one of the six known operators. "Is Empty" and "Is Not Empty"
 * still need a value to count as complete; existing stored ontologies were
 * authored under that rule and must keep validating the same way.
 *
 * A group is valid when it has at least two children, counting complete
 * statements plus sub-groups, and every sub-group is valid in turn. The
 * minimum holds for AND and OR alike: a single condition does not need a
 * wrapping group. Incomplete statements do not count as children but do not
 * fail the group on their own.
 *
 * Everything here is recomputed from scratch on each call.
 */

// Diagnostic messages shared with callers that surface them to users.
const (
	MsgNoRules          = "No rules defined"
	MsgTooFewChildren   = "Each condition (AND/OR) requires at least 2 children"
	MsgIncompleteGroups = "Some groups are incomplete"
	MsgPropertyRequired = "Property field is required"
	MsgOperatorRequired = "Operator field is required"
	MsgValueRequired    = "Value field is required"

	minChildrenPerGroup = 2
)

// ValidateStatement reports whether s is complete.
func ValidateStatement(s types.RuleStatement) bool {
	return !isBlank(s.Property) && ValidOperator(s.Operator) && !isBlank(s.Value)
}

// StatementErrors lists what is missing from s, in field order.
func StatementErrors(s types.RuleStatement) []string {
	var errs []string
	if isBlank(s.Property) {
		errs = append(errs, MsgPropertyRequired)
	}
	if !ValidOperator(s.Operator) {
		errs = append(errs, MsgOperatorRequired)
	}
	if isBlank(s.Value) {
		errs = append(errs, MsgValueRequired)
	}
	return errs
}

// ValidateGroup reports whether g and all nested groups are well-formed.
// A nil group is invalid.
func ValidateGroup(g *types.RuleGroup) bool {
	if g == nil {
		return false
	}
	if childCount(g) < minChildrenPerGroup {
		return false
	}
	for i := range g.Groups {
		if !ValidateGroup(&g.Groups[i]) {
			return false
		}
	}
	return true
}

// ValidateRuleTrees reports whether every root rule-tree is valid.
// No trees at all is valid.
func ValidateRuleTrees(trees []types.RuleGroup) bool {
	for i := range trees {
		if !ValidateGroup(&trees[i]) {
			return false
		}
	}
	return true
}

// ValidateCriteria reports whether the criteria's rule-trees are valid.
// A criteria with no rules yet is not an error.
func ValidateCriteria(c *types.Criteria) bool {
	if c == nil {
		return false
	}
	return ValidateRuleTrees(c.Rules)
}

// RuleValidationMessage returns one user-facing hint for g, or "" when g
// needs no attention. Only g's own children are inspected.
func RuleValidationMessage(g *types.RuleGroup) string {
	if g == nil {
		return MsgNoRules
	}
	if childCount(g) < minChildrenPerGroup {
		return MsgTooFewChildren
	}
	for _, s := range g.Statements {
		if !ValidateStatement(s) {
			return MsgIncompleteGroups
		}
	}
	return ""
}

// childCount is complete statements plus sub-groups.
func childCount(g *types.RuleGroup) int {
	n := len(g.Groups)
	for _, s := range g.Statements {
		if ValidateStatement(s) {
			n++
		}
	}
	return n
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
