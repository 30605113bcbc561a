// internal/rules/operators.go
package rules

import (
	"fmt"
	"strings"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/tree"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

/*
 * Statement operators and group conditions.
 *
 * Six operators are accepted, spelled exactly as the record store spells
 * them. Parsing is case-insensitive and ignores surrounding whitespace so
 * hand-written YAML documents ("greater than") still load. Canonicalize
 * rewrites a decoded structure to the canonical spelling, which is what gets
 * stored.
 *
 * Operators are shape only. Nothing in this package compares a statement
 * value against candidate data.
 */

var operators = []types.Operator{
	types.OpGreaterThan,
	types.OpLessThan,
	types.OpEquals,
	types.OpContains,
	types.OpIsEmpty,
	types.OpIsNotEmpty,
}

// Operators returns the accepted operators in display order.
func Operators() []types.Operator {
	out := make([]types.Operator, len(operators))
	copy(out, operators)
	return out
}

// ValidOperator reports whether op is one of the six defined operators.
func ValidOperator(op types.Operator) bool { return op.Valid() }

// ParseOperator maps a user-supplied spelling onto its canonical operator.
func ParseOperator(s string) (types.Operator, error) {
	needle := strings.TrimSpace(s)
	for _, known := range operators {
		if strings.EqualFold(needle, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown operator %q", s)
}

// ValidCondition reports whether c is AND or OR.
func ValidCondition(c types.Condition) bool { return c.Valid() }

// ParseCondition maps "and"/"or" in any case onto its canonical condition.
func ParseCondition(s string) (types.Condition, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(types.ConditionAnd):
		return types.ConditionAnd, nil
	case string(types.ConditionOr):
		return types.ConditionOr, nil
	default:
		return "", fmt.Errorf("unknown condition %q", s)
	}
}

// Canonicalize rewrites every operator and condition spelling in s to its
// canonical form. Unrecognised spellings are kept so the validator still
// reports them. s is modified in place; call it on freshly decoded data only.
func Canonicalize(s types.Structure) {
	tree.Walk(s, func(node types.TreeNode, _ *types.Layer, _ int) bool {
		if c, ok := node.(*types.Criteria); ok {
			for i := range c.Rules {
				canonicalizeGroup(&c.Rules[i])
			}
		}
		return true
	})
}

func canonicalizeGroup(g *types.RuleGroup) {
	if c, err := ParseCondition(string(g.Condition)); err == nil {
		g.Condition = c
	}
	for i := range g.Statements {
		if op, err := ParseOperator(string(g.Statements[i].Operator)); err == nil {
			g.Statements[i].Operator = op
		}
	}
	for i := range g.Groups {
		canonicalizeGroup(&g.Groups[i])
	}
}
