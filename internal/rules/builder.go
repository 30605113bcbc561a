// internal/rules/builder.go
package rules

import "github.com/AkkiPaul2000/Screening-Ontology/internal/types"

/*
 * Pure rule-tree edits.
 *
 * Every helper returns a new value and leaves its input untouched: the
 * targeted slice is copied before it is changed, untouched slices are shared.
 * Out-of-range indexes return an unchanged copy rather than an error, so a
 * stale index from a caller is harmless.
 *
 * Criteria.Rules is canonicalised: when the last rule-tree goes away Rules
 * becomes nil, never an empty slice.
 */

// NewStatement returns an empty statement defaulting to Equals.
func NewStatement() types.RuleStatement {
	return types.RuleStatement{ID: types.NewNodeID(), Operator: types.OpEquals}
}

// NewRuleTree returns a root rule-tree: AND with one empty statement.
func NewRuleTree() types.RuleGroup {
	return types.RuleGroup{
		ID:         types.NewNodeID(),
		Condition:  types.ConditionAnd,
		Statements: []types.RuleStatement{NewStatement()},
		Groups:     []types.RuleGroup{},
	}
}

// NewSubGroup returns an empty AND group.
func NewSubGroup() types.RuleGroup {
	return types.RuleGroup{
		ID:         types.NewNodeID(),
		Condition:  types.ConditionAnd,
		Statements: []types.RuleStatement{},
		Groups:     []types.RuleGroup{},
	}
}

// AddRuleTree appends a fresh rule-tree to c.
func AddRuleTree(c types.Criteria) types.Criteria {
	c.Rules = appendCopy(c.Rules, NewRuleTree())
	return c
}

// UpdateRuleTree replaces the rule-tree at i. A tree without statements is
// removed instead of stored.
func UpdateRuleTree(c types.Criteria, i int, g types.RuleGroup) types.Criteria {
	if i < 0 || i >= len(c.Rules) {
		return c
	}
	if len(g.Statements) == 0 {
		return DeleteRuleTree(c, i)
	}
	c.Rules = replaceAt(c.Rules, i, g)
	return c
}

// DeleteRuleTree removes the rule-tree at i.
func DeleteRuleTree(c types.Criteria, i int) types.Criteria {
	if i < 0 || i >= len(c.Rules) {
		return c
	}
	rules := removeAt(c.Rules, i)
	if len(rules) == 0 {
		rules = nil
	}
	c.Rules = rules
	return c
}

// SetCondition switches g between AND and OR. Unknown conditions are ignored.
func SetCondition(g types.RuleGroup, cond types.Condition) types.RuleGroup {
	if ValidCondition(cond) {
		g.Condition = cond
	}
	return g
}

// AddStatement appends an empty statement to g.
func AddStatement(g types.RuleGroup) types.RuleGroup {
	g.Statements = appendCopy(g.Statements, NewStatement())
	return g
}

// UpdateStatement replaces the statement at i.
func UpdateStatement(g types.RuleGroup, i int, s types.RuleStatement) types.RuleGroup {
	if i < 0 || i >= len(g.Statements) {
		return g
	}
	g.Statements = replaceAt(g.Statements, i, s)
	return g
}

// DeleteStatement removes the statement at i.
func DeleteStatement(g types.RuleGroup, i int) types.RuleGroup {
	if i < 0 || i >= len(g.Statements) {
		return g
	}
	g.Statements = removeAt(g.Statements, i)
	return g
}

// AddSubGroup appends an empty nested group to g.
func AddSubGroup(g types.RuleGroup) types.RuleGroup {
	g.Groups = appendCopy(g.Groups, NewSubGroup())
	return g
}

// UpdateSubGroup replaces the nested group at i.
func UpdateSubGroup(g types.RuleGroup, i int, sub types.RuleGroup) types.RuleGroup {
	if i < 0 || i >= len(g.Groups) {
		return g
	}
	g.Groups = replaceAt(g.Groups, i, sub)
	return g
}

// DeleteSubGroup removes the nested group at i.
func DeleteSubGroup(g types.RuleGroup, i int) types.RuleGroup {
	if i < 0 || i >= len(g.Groups) {
		return g
	}
	g.Groups = removeAt(g.Groups, i)
	return g
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func replaceAt[T any](in []T, i int, v T) []T {
	out := make([]T, len(in))
	copy(out, in)
	out[i] = v
	return out
}

func removeAt[T any](in []T, i int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:i]...)
	return append(out, in[i+1:]...)
}
