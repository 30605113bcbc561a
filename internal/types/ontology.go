// internal/types/ontology.go
package types

import "time"

/*
 * Rule-tree and ontology record types.
 *
 * Key types:
 *   - RuleStatement: one "property OPERATOR value" condition
 *   - RuleGroup: AND/OR group holding statements and nested groups
 *   - Criteria: leaf tree node owning zero or more root rule-trees
 *   - Layer: container tree node (see nodes.go for the TreeNode union)
 *   - Ontology: keyed record persisted by internal/core/db
 *
 * Statements and groups are ordered in storage (insertion order is display
 * order) but unordered in meaning.
 */

// Operator is the comparison applied by a rule statement.
// Values are the exact strings stored in ontology records.
type Operator string

const (
	OpGreaterThan Operator = "Greater Than"
	OpLessThan    Operator = "Less Than"
	OpEquals      Operator = "Equals"
	OpContains    Operator = "Contains"
	OpIsEmpty     Operator = "Is Empty"
	OpIsNotEmpty  Operator = "Is Not Empty"
)

// Valid reports whether o is one of the six defined operators.
func (o Operator) Valid() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpEquals, OpContains, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// Condition joins the children of a RuleGroup.
type Condition string

const (
	ConditionAnd Condition = "AND"
	ConditionOr  Condition = "OR"
)

// Valid reports whether c is AND or OR.
func (c Condition) Valid() bool { return c == ConditionAnd || c == ConditionOr }

// RuleStatement is an atomic condition.
type RuleStatement struct {
	ID       string   `json:"id" yaml:"id"`
	Property string   `json:"property" yaml:"property"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value" yaml:"value"`
}

// RuleGroup is a condition node of a rule-tree.
type RuleGroup struct {
	ID         string          `json:"id" yaml:"id"`
	Condition  Condition       `json:"condition" yaml:"condition"`
	Statements []RuleStatement `json:"statements" yaml:"statements"`
	Groups     []RuleGroup     `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Ontology is the keyed record stored per screening configuration.
type Ontology struct {
	ID          string    `json:"id" yaml:"id" db:"ontology_id"`
	RoleType    string    `json:"roleType" yaml:"roleType" validate:"required,max=256"`
	Description string    `json:"description" yaml:"description" validate:"max=4096"`
	CreatedOn   time.Time `json:"createdOn" yaml:"createdOn"`
	CreatedBy   string    `json:"createdBy" yaml:"createdBy" validate:"max=256"`
	Structure   Structure `json:"structure" yaml:"structure"`
}
