// internal/rules/builder_test.go
package rules

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

func TestNewRuleTree(t *testing.T) {
	g := NewRuleTree()
	if g.Condition != types.ConditionAnd {
		t.Errorf("Condition = %q, want AND", g.Condition)
	}
	if len(g.Statements) != 1 {
		t.Fatalf("len(Statements) = %d, want 1", len(g.Statements))
	}
	if g.Statements[0].Operator != types.OpEquals {
		t.Errorf("Operator = %q, want %q", g.Statements[0].Operator, types.OpEquals)
	}
	if g.Groups == nil || len(g.Groups) != 0 {
		t.Errorf("Groups = %#v, want empty", g.Groups)
	}

	sub := NewSubGroup()
	if sub.Condition != types.ConditionAnd || len(sub.Statements) != 0 || len(sub.Groups) != 0 {
		t.Errorf("NewSubGroup() = %+v, want empty AND group", sub)
	}
}

func TestUpdateRuleTree(t *testing.T) {
	c := AddRuleTree(AddRuleTree(types.Criteria{ID: "c1", Name: "Experience"}))

	replacement := groupOf(types.ConditionOr, 2, 0, 0)
	got := UpdateRuleTree(c, 1, replacement)
	if got.Rules[1].ID != replacement.ID {
		t.Errorf("Rules[1].ID = %q, want %q", got.Rules[1].ID, replacement.ID)
	}
	if c.Rules[1].ID == replacement.ID {
		t.Error("UpdateRuleTree() changed its input")
	}

	emptied := c.Rules[0]
	emptied.Statements = nil
	got = UpdateRuleTree(c, 0, emptied)
	if len(got.Rules) != 1 || got.Rules[0].ID != c.Rules[1].ID {
		t.Errorf("Rules = %+v, want only the second tree", got.Rules)
	}

	got = UpdateRuleTree(got, 0, emptied)
	if got.Rules != nil {
		t.Errorf("Rules = %#v, want nil after removing the last tree", got.Rules)
	}

	if got := UpdateRuleTree(c, 5, replacement); !reflect.DeepEqual(got, c) {
		t.Errorf("UpdateRuleTree(out of range) = %+v, want unchanged", got)
	}
}

func TestDeleteRuleTree(t *testing.T) {
	c := AddRuleTree(types.Criteria{ID: "c1", Name: "Experience"})

	if got := DeleteRuleTree(c, -1); !reflect.DeepEqual(got, c) {
		t.Errorf("DeleteRuleTree(-1) = %+v, want unchanged", got)
	}
	if got := DeleteRuleTree(c, 0); got.Rules != nil {
		t.Errorf("Rules = %#v, want nil", got.Rules)
	}
	if len(c.Rules) != 1 {
		t.Errorf("input Rules length = %d, want 1", len(c.Rules))
	}
}

func TestGroupEdits(t *testing.T) {
	g := NewSubGroup()

	g = AddStatement(AddStatement(g))
	if len(g.Statements) != 2 {
		t.Fatalf("len(Statements) = %d, want 2", len(g.Statements))
	}

	before := g
	s := validStatement("Experience", "5")
	g = UpdateStatement(g, 0, s)
	if g.Statements[0] != s {
		t.Errorf("Statements[0] = %+v, want %+v", g.Statements[0], s)
	}
	if before.Statements[0] == s {
		t.Error("UpdateStatement() changed its input")
	}

	g = DeleteStatement(g, 1)
	if len(g.Statements) != 1 || g.Statements[0] != s {
		t.Errorf("Statements = %+v, want [%+v]", g.Statements, s)
	}

	g = AddSubGroup(g)
	if len(g.Groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(g.Groups))
	}
	inner := groupOf(types.ConditionOr, 2, 0, 0)
	g = UpdateSubGroup(g, 0, inner)
	if g.Groups[0].ID != inner.ID {
		t.Errorf("Groups[0].ID = %q, want %q", g.Groups[0].ID, inner.ID)
	}
	if !ValidateGroup(&g) {
		t.Error("ValidateGroup() = false, want true for statement plus valid sub-group")
	}
	g = DeleteSubGroup(g, 0)
	if len(g.Groups) != 0 {
		t.Errorf("len(Groups) = %d, want 0", len(g.Groups))
	}

	g = SetCondition(g, types.ConditionOr)
	if g.Condition != types.ConditionOr {
		t.Errorf("Condition = %q, want OR", g.Condition)
	}
	g = SetCondition(g, "XOR")
	if g.Condition != types.ConditionOr {
		t.Errorf("Condition = %q after unknown condition, want OR", g.Condition)
	}
}

func TestAddDeleteRuleTree_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("deleting the added tree restores absent rules", prop.ForAll(
		func(empty bool, adds int) bool {
			c := types.Criteria{ID: types.NewNodeID(), Name: "Criteria"}
			if empty {
				c.Rules = []types.RuleGroup{}
			}
			if DeleteRuleTree(AddRuleTree(c), 0).Rules != nil {
				return false
			}

			// Appending then dropping the tail leaves earlier trees alone.
			for i := 0; i < adds; i++ {
				c = AddRuleTree(c)
			}
			prior := append([]types.RuleGroup(nil), c.Rules...)
			got := DeleteRuleTree(AddRuleTree(c), len(c.Rules))
			if len(prior) == 0 {
				return got.Rules == nil
			}
			return reflect.DeepEqual(got.Rules, prior)
		},
		gen.Bool(),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
