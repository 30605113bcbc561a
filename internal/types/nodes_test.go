package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleRecord = `{
  "id": "0190b6a4-7c3e-7a2b-9d1e-2f4a5b6c7d8e",
  "roleType": "Backend Engineer",
  "description": "screening for backend roles",
  "createdOn": "2025-03-01T10:00:00Z",
  "createdBy": "Liza Fisher",
  "structure": [
    {
      "id": "root-layer",
      "name": "Backend Engineer",
      "type": "layer",
      "children": [
        {
          "id": "c1",
          "name": "Experience",
          "type": "criteria",
          "rules": [
            {
              "id": "g1",
              "condition": "AND",
              "statements": [
                {"id": "s1", "property": "Experience", "operator": "Greater Than", "value": "5"},
                {"id": "s2", "property": "Skills", "operator": "Contains", "value": "Go"}
              ],
              "groups": []
            }
          ]
        },
        {"id": "c2", "name": "Education", "type": "criteria", "rules": []},
        {"id": "l2", "name": "Culture", "type": "layer", "children": []}
      ]
    }
  ]
}`

func TestStructure_UnmarshalJSON_Record(t *testing.T) {
	var o Ontology
	if err := json.Unmarshal([]byte(sampleRecord), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v, want nil", err)
	}

	if o.RoleType != "Backend Engineer" {
		t.Errorf("RoleType = %q, want %q", o.RoleType, "Backend Engineer")
	}
	if len(o.Structure) != 1 {
		t.Fatalf("len(Structure) = %d, want 1", len(o.Structure))
	}

	root, ok := o.Structure[0].(*Layer)
	if !ok {
		t.Fatalf("Structure[0] = %T, want *Layer", o.Structure[0])
	}
	if root.ID != RootLayerID {
		t.Errorf("root.ID = %q, want %q", root.ID, RootLayerID)
	}
	if len(root.Children) != 3 {
		t.Fatalf("len(root.Children) = %d, want 3", len(root.Children))
	}

	exp, ok := root.Children[0].(*Criteria)
	if !ok {
		t.Fatalf("Children[0] = %T, want *Criteria", root.Children[0])
	}
	if len(exp.Rules) != 1 || len(exp.Rules[0].Statements) != 2 {
		t.Errorf("Experience rules = %+v, want one tree with two statements", exp.Rules)
	}
	if exp.Rules[0].Statements[0].Operator != OpGreaterThan {
		t.Errorf("Operator = %q, want %q", exp.Rules[0].Statements[0].Operator, OpGreaterThan)
	}

	edu := root.Children[1].(*Criteria)
	if edu.Rules != nil {
		t.Errorf("empty rules list decoded as %#v, want nil", edu.Rules)
	}

	if _, ok := root.Children[2].(*Layer); !ok {
		t.Errorf("Children[2] = %T, want *Layer", root.Children[2])
	}
}

func TestStructure_UnmarshalJSON_UnknownType(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown discriminator", `[{"id": "x", "name": "X", "type": "folder"}]`},
		{"missing discriminator", `[{"id": "x", "name": "X"}]`},
		{"nested unknown", `[{"id": "root-layer", "name": "R", "type": "layer", "children": [{"id": "y", "type": "rule"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Structure
			err := json.Unmarshal([]byte(tt.data), &s)
			if !errors.Is(err, ErrUnknownNodeType) {
				t.Errorf("Unmarshal() error = %v, want ErrUnknownNodeType", err)
			}
		})
	}
}

func TestStructure_MarshalJSON_Shape(t *testing.T) {
	s := Structure{
		&Layer{ID: RootLayerID, Name: DefaultRootName, Children: Structure{
			&Criteria{ID: "c1", Name: "Criteria"},
			&Layer{ID: "l1", Name: "New Layer"},
		}},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v, want nil", err)
	}
	got := string(data)

	if !strings.Contains(got, `"type":"layer"`) || !strings.Contains(got, `"type":"criteria"`) {
		t.Errorf("Marshal() = %s, want type discriminators", got)
	}
	if strings.Contains(got, `"rules"`) {
		t.Errorf("Marshal() = %s, want rules omitted for criteria without rule-trees", got)
	}
	if !strings.Contains(got, `"id":"l1","name":"New Layer","type":"layer","children":[]`) {
		t.Errorf("Marshal() = %s, want empty children list for leaf layer", got)
	}

	var nilForest Structure
	data, err = json.Marshal(nilForest)
	if err != nil {
		t.Fatalf("Marshal(nil) error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Marshal(nil) = %s, want []", data)
	}
}

func TestStructure_UnmarshalYAML(t *testing.T) {
	doc := `
roleType: Data Analyst
structure:
  - id: root-layer
    name: Data Analyst
    type: layer
    children:
      - id: c1
        name: SQL
        type: criteria
        rules:
          - id: g1
            condition: OR
            statements:
              - {id: s1, property: SQL, operator: Equals, value: advanced}
              - {id: s2, property: Years, operator: Greater Than, value: "3"}
`
	var o Ontology
	if err := yaml.Unmarshal([]byte(doc), &o); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v, want nil", err)
	}
	root := o.Structure[0].(*Layer)
	c := root.Children[0].(*Criteria)
	if c.Rules[0].Condition != ConditionOr {
		t.Errorf("Condition = %q, want OR", c.Rules[0].Condition)
	}
	if c.Rules[0].Statements[1].Value != "3" {
		t.Errorf("Value = %q, want %q", c.Rules[0].Statements[1].Value, "3")
	}

	var bad Structure
	err := yaml.Unmarshal([]byte("- {id: x, type: widget}\n"), &bad)
	if !errors.Is(err, ErrUnknownNodeType) {
		t.Errorf("yaml.Unmarshal() error = %v, want ErrUnknownNodeType", err)
	}
}

func TestNewNodeID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewNodeID()
		if _, dup := seen[id]; dup {
			t.Fatalf("NewNodeID() produced duplicate %q", id)
		}
		seen[id] = struct{}{}
	}
	if _, err := ParseOntologyID(NewOntologyID()); err != nil {
		t.Errorf("ParseOntologyID(NewOntologyID()) error = %v", err)
	}
	if _, err := ParseOntologyID("not-a-uuid"); err == nil {
		t.Error("ParseOntologyID(\"not-a-uuid\") error = nil, want error")
	}
}
