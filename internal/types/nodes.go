// internal/types/nodes.go
package types

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

/*
 * Tree node sum type and its wire encodings.
 *
 * TreeNode is sealed: only *Layer and *Criteria implement it. Structure is the
 * ordered forest and owns the "type" discriminator on decode; an unknown or
 * missing discriminator fails with ErrUnknownNodeType.
 *
 * Encodings always emit "children" for layers (empty list, never null) and
 * omit "rules" on criteria without rule-trees, matching the record store.
 */

// NodeType is the wire discriminator of a tree node.
type NodeType string

const (
	NodeTypeLayer    NodeType = "layer"
	NodeTypeCriteria NodeType = "criteria"
)

// TreeNode is a Layer or a Criteria.
type TreeNode interface {
	NodeID() string
	NodeName() string
	NodeType() NodeType
	treeNode()
}

// Layer groups child layers and criteria, like a folder.
type Layer struct {
	ID       string
	Name     string
	Children Structure
}

// Criteria is a scoring unit carrying zero or more root rule-trees.
// A nil Rules slice means "no rules configured".
type Criteria struct {
	ID    string
	Name  string
	Rules []RuleGroup
}

// Structure is an ordered forest of tree nodes.
type Structure []TreeNode

func (l *Layer) NodeID() string     { return l.ID }
func (l *Layer) NodeName() string   { return l.Name }
func (l *Layer) NodeType() NodeType { return NodeTypeLayer }
func (*Layer) treeNode()            {}

func (c *Criteria) NodeID() string     { return c.ID }
func (c *Criteria) NodeName() string   { return c.Name }
func (c *Criteria) NodeType() NodeType { return NodeTypeCriteria }
func (*Criteria) treeNode()            {}

type layerWire struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     NodeType  `json:"type" yaml:"type"`
	Children Structure `json:"children" yaml:"children"`
}

type criteriaWire struct {
	ID    string      `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Type  NodeType    `json:"type" yaml:"type"`
	Rules []RuleGroup `json:"rules,omitempty" yaml:"rules,omitempty"`
}

type nodeHeader struct {
	Type NodeType `json:"type" yaml:"type"`
}

func (l Layer) wire() layerWire {
	children := l.Children
	if children == nil {
		children = Structure{}
	}
	return layerWire{ID: l.ID, Name: l.Name, Type: NodeTypeLayer, Children: children}
}

func (c Criteria) wire() criteriaWire {
	var rules []RuleGroup
	if len(c.Rules) > 0 {
		rules = c.Rules
	}
	return criteriaWire{ID: c.ID, Name: c.Name, Type: NodeTypeCriteria, Rules: rules}
}

// MarshalJSON implements json.Marshaler.
func (l Layer) MarshalJSON() ([]byte, error) { return json.Marshal(l.wire()) }

// MarshalJSON implements json.Marshaler.
func (c Criteria) MarshalJSON() ([]byte, error) { return json.Marshal(c.wire()) }

// MarshalYAML implements yaml.Marshaler.
func (l Layer) MarshalYAML() (interface{}, error) { return l.wire(), nil }

// MarshalYAML implements yaml.Marshaler.
func (c Criteria) MarshalYAML() (interface{}, error) { return c.wire(), nil }

// MarshalJSON implements json.Marshaler. A nil forest encodes as [].
func (s Structure) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TreeNode(s))
}

// UnmarshalJSON implements json.Unmarshaler, dispatching on "type".
func (s *Structure) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(Structure, 0, len(raw))
	for i, item := range raw {
		var hdr nodeHeader
		if err := json.Unmarshal(item, &hdr); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		switch hdr.Type {
		case NodeTypeLayer:
			var w layerWire
			if err := json.Unmarshal(item, &w); err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
			out = append(out, &Layer{ID: w.ID, Name: w.Name, Children: w.Children})
		case NodeTypeCriteria:
			var w criteriaWire
			if err := json.Unmarshal(item, &w); err != nil {
				return fmt.Errorf("criteria %d: %w", i, err)
			}
			out = append(out, &Criteria{ID: w.ID, Name: w.Name, Rules: nonEmpty(w.Rules)})
		default:
			return fmt.Errorf("node %d: %w %q", i, ErrUnknownNodeType, hdr.Type)
		}
	}
	*s = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler, dispatching on "type".
func (s *Structure) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: structure must be a sequence", value.Line)
	}
	out := make(Structure, 0, len(value.Content))
	for i, item := range value.Content {
		var hdr nodeHeader
		if err := item.Decode(&hdr); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		switch hdr.Type {
		case NodeTypeLayer:
			var w layerWire
			if err := item.Decode(&w); err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
			out = append(out, &Layer{ID: w.ID, Name: w.Name, Children: w.Children})
		case NodeTypeCriteria:
			var w criteriaWire
			if err := item.Decode(&w); err != nil {
				return fmt.Errorf("criteria %d: %w", i, err)
			}
			out = append(out, &Criteria{ID: w.ID, Name: w.Name, Rules: nonEmpty(w.Rules)})
		default:
			return fmt.Errorf("line %d: %w %q", item.Line, ErrUnknownNodeType, hdr.Type)
		}
	}
	*s = out
	return nil
}

// nonEmpty canonicalises an empty rules list to nil.
func nonEmpty(rules []RuleGroup) []RuleGroup {
	if len(rules) == 0 {
		return nil
	}
	return rules
}
