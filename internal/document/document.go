// Package document reads and writes ontology files.
//
// A file is JSON (.json) or YAML (.yaml, .yml) and holds either a full
// ontology record or a bare structure list. Bare structures load as a record
// with only Structure set.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions other than .json, .yaml
// and .yml.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*types.Ontology, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	o, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return o, nil
}

// Decode parses a record or a bare structure. Operator and condition
// spellings are canonicalised ("greater than" loads as "Greater Than").
func Decode(data []byte, format Format) (*types.Ontology, error) {
	o, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	rules.Canonicalize(o.Structure)
	return o, nil
}

func decode(data []byte, format Format) (*types.Ontology, error) {
	var o types.Ontology
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &o.Structure); err != nil {
				return nil, err
			}
			return &o, nil
		}
		if err := json.Unmarshal(trimmed, &o); err != nil {
			return nil, err
		}
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		doc := root.Content[0]
		if doc.Kind == yaml.SequenceNode {
			if err := doc.Decode(&o.Structure); err != nil {
				return nil, err
			}
			return &o, nil
		}
		if err := doc.Decode(&o); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &o, nil
}

// Encode renders o as a full record.
func Encode(o *types.Ontology, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes o to path in the format its extension names. The file is
// replaced atomically so a watcher never sees a partial write.
func Save(path string, o *types.Ontology) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(o, format)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write document %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}
