// Package source loads dynamic trees from JSON, YAML and HCL files and from
// SQLite record tables.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentic-research/shapekit/api"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format int

const (
	JSON Format = iota
	YAML
	HCL
)

// FormatFor picks the format from a file extension. .yaml and .yml are
// YAML, .hcl and .tf are HCL and anything else is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".hcl", ".tf":
		return HCL
	default:
		return JSON
	}
}

// LoadFile reads path from fsys and decodes it according to its extension.
func LoadFile(fsys billy.Filesystem, path string) (any, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var v any
	if f := FormatFor(path); f == HCL {
		v, err = DecodeHCL(data, path)
	} else {
		v, err = Decode(data, f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}

// Decode parses data in the given format into an ordered tree.
func Decode(data []byte, f Format) (any, error) {
	switch f {
	case YAML:
		return DecodeYAML(data)
	case HCL:
		return DecodeHCL(data, "input.hcl")
	}
	return api.DecodeJSON(data)
}

// DecodeYAML parses a single YAML document. Mappings become *api.Object in
// document order, sequences []any and scalars their natural Go value.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil // empty document
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		obj := &api.Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}
