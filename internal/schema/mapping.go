// Package schema provides the ordered document structures for model schema
// files. YAML mappings are decoded into insertion-ordered Mappings so that
// key order survives a load/save round-trip (no alphabetical sorting).
package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mapping is an insertion-ordered string-keyed map. Nested mappings decode
// to *Mapping, sequences to []any, scalars to plain Go values.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]any)}
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Mapping) Keys() []string {
	return m.keys
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// ToMap converts the Mapping (recursively) to plain map and slice types.
// Key order is lost; intended for JSON output and mapstructure decoding.
func (m *Mapping) ToMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = toPlain(m.values[k])
	}
	return out
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *Mapping:
		return t.ToMap()
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = toPlain(item)
		}
		return items
	default:
		return v
	}
}

// MarshalYAML implements yaml.Marshaler, emitting keys in insertion order.
func (m *Mapping) MarshalYAML() (any, error) {
	return m.node()
}

func (m *Mapping) node() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode, err := valueNode(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", k, err)
		}
		n.Content = append(n.Content, keyNode, valNode)
	}
	return n, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Mapping:
		return t.node()
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := decodeNode(value)
	if err != nil {
		return err
	}
	dm, ok := decoded.(*Mapping)
	if !ok {
		return fmt.Errorf("expected a mapping, got %s", describeNode(value))
	}
	*m = *dm
	return nil
}

func decodeNode(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("mapping key at line %d: %w", n.Content[i].Line, err)
			}
			v, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unknown node"
	}
}

// Parse decodes YAML bytes into a Mapping. Empty and null documents yield
// an empty Mapping. A non-mapping document root is an error.
func Parse(data []byte) (*Mapping, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		// No document at all (empty file).
		return NewMapping(), nil
	}
	decoded, err := decodeNode(&root)
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		return NewMapping(), nil
	}
	m, ok := decoded.(*Mapping)
	if !ok {
		return nil, fmt.Errorf("document root is not a mapping")
	}
	return m, nil
}

// Encode serializes a Mapping to YAML with two-space indentation.
func Encode(m *Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
