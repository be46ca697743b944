package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingSetPreservesInsertionOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zebra", 1)
	m.Set("alpha", 2)
	m.Set("middle", 3)

	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())

	// Overwriting an existing key keeps its position.
	m.Set("alpha", 99)
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())
	v, ok := m.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestMappingDelete(t *testing.T) {
	m := NewMapping()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))

	// Deleting a missing key is a no-op.
	m.Delete("missing")
	assert.Equal(t, 2, m.Len())
}

func TestParsePreservesKeyOrder(t *testing.T) {
	doc := `models:
  - name: orders
    description: One row per order
    materialized: table
    zeta: custom
    alpha: another
`
	m, err := Parse([]byte(doc))
	require.NoError(t, err)

	v, ok := m.Get("models")
	require.True(t, ok)
	seq, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, seq, 1)

	rec, ok := seq[0].(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "description", "materialized", "zeta", "alpha"}, rec.Keys())
}

func TestRoundTripIsByteStable(t *testing.T) {
	doc := `models:
  - name: orders
    description: One row per order
    materialized: table
    tags:
      - finance
    columns:
      - name: order_id
        tests:
          - unique
          - not_null
      - name: customer_id
        tests:
          - relationships:
              to: customers
              field: customer_id
    depends_on:
      refs:
        - stg_orders
`
	m, err := Parse([]byte(doc))
	require.NoError(t, err)

	out, err := Encode(m)
	require.NoError(t, err)

	// A second round-trip of the encoder's own output must be a fixed point.
	m2, err := Parse(out)
	require.NoError(t, err)
	out2, err := Encode(m2)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantLen int
	}{
		{name: "empty document", input: "", wantLen: 0},
		{name: "whitespace only", input: "\n\n", wantLen: 0},
		{name: "null document", input: "null\n", wantLen: 0},
		{name: "comment only", input: "# nothing here\n", wantLen: 0},
		{name: "mapping root", input: "models: []\n", wantLen: 1},
		{name: "sequence root", input: "- a\n- b\n", wantErr: true},
		{name: "scalar root", input: "just a string\n", wantErr: true},
		{name: "malformed yaml", input: "models: [unclosed\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, m.Len())
		})
	}
}

func TestParseNestedTypes(t *testing.T) {
	doc := `name: orders
count: 3
enabled: true
meta:
  owner: data-team
items:
  - one
  - two
`
	m, err := Parse([]byte(doc))
	require.NoError(t, err)

	v, _ := m.Get("count")
	assert.Equal(t, 3, v)
	v, _ = m.Get("enabled")
	assert.Equal(t, true, v)

	meta, _ := m.Get("meta")
	nested, ok := meta.(*Mapping)
	require.True(t, ok)
	owner, _ := nested.Get("owner")
	assert.Equal(t, "data-team", owner)

	items, _ := m.Get("items")
	assert.Equal(t, []any{"one", "two"}, items)
}

func TestToMap(t *testing.T) {
	m := NewMapping()
	inner := NewMapping()
	inner.Set("to", "customers")
	m.Set("name", "orders")
	m.Set("rel", inner)
	m.Set("tags", []any{"a", inner})

	plain := m.ToMap()
	assert.Equal(t, "orders", plain["name"])
	assert.Equal(t, map[string]any{"to": "customers"}, plain["rel"])
	assert.Equal(t, []any{"a", map[string]any{"to": "customers"}}, plain["tags"])
}
