package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordNameFirst(t *testing.T) {
	fields := NewMapping()
	fields.Set("description", "One row per order")
	fields.Set("materialized", "table")

	rec := NewRecord("orders", fields)
	assert.Equal(t, []string{"name", "description", "materialized"}, rec.Keys())

	name, _ := rec.Get("name")
	assert.Equal(t, "orders", name)
}

func TestNewRecordExplicitNameWins(t *testing.T) {
	fields := NewMapping()
	fields.Set("description", "desc")
	fields.Set("name", "sneaky")
	fields.Set("materialized", "view")

	rec := NewRecord("orders", fields)
	name, _ := rec.Get("name")
	assert.Equal(t, "orders", name)
	// The duplicate name from fields is dropped, not reordered.
	assert.Equal(t, []string{"name", "description", "materialized"}, rec.Keys())
}

func TestNewRecordNilFields(t *testing.T) {
	rec := NewRecord("orders", nil)
	require.Equal(t, 1, rec.Len())
	name, _ := rec.Get("name")
	assert.Equal(t, "orders", name)
}

func TestRecordName(t *testing.T) {
	rec := NewMapping()
	rec.Set("name", "orders")
	assert.Equal(t, "orders", RecordName(rec))

	noName := NewMapping()
	noName.Set("description", "x")
	assert.Equal(t, "", RecordName(noName))

	assert.Equal(t, "", RecordName("not a mapping"))
	assert.Equal(t, "", RecordName(nil))

	numeric := NewMapping()
	numeric.Set("name", 42)
	assert.Equal(t, "", RecordName(numeric))
}
