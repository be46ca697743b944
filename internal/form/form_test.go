package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemakit/internal/schema"
)

func TestBuildOrdersFields(t *testing.T) {
	m := New(Options{Name: "orders"})
	m.description.SetValue("One row per order")
	m.materialized = 1 // "table"
	m.tags.SetValue("finance, daily")
	m.columns.SetValue("order_id : unique; not_null : Primary key\ncustomer_id : ->customers")
	m.refs.SetValue("stg_orders\nstg_customers")

	fields, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "materialized", "tags", "columns", "depends_on"}, fields.Keys())

	v, _ := fields.Get("materialized")
	assert.Equal(t, "table", v)

	v, _ = fields.Get("tags")
	assert.Equal(t, []any{"finance", "daily"}, v)

	v, _ = fields.Get("columns")
	cols := v.([]any)
	require.Len(t, cols, 2)

	v, _ = fields.Get("depends_on")
	dep := v.(*schema.Mapping)
	refs, _ := dep.Get("refs")
	assert.Equal(t, []any{"stg_orders", "stg_customers"}, refs)
}

func TestBuildEmptyFormYieldsNoFields(t *testing.T) {
	m := New(Options{Name: "orders"})
	fields, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, fields.Len())
}

func TestBuildMergesCustomProps(t *testing.T) {
	m := New(Options{Name: "orders"})
	m.description.SetValue("desc")
	m.props.SetValue("meta:\n  owner: data-team\ncontract: enforced\n")

	fields, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"description", "meta", "contract"}, fields.Keys())

	v, _ := fields.Get("contract")
	assert.Equal(t, "enforced", v)
}

func TestBuildInvalidPropsIsPropsError(t *testing.T) {
	m := New(Options{Name: "orders"})
	m.props.SetValue("not: [valid")

	_, err := m.Build()
	require.Error(t, err)

	var propsErr *PropsError
	require.ErrorAs(t, err, &propsErr)
	assert.Contains(t, err.Error(), "custom properties")
}

func TestBuildInvalidColumnLine(t *testing.T) {
	m := New(Options{Name: "orders"})
	m.columns.SetValue(": unique")

	_, err := m.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestPrefillRoundTrip(t *testing.T) {
	doc := `name: orders
description: One row per order
materialized: table
tags:
  - finance
columns:
  - name: order_id
    tests:
      - unique
depends_on:
  refs:
    - stg_orders
meta:
  owner: data-team
`
	initial, err := schema.Parse([]byte(doc))
	require.NoError(t, err)

	m := New(Options{Name: "orders", Initial: initial})
	fields, err := m.Build()
	require.NoError(t, err)

	// Everything except name survives the prefill/build cycle.
	assert.Equal(t, []string{"description", "materialized", "tags", "columns", "depends_on", "meta"}, fields.Keys())
	assert.False(t, fields.Has("name"))

	v, _ := fields.Get("materialized")
	assert.Equal(t, "table", v)
}

func TestErrAborted(t *testing.T) {
	assert.True(t, errors.Is(ErrAborted, ErrAborted))
	assert.Equal(t, "form aborted", ErrAborted.Error())
}
