package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ModelSpec is a typed view of a model record for display and lint-style
// checks. The repository itself never inspects record fields beyond name;
// decoding is lossy on purpose (free-form keys are dropped).
type ModelSpec struct {
	Name         string       `mapstructure:"name"`
	Description  string       `mapstructure:"description"`
	Materialized string       `mapstructure:"materialized"`
	Tags         []string     `mapstructure:"tags"`
	Columns      []ColumnSpec `mapstructure:"columns"`
	DependsOn    DependsOn    `mapstructure:"depends_on"`
}

// ColumnSpec is a typed view of one column entry.
type ColumnSpec struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Tests       []any  `mapstructure:"tests"`
}

// DependsOn holds upstream model references.
type DependsOn struct {
	Refs []string `mapstructure:"refs"`
}

// Materializations recognized by dbt-style tooling.
var Materializations = []string{"table", "view", "incremental", "ephemeral"}

// IsKnownMaterialization reports whether s is one of the recognized
// materialization kinds. The empty string is allowed (field is optional).
func IsKnownMaterialization(s string) bool {
	if s == "" {
		return true
	}
	for _, m := range Materializations {
		if s == m {
			return true
		}
	}
	return false
}

// DecodeModel decodes a record Mapping into a ModelSpec.
func DecodeModel(rec *Mapping) (*ModelSpec, error) {
	var spec ModelSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(rec.ToMap()); err != nil {
		return nil, fmt.Errorf("decoding model record: %w", err)
	}
	return &spec, nil
}
