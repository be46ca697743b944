package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemakit/internal/cli/config"
)

// runCommand executes the root command with args and captured output.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommandMetadata(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "schemakit", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"config", "schemas-dir", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestVersionSubcommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "SchemaKit v"+Version)
}

func TestModelLifecycleThroughCLI(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	// Add a model non-interactively.
	out, _, err := runCommand(t, "add", "orders",
		"--schemas-dir", schemasDir,
		"--description", "One row per order",
		"--materialized", "table",
		"--tags", "finance",
		"--column", "order_id:unique;not_null:Primary key",
		"--ref", "stg_orders")
	require.NoError(t, err)
	assert.Contains(t, out, `Model "orders" added to orders.yml`)
	require.FileExists(t, filepath.Join(schemasDir, "orders.yml"))

	// Duplicate add fails.
	_, _, err = runCommand(t, "add", "orders", "--schemas-dir", schemasDir, "--no-input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// List as JSON.
	out, _, err = runCommand(t, "list", "--schemas-dir", schemasDir, "-o", "json")
	require.NoError(t, err)
	var listing struct {
		Documents int `json:"documents"`
		Models    []struct {
			Document     string `json:"document"`
			Name         string `json:"name"`
			Materialized string `json:"materialized"`
			Columns      int    `json:"columns"`
		} `json:"models"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, 1, listing.Documents)
	require.Len(t, listing.Models, 1)
	assert.Equal(t, "orders", listing.Models[0].Name)
	assert.Equal(t, "table", listing.Models[0].Materialized)
	assert.Equal(t, 1, listing.Models[0].Columns)

	// Show renders the document as fenced YAML when piped.
	out, _, err = runCommand(t, "show", "orders.yml", "--schemas-dir", schemasDir)
	require.NoError(t, err)
	assert.Contains(t, out, "```yaml")
	assert.Contains(t, out, "name: orders")
	assert.Contains(t, out, "description: One row per order")

	// Edit replaces the record whole.
	out, _, err = runCommand(t, "edit", "orders.yml", "orders",
		"--schemas-dir", schemasDir, "--materialized", "view")
	require.NoError(t, err)
	assert.Contains(t, out, `Model "orders" updated in orders.yml`)

	out, _, err = runCommand(t, "show", "orders.yml", "--schemas-dir", schemasDir)
	require.NoError(t, err)
	assert.Contains(t, out, "materialized: view")
	assert.NotContains(t, out, "description: One row per order")

	// Validate passes.
	_, _, err = runCommand(t, "validate", "--schemas-dir", schemasDir)
	require.NoError(t, err)

	// Removing the only model deletes the document.
	out, _, err = runCommand(t, "remove", "orders.yml", "orders", "--schemas-dir", schemasDir)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted (no models left)")
	assert.NoFileExists(t, filepath.Join(schemasDir, "orders.yml"))
}

func TestEditMissingModel(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	_, _, err := runCommand(t, "edit", "ghost.yml", "ghost",
		"--schemas-dir", schemasDir, "--no-input", "--materialized", "view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models found")
}

func TestRemoveMissingModel(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	_, _, err := runCommand(t, "remove", "ghost.yml", "ghost", "--schemas-dir", schemasDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models found")
}

func TestShowMissingDocument(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	_, _, err := runCommand(t, "show", "ghost.yml", "--schemas-dir", schemasDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateReportsBrokenDocuments(t *testing.T) {
	schemasDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(schemasDir, "good.yml"),
		[]byte("models:\n  - name: orders\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(schemasDir, "bad.yml"),
		[]byte("models:\n  - description: no name here\n"), 0644))

	out, _, err := runCommand(t, "validate", "--schemas-dir", schemasDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed validation")
	assert.Contains(t, out, "good.yml")
	assert.Contains(t, out, "bad.yml")
}

func TestValidateWarnsOnUnknownMaterialization(t *testing.T) {
	schemasDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(schemasDir, "odd.yml"),
		[]byte("models:\n  - name: odd\n    materialized: hologram\n"), 0644))

	_, errOut, err := runCommand(t, "validate", "--schemas-dir", schemasDir)
	require.NoError(t, err, "warnings must not fail validation")
	assert.Contains(t, errOut, `unknown materialization "hologram"`)
}

func TestListEmptyRepository(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	out, _, err := runCommand(t, "list", "--schemas-dir", schemasDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No models found")
}

func TestUnknownMaterializationFlagRejected(t *testing.T) {
	schemasDir := filepath.Join(t.TempDir(), "schemas")

	_, _, err := runCommand(t, "add", "orders",
		"--schemas-dir", schemasDir, "--materialized", "hologram")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown materialization")

	_, statErr := os.Stat(filepath.Join(schemasDir, "orders.yml"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCommand(t, "completion", "bash")
	require.NoError(t, err)
	_ = out // completion writes to os.Stdout directly

	_, _, err = runCommand(t, "completion", "ksh")
	require.Error(t, err)
}
