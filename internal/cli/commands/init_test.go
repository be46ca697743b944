package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemakit/internal/cli/testutil"
	"github.com/leapstack-labs/schemakit/internal/repository"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	tr := testutil.NewTestRendererMarkdown()

	require.NoError(t, runInit(tr.Renderer, dir, false, false))

	assert.FileExists(t, filepath.Join(dir, "schemakit.yaml"))
	assert.DirExists(t, filepath.Join(dir, "schemas"))
	testutil.AssertContains(t, tr.Output(), "SchemaKit project initialized!")
	testutil.AssertNoANSI(t, tr.Output())

	// A second init without --force refuses to overwrite.
	err := runInit(tr.Renderer, dir, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// --force overwrites.
	assert.NoError(t, runInit(tr.Renderer, dir, true, false))
}

func TestRunInitExample(t *testing.T) {
	dir := t.TempDir()
	tr := testutil.NewTestRendererMarkdown()

	require.NoError(t, runInit(tr.Renderer, dir, false, true))

	examplePath := filepath.Join(dir, "schemas", "orders.yml")
	require.FileExists(t, examplePath)

	// The sample document must be a valid schema document.
	data, err := os.ReadFile(examplePath)
	require.NoError(t, err)
	doc, err := schema.Parse(data)
	require.NoError(t, err)
	assert.True(t, repository.Validate(doc))
}
