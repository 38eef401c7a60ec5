package convert

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/ucograph/config"
	"github.com/c360studio/ucograph/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUnit = `{
	"value": [
		{
			"MediaID": 1,
			"MediaSize": "1024",
			"MediaFiles": [
				{"FileName": "app.exe", "FilePath": "\\install", "MD5": "d41d8cd98f00b204e9800998ecf8427e"}
			]
		}
	]
}`

const otherUnit = `{
	"value": [
		{
			"MediaID": 2,
			"MediaFiles": [
				{"FileName": "readme.txt", "FilePath": "\\docs", "MD5": "900150983cd24fb0d6963f7d28e17f72"}
			]
		}
	]
}`

func newTestConverter(t *testing.T, inputDir string, mutate func(*config.Config)) *Converter {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Input.Path = inputDir
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	if mutate != nil {
		mutate(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, "test", logger)
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SingleUnit(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "caid.json", validUnit)

	c := newTestConverter(t, dir, nil)
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Errors)
	require.Len(t, summary.Outputs, 1)
	assert.Equal(t, "uco-caid.json", filepath.Base(summary.Outputs[0]))
	assert.NoError(t, summary.Err())
}

func TestRun_MalformedUnitSkipped(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "bad.json", `{"MediaObjects": []}`)
	writeInput(t, dir, "good.json", validUnit)

	c := newTestConverter(t, dir, nil)
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed, "valid sibling must still convert")
	assert.Equal(t, 1, summary.Errors)
	assert.NoError(t, summary.Err(), "partial success exits zero")

	// The failed unit left no partial output behind.
	outDir := c.cfg.Output.Dir
	_, err = os.Stat(filepath.Join(outDir, "uco-bad.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "uco-good.json"))
	assert.NoError(t, err)
}

func TestRun_AllUnitsFailed(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "bad.json", `{"nope": true}`)

	c := newTestConverter(t, dir, nil)
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 1, summary.Errors)
	assert.Error(t, summary.Err(), "total failure must exit non-zero")
}

func TestRun_CombineMode(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "one.json", validUnit)
	writeInput(t, dir, "two.json", otherUnit)

	c := newTestConverter(t, dir, func(cfg *config.Config) {
		cfg.Output.Combine = true
	})
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	require.Len(t, summary.Outputs, 3, "two per-unit documents plus combined")

	combinedPath := filepath.Join(c.cfg.Output.Dir, export.CombinedName)
	data, err := os.ReadFile(combinedPath)
	require.NoError(t, err)

	var doc struct {
		Graph []map[string]any `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	// Context nodes from both units collapse; ids are unique throughout.
	seen := make(map[string]int)
	for _, member := range doc.Graph {
		id, _ := member["@id"].(string)
		require.NotEmpty(t, id)
		seen[id]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "id %s duplicated in combined graph", id)
	}

	// The combined bundle's member list spans both units, not just the
	// first one merged.
	var bundleObjects []any
	for _, member := range doc.Graph {
		if objs, ok := member["uco-core:object"].([]any); ok {
			bundleObjects = objs
		}
	}
	require.NotNil(t, bundleObjects, "combined document must contain the bundle")
	assert.Len(t, bundleObjects, len(doc.Graph)-1,
		"bundle must reference every other node in the combined graph")
}

func TestRun_SingleFileInput(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "caid.json", validUnit)

	c := newTestConverter(t, path, nil)
	summary, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
}

func TestRun_ValidationFailureDoesNotUndoWrite(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "caid.json", validUnit)

	c := newTestConverter(t, dir, func(cfg *config.Config) {
		cfg.Validation.Enabled = true
		cfg.Validation.Command = "sh"
		cfg.Validation.Args = []string{"-c", "exit 1"}
	})
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	_, err = os.Stat(filepath.Join(c.cfg.Output.Dir, "uco-caid.json"))
	assert.NoError(t, err, "validation failure must not undo the write")
}

func TestSummary_Err(t *testing.T) {
	tests := []struct {
		name      string
		processed int
		errors    int
		wantErr   bool
	}{
		{"all succeeded", 3, 0, false},
		{"partial success", 2, 1, false},
		{"nothing to do", 0, 0, false},
		{"total failure", 0, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Summary{Processed: tt.processed, Errors: tt.errors}
			if tt.wantErr {
				assert.Error(t, s.Err())
			} else {
				assert.NoError(t, s.Err())
			}
		})
	}
}
