package nsrl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"value": []}`), 0644))
}

func TestDiscover_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "NSRL-CAID-1.json")
	writeFile(t, file)

	files, err := Discover(file, "")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestDiscover_DirectoryDefaultGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"))
	writeFile(t, filepath.Join(dir, "a.json"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	files, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
	}, files, "sorted, json only")
}

func TestDiscover_RecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.json"))
	writeFile(t, filepath.Join(dir, "nested", "deep.json"))

	files, err := Discover(dir, "**/*.json")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}
