package fsutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystemReadWrite(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()

	_, err := m.ReadFile("missing.geojson")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, m.WriteFile("out/hulls.geojson", []byte(`{"type":"FeatureCollection"}`), 0644))

	data, err := m.ReadFile("out/hulls.geojson")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"FeatureCollection"}`, string(data))

	// Reads return copies, not aliases.
	data[0] = 'X'
	again, err := m.ReadFile("out/hulls.geojson")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0])
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("temp/issue_geojson", 0755))

	assert.True(t, m.Exists("temp/issue_geojson"))
	assert.True(t, m.Exists("temp"))
	assert.False(t, m.Exists("temp/other"))
}

func TestMemoryFileSystemNamesUnder(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("temp/issue_geojson/issue_1.geojson", []byte("a"), 0644))
	require.NoError(t, m.WriteFile("temp/issue_geojson/issue_2.geojson", []byte("b"), 0644))
	require.NoError(t, m.WriteFile("temp/unrelated.txt", []byte("c"), 0644))

	got := m.NamesUnder("temp/issue_geojson")
	assert.Equal(t, []string{
		filepath.Clean("temp/issue_geojson/issue_1.geojson"),
		filepath.Clean("temp/issue_geojson/issue_2.geojson"),
	}, got)
}

func TestOSFileSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	osfs := OSFileSystem{}

	path := filepath.Join(dir, "nested", "file.txt")
	require.NoError(t, osfs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, osfs.WriteFile(path, []byte("hello"), 0644))

	assert.True(t, osfs.Exists(path))
	data, err := osfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
