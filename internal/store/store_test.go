package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	s := NewFileStore(t.TempDir())

	err := s.Save("test.json", doc{Name: "hello", Count: 3}, 0o644)
	require.NoError(t, err)

	var got doc
	found, err := s.Load("test.json", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	var got doc
	found, err := s.Load("missing.json", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	s := NewFileStore(dir)
	var got doc
	found, err := s.Load("bad.json", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	s := NewFileStore(dir)

	require.NoError(t, s.Save("test.json", doc{}, 0o644))

	_, err := os.Stat(filepath.Join(dir, "test.json"))
	assert.NoError(t, err)
}

func TestFileStore_OwnerOnlyMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not enforced on windows")
	}

	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Save("secret.json", doc{Name: "key"}, 0o600))

	info, err := os.Stat(filepath.Join(s.Dir(), "secret.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveReplacesWholeDocument(t *testing.T) {
	s := NewFileStore(t.TempDir())

	require.NoError(t, s.Save("test.json", doc{Name: "first", Count: 1}, 0o644))
	require.NoError(t, s.Save("test.json", doc{Name: "second"}, 0o644))

	var got doc
	found, err := s.Load("test.json", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", got.Name)
	assert.Equal(t, 0, got.Count)
}

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()

	require.NoError(t, s.Save("test.json", doc{Name: "mem"}, 0o600))

	var got doc
	found, err := s.Load("test.json", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "mem", got.Name)
}

func TestMemStore_CorruptReportsAbsent(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Save("test.json", doc{Name: "mem"}, 0o600))
	s.Corrupt("test.json")

	var got doc
	found, err := s.Load("test.json", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
