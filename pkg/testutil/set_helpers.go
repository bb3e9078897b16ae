package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSet is a package set laid out on the real filesystem.
type TestSet struct {
	Root string // Catalog root directory
	Name string // Set name
	Dir  string // Full path to set directory
}

// SetupTestSet creates root/name. Pass an empty root to use a fresh
// temporary directory.
func SetupTestSet(t *testing.T, root, name string) *TestSet {
	t.Helper()

	if root == "" {
		root = t.TempDir()
	}
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	return &TestSet{Root: root, Name: name, Dir: dir}
}

// AddFile adds a file, relative to the set directory, creating parents.
func (ts *TestSet) AddFile(t *testing.T, rel, content string) string {
	t.Helper()

	p := filepath.Join(ts.Dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// AddDir adds an empty directory relative to the set directory.
func (ts *TestSet) AddDir(t *testing.T, rel string) string {
	t.Helper()

	p := filepath.Join(ts.Dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(p, 0755))
	return p
}

// AddManifest writes manifest.toml.
func (ts *TestSet) AddManifest(t *testing.T, content string) {
	t.Helper()
	ts.AddFile(t, "manifest.toml", content)
}
