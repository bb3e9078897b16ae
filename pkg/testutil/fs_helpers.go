package testutil

import (
	"io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/types"
)

// CreateFileT writes a file, creating parent directories.
func CreateFileT(t *testing.T, fsys types.FS, name, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(path.Dir(name), 0755))
	require.NoError(t, fsys.WriteFile(name, []byte(content), 0644))
}

// CreateDirT creates a directory and its parents.
func CreateDirT(t *testing.T, fsys types.FS, name string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(name, 0755))
}

// CreateSymlinkT creates link pointing at target, creating link's parent.
func CreateSymlinkT(t *testing.T, fsys types.FS, target, link string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(path.Dir(link), 0755))
	require.NoError(t, fsys.Symlink(target, link))
}

// AssertSymlink checks that link is a symlink pointing at target.
func AssertSymlink(t *testing.T, fsys types.FS, link, target string) {
	t.Helper()
	info, err := fsys.Lstat(link)
	if !assert.NoError(t, err, "expected symlink at %s", link) {
		return
	}
	if !assert.True(t, info.Mode()&fs.ModeSymlink != 0, "%s is not a symlink", link) {
		return
	}
	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got, "symlink %s", link)
}

// AssertDir checks that name is a real directory.
func AssertDir(t *testing.T, fsys types.FS, name string) {
	t.Helper()
	info, err := fsys.Lstat(name)
	if assert.NoError(t, err, "expected directory at %s", name) {
		assert.True(t, info.IsDir(), "%s is not a directory", name)
	}
}

// AssertFileContent checks that name is a regular file holding content.
func AssertFileContent(t *testing.T, fsys types.FS, name, content string) {
	t.Helper()
	info, err := fsys.Lstat(name)
	if !assert.NoError(t, err, "expected file at %s", name) {
		return
	}
	assert.True(t, info.Mode().IsRegular(), "%s is not a regular file", name)
	data, err := fsys.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

// AssertNotExists checks that nothing, not even a dangling link, is at name.
func AssertNotExists(t *testing.T, fsys types.FS, name string) {
	t.Helper()
	_, err := fsys.Lstat(name)
	assert.Error(t, err, "expected %s to be absent", name)
}
