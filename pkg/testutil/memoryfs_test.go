package testutil_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/testutil"
	"github.com/arthur-debert/toolkit/pkg/types"
)

var _ types.FS = (*testutil.MemoryFS)(nil)

func TestMemoryFSWriteAndRead(t *testing.T) {
	m := testutil.NewMemoryFS()
	require.NoError(t, m.WriteFile("/a/b/file.txt", []byte("hello"), 0644))

	data, err := m.ReadFile("/a/b/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := m.Stat("/a/b")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFSSymlinks(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.CreateFileT(t, m, "/src/file", "content")
	testutil.CreateDirT(t, m, "/src/dir")
	testutil.CreateSymlinkT(t, m, "/src/file", "/mount/file-link")
	testutil.CreateSymlinkT(t, m, "/src/dir", "/mount/dir-link")
	testutil.CreateSymlinkT(t, m, "/src/missing", "/mount/dangling")

	t.Run("lstat reports links", func(t *testing.T) {
		info, err := m.Lstat("/mount/dir-link")
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&fs.ModeSymlink)
		assert.False(t, info.IsDir())
	})

	t.Run("stat follows links", func(t *testing.T) {
		info, err := m.Stat("/mount/dir-link")
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		data, err := m.ReadFile("/mount/file-link")
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("dangling link exists but does not resolve", func(t *testing.T) {
		_, err := m.Lstat("/mount/dangling")
		require.NoError(t, err)
		_, err = m.Stat("/mount/dangling")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("readlink", func(t *testing.T) {
		testutil.AssertSymlink(t, m, "/mount/file-link", "/src/file")
		_, err := m.Readlink("/src/file")
		assert.Error(t, err)
	})

	t.Run("symlink refuses existing path", func(t *testing.T) {
		err := m.Symlink("/elsewhere", "/mount/file-link")
		assert.ErrorIs(t, err, fs.ErrExist)
	})

	t.Run("removing a link keeps its target", func(t *testing.T) {
		require.NoError(t, m.Remove("/mount/file-link"))
		testutil.AssertNotExists(t, m, "/mount/file-link")
		testutil.AssertFileContent(t, m, "/src/file", "content")
	})
}

func TestMemoryFSRemove(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.CreateFileT(t, m, "/dir/file", "x")

	assert.Error(t, m.Remove("/dir"), "non-empty directory")
	require.NoError(t, m.Remove("/dir/file"))
	require.NoError(t, m.Remove("/dir"))
	testutil.AssertNotExists(t, m, "/dir")
	assert.Error(t, m.Remove("/"))
}

func TestMemoryFSReadDirIsSorted(t *testing.T) {
	m := testutil.NewMemoryFS()
	for _, name := range []string{"c", "a", "b"} {
		testutil.CreateFileT(t, m, "/dir/"+name, "")
	}

	entries, err := m.ReadDir("/dir")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestMemoryFSWithError(t *testing.T) {
	boom := errors.New("boom")
	m := testutil.NewMemoryFS()
	testutil.CreateDirT(t, m, "/mount")
	m.WithError("/mount/locked", boom)

	assert.ErrorIs(t, m.Symlink("/src", "/mount/locked"), boom)
	assert.ErrorIs(t, m.MkdirAll("/mount/locked/sub", 0755), boom)
	_, err := m.Lstat("/mount/locked")
	assert.ErrorIs(t, err, boom)
}

func TestMemoryFSMkdirAllThroughFile(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.CreateFileT(t, m, "/file", "x")
	assert.Error(t, m.MkdirAll("/file/sub", 0755))
}

func TestMemoryFSPaths(t *testing.T) {
	m := testutil.NewMemoryFS()
	testutil.CreateFileT(t, m, "/b/file", "")
	testutil.CreateDirT(t, m, "/a")
	assert.Equal(t, []string{"/a", "/b", "/b/file"}, m.Paths())
}
