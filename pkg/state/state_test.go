package state_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/state"
	"github.com/arthur-debert/toolkit/pkg/types"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := state.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Empty(t, s.Installed)
	assert.Empty(t, s.Selected)
	assert.Empty(t, s.Links)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yml")

	s := state.New()
	s.Record([]string{"tools/git", "shell/bash"}, types.LinkMap{
		".bashrc":      types.FileLink("shell/bash/bashrc"),
		"config/empty": types.DirectoryAnchor(),
	})
	s.SetOverride("tools/git", true)
	s.SetOverride("shell/zsh", false)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# toolkit state written "))
	assert.Contains(t, string(data), "config/empty: true")
	assert.NoFileExists(t, path+".tmp")

	loaded, err := state.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"shell/bash", "tools/git"}, loaded.Installed)
	assert.Equal(t, map[string]bool{"tools/git": true, "shell/zsh": false}, loaded.Selected)
	assert.Equal(t, s.Links, loaded.Links)
	assert.True(t, loaded.IsInstalled("shell/bash"))
	assert.False(t, loaded.IsInstalled("shell/zsh"))
	assert.False(t, s.BuiltAt.IsZero())
	assert.True(t, s.BuiltAt.Equal(loaded.BuiltAt), "want %v, got %v", s.BuiltAt, loaded.BuiltAt)
}

func TestSelectionOnlyStateHasNoBuildTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yml")

	s := state.New()
	s.SetOverride("a/b", true)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "built_at")

	loaded, err := state.Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.BuiltAt.IsZero())
}

func TestLoadPrunesUnsetSelections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
installed: [a/b]
selected:
  a/b: true
  a/c: ~
links:
  .vimrc: a/b/vimrc
`), 0644))

	s, err := state.Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a/b": true}, s.Selected)
	assert.Equal(t, types.FileLink("a/b/vimrc"), s.Links[".vimrc"])
}

func TestLoadCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yml")
	require.NoError(t, os.WriteFile(path, []byte("links:\n  .vimrc: false\n"), 0644))

	_, err := state.Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateLoad))
}

func TestSaveUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := state.New().Save(filepath.Join(blocker, "state.yml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateSave))
}

func TestOverrides(t *testing.T) {
	s := state.New()

	_, ok := s.Override("a/b")
	assert.False(t, ok)

	s.SetOverride("a/b", false)
	v, ok := s.Override("a/b")
	assert.True(t, ok)
	assert.False(t, v)

	assert.True(t, s.ClearOverride("a/b"))
	assert.False(t, s.ClearOverride("a/b"))
	_, ok = s.Override("a/b")
	assert.False(t, ok)
}
