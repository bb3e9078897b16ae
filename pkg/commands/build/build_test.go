package build_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/commands/build"
	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/filesystem"
	"github.com/arthur-debert/toolkit/pkg/state"
	"github.com/arthur-debert/toolkit/pkg/testutil"
	"github.com/arthur-debert/toolkit/pkg/types"
)

type env struct {
	root  string
	mount string
	state string
}

func setup(t *testing.T) env {
	t.Helper()
	base := t.TempDir()
	e := env{
		root:  filepath.Join(base, "packages"),
		mount: filepath.Join(base, "home"),
		state: filepath.Join(base, "config", "state.yml"),
	}
	require.NoError(t, os.MkdirAll(e.mount, 0755))

	set := testutil.SetupTestSet(t, e.root, "core")
	set.AddManifest(t, `
[[package]]
name = "vim"
default = true
dotfiles = true

[[package]]
name = "tmux"
dotfiles = true
`)
	set.AddFile(t, "vim/vimrc", "set nocompatible")
	set.AddFile(t, "vim/vim/colors/dark.vim", "")
	set.AddFile(t, "tmux/tmux.conf", "")
	return e
}

func (e env) options() build.Options {
	return build.Options{
		Workspace: workspace.Options{
			PackageRoot: e.root,
			Mount:       e.mount,
			StateFile:   e.state,
		},
	}
}

func TestBuild_LinksDefaultPackages(t *testing.T) {
	e := setup(t)

	var events []types.Event
	opts := e.options()
	opts.Sink = types.EventSinkFunc(func(ev types.Event) { events = append(events, ev) })

	result, err := build.Build(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"core/vim"}, result.Active)
	assert.Equal(t, len(result.Events), len(events))
	assert.Equal(t, types.ActionInstallPackage, events[0].Action)

	target, err := os.Readlink(filepath.Join(e.mount, ".vimrc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.root, "core", "vim", "vimrc"), target)
	testutil.AssertNotExists(t, filesystem.NewOS(), filepath.Join(e.mount, ".tmux.conf"))

	st, err := state.Load(e.state)
	require.NoError(t, err)
	assert.Equal(t, []string{"core/vim"}, st.Installed)
	assert.Equal(t, types.FileLink("core/vim/vimrc"), st.Links[".vimrc"])
}

func TestBuild_SecondRunIsQuiet(t *testing.T) {
	e := setup(t)

	_, err := build.Build(e.options())
	require.NoError(t, err)

	result, err := build.Build(e.options())
	require.NoError(t, err)
	assert.Zero(t, result.Mutations())
	assert.Equal(t, 1, result.Count(types.ActionCheckPackage))
}

func TestBuild_RetractsDisabledPackage(t *testing.T) {
	e := setup(t)

	_, err := build.Build(e.options())
	require.NoError(t, err)

	st, err := state.Load(e.state)
	require.NoError(t, err)
	st.SetOverride("core/vim", false)
	require.NoError(t, st.Save(e.state))

	result, err := build.Build(e.options())
	require.NoError(t, err)
	assert.Empty(t, result.Active)
	assert.Equal(t, 1, result.Count(types.ActionRemovePackage))

	_, err = os.Lstat(filepath.Join(e.mount, ".vimrc"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(e.mount, ".vim"))
	assert.True(t, os.IsNotExist(err), "empty directories are pruned")
}

func TestBuild_ReportsCatalogWarnings(t *testing.T) {
	e := setup(t)
	broken := testutil.SetupTestSet(t, e.root, "broken")
	broken.AddManifest(t, "[[package]]\nname = 42\n")

	var warnings []catalog.Warning
	opts := e.options()
	opts.OnWarning = func(w catalog.Warning) { warnings = append(warnings, w) }

	result, err := build.Build(opts)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken", warnings[0].Set)
	assert.Equal(t, warnings, result.Warnings)
}

func TestBuild_InvalidMount(t *testing.T) {
	e := setup(t)
	e.mount = filepath.Join(e.mount, "missing")

	result, err := build.Build(e.options())
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMountInvalid))
}

func TestBuild_MissingCatalogRoot(t *testing.T) {
	e := setup(t)
	e.root = filepath.Join(e.root, "nope")

	_, err := build.Build(e.options())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
