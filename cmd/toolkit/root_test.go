package toolkit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/testutil"
)

type cliEnv struct {
	root  string
	mount string
	state string
}

func setupCLI(t *testing.T) cliEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("TOOLKIT_CONFIG_DIR", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "xdg-state"))
	t.Setenv("NO_COLOR", "1")

	e := cliEnv{
		root:  filepath.Join(base, "packages"),
		mount: filepath.Join(base, "home"),
		state: filepath.Join(base, "state.yml"),
	}
	require.NoError(t, os.MkdirAll(e.mount, 0755))

	set := testutil.SetupTestSet(t, e.root, "core")
	set.AddManifest(t, `
[[package]]
name = "vim"
default = true
dotfiles = true

[[package]]
name = "git"
dotfiles = true
`)
	set.AddFile(t, "vim/vimrc", "")
	set.AddFile(t, "git/gitconfig", "")
	return e
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--root", e.root, "--mount", e.mount, "--state", e.state, "--format", "text"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, " [INSTALL] core/vim")
	assert.Contains(t, out, "   [+LINK] .vimrc -> core/vim/vimrc")
	assert.Contains(t, out, "1 packages active, 1 paths managed, 1 changes")

	_, err = os.Readlink(filepath.Join(e.mount, ".vimrc"))
	assert.NoError(t, err)

	out, err = e.run(t, "build")
	require.NoError(t, err)
	assert.NotContains(t, out, "[+LINK]")
	assert.Contains(t, out, "0 changes")
}

func TestSelectionThenBuild(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "enable", "git")
	require.NoError(t, err)
	assert.Contains(t, out, "core/git: default -> enabled")

	out, err = e.run(t, "disable", "core/vim")
	require.NoError(t, err)
	assert.Contains(t, out, "core/vim: default -> disabled")

	out, err = e.run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "[+LINK] .gitconfig")
	assert.NotContains(t, out, ".vimrc")

	out, err = e.run(t, "reset", "core/vim")
	require.NoError(t, err)
	assert.Contains(t, out, "core/vim: disabled -> default")
}

func TestSelectUnknownPackage(t *testing.T) {
	e := setupCLI(t)

	_, err := e.run(t, "enable", "emacs")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
	assert.Equal(t, 2, ExitCode(err))
}

func TestListCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PACKAGE")
	assert.Contains(t, out, "core/git")
	assert.Contains(t, out, "core/vim")
}

func TestListCommandJSON(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "list", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Packages []struct {
			Name   string `json:"name"`
			Active bool   `json:"active"`
		} `json:"packages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Packages, 2)
	assert.Equal(t, "core/git", result.Packages[0].Name)
	assert.False(t, result.Packages[0].Active)
	assert.True(t, result.Packages[1].Active)
}

func TestStatusCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "missing .vimrc")
	assert.Contains(t, out, "1 of 1 paths need attention")

	_, err = e.run(t, "build")
	require.NoError(t, err)

	out, err = e.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Everything is in sync")
}

func TestInvalidMount(t *testing.T) {
	e := setupCLI(t)
	e.mount = filepath.Join(e.mount, "missing")

	_, err := e.run(t, "build")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMountInvalid))
	assert.Equal(t, 1, ExitCode(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	e := setupCLI(t)

	_, err := e.run(t, "list", "--format", "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 2, ExitCode(err))
}

func TestGenConfigCommand(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[paths]")
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented setting in generated config: %q", line)
	}
}

func TestVersionAndTopics(t *testing.T) {
	e := setupCLI(t)

	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "toolkit version")

	out, err = e.run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "manifest")
	assert.Contains(t, out, "selection")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(errors.New(errors.ErrInvalidInput, "bad")))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrStateSave, "disk full")))
}
