package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/paths"
)

func TestNewResolution(t *testing.T) {
	home := t.TempDir()
	xdgConfig := t.TempDir()

	tests := []struct {
		name      string
		env       map[string]string
		opts      paths.Options
		wantRoot  string
		wantMount string
		wantState string
	}{
		{
			name:      "defaults",
			wantRoot:  filepath.Join(home, ".toolkit", "packages"),
			wantMount: home,
			wantState: filepath.Join(xdgConfig, "toolkit", "state.yml"),
		},
		{
			name:      "environment root",
			env:       map[string]string{paths.EnvPackageRoot: "/srv/packages"},
			wantRoot:  "/srv/packages",
			wantMount: home,
			wantState: filepath.Join(xdgConfig, "toolkit", "state.yml"),
		},
		{
			name: "explicit options win",
			env:  map[string]string{paths.EnvPackageRoot: "/srv/packages"},
			opts: paths.Options{
				PackageRoot: "~/pkgs",
				Mount:       "/mnt/target/",
				StateFile:   "/var/state.yml",
			},
			wantRoot:  filepath.Join(home, "pkgs"),
			wantMount: "/mnt/target",
			wantState: "/var/state.yml",
		},
		{
			name:      "config dir override moves state",
			env:       map[string]string{paths.EnvConfigDir: "/etc/toolkit"},
			wantRoot:  filepath.Join(home, ".toolkit", "packages"),
			wantMount: home,
			wantState: "/etc/toolkit/state.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			t.Setenv("XDG_CONFIG_HOME", xdgConfig)
			t.Setenv(paths.EnvPackageRoot, "")
			t.Setenv(paths.EnvConfigDir, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p, err := paths.New(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, p.PackageRoot())
			assert.Equal(t, tt.wantMount, p.Mount())
			assert.Equal(t, tt.wantState, p.StateFile())
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	assert.Equal(t, "/home/user", paths.ExpandHome("~"))
	assert.Equal(t, "/home/user/x", paths.ExpandHome("~/x"))
	assert.Equal(t, "~other/x", paths.ExpandHome("~other/x"))
	assert.Equal(t, "/abs", paths.ExpandHome("/abs"))
	assert.Equal(t, "", paths.ExpandHome(""))
}

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"inside", "/catalog/shell/bash/bashrc", "shell/bash/bashrc", true},
		{"root itself", "/catalog", ".", true},
		{"outside", "/elsewhere/file", "", false},
		{"parent", "/", "", false},
		{"sibling with shared prefix", "/catalog-old/file", "", false},
		{"dotdot-named child", "/catalog/..hidden", "..hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, ok := paths.RelativeTo("/catalog", tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, rel)
		})
	}
}

func TestLogAndConfigLocations(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv(paths.EnvConfigDir, "")

	assert.Equal(t, "/xdg/state/toolkit/toolkit.log", paths.LogFile())
	assert.Equal(t, "/xdg/config/toolkit/config.toml", paths.ConfigFile())

	t.Setenv(paths.EnvConfigDir, "/etc/toolkit")
	assert.Equal(t, "/etc/toolkit/config.toml", paths.ConfigFile())
}

func TestNormalize(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	got, err := paths.Normalize("~/dots/../pkgs/")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/pkgs", got)

	_, err = paths.Normalize("")
	assert.Error(t, err)
}
