package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/testutil"
	"github.com/arthur-debert/toolkit/pkg/types"
)

func TestBuildPlan(t *testing.T) {
	catalog := testutil.NewCatalog(
		testutil.NewPackage("shell", "bash").
			Link("bashrc", "bashrc").
			Anchor("").
			Build(),
		testutil.NewPackage("tools", "git").
			Into("config/git").
			Link("config", "gitconfig").
			Anchor("hooks").
			Build(),
		testutil.NewPackage("ext", "outside").
			Source("/opt/outside").
			Link("tool", "bin/tool").
			Build(),
	)
	active := ResolveActive(catalog, nil)

	plan := BuildPlan(catalog, active, "/catalog")
	assert.Equal(t, []types.Event{{
		Action:  types.ActionUnchanged,
		Path:    ".",
		Target:  "<dir>",
		Package: "shell/bash",
		Detail:  "mount directory",
	}}, plan.Events)
	assert.Equal(t, types.LinkMap{
		"bashrc":            types.FileLink("shell/bash/bashrc"),
		"config/git/config": types.FileLink("tools/git/gitconfig"),
		"config/git/hooks":  types.DirectoryAnchor(),
		"tool":              types.FileLink("/opt/outside/bin/tool"),
	}, plan.Links)
	assert.Equal(t, "tools/git", plan.Owners["config/git/hooks"])
}

func TestBuildPlanClaims(t *testing.T) {
	tests := []struct {
		name       string
		pkgs       []*types.Package
		wantLinks  types.LinkMap
		wantEvents []types.Action
		loser      string
	}{
		{
			name: "different link targets conflict",
			pkgs: []*types.Package{
				testutil.NewPackage("b", "tool").Link("bin/tool", "tool").Build(),
				testutil.NewPackage("a", "tool").Link("bin/tool", "tool").Build(),
			},
			wantLinks:  types.LinkMap{"bin/tool": types.FileLink("a/tool/tool")},
			wantEvents: []types.Action{types.ActionConflict},
			loser:      "b/tool",
		},
		{
			name: "shared anchor is unchanged",
			pkgs: []*types.Package{
				testutil.NewPackage("a", "one").Anchor("config").Build(),
				testutil.NewPackage("b", "two").Anchor("config").Build(),
			},
			wantLinks:  types.LinkMap{"config": types.DirectoryAnchor()},
			wantEvents: []types.Action{types.ActionUnchanged},
			loser:      "b/two",
		},
		{
			name: "identical link target is unchanged",
			pkgs: []*types.Package{
				testutil.NewPackage("a", "one").Source("/catalog/shared").Link("f", "f").Build(),
				testutil.NewPackage("b", "two").Source("/catalog/shared").Link("f", "f").Build(),
			},
			wantLinks:  types.LinkMap{"f": types.FileLink("shared/f")},
			wantEvents: []types.Action{types.ActionUnchanged},
			loser:      "b/two",
		},
		{
			name: "anchor against link",
			pkgs: []*types.Package{
				testutil.NewPackage("a", "dir").Anchor("config").Build(),
				testutil.NewPackage("b", "file").Link("config", "config").Build(),
			},
			wantLinks:  types.LinkMap{"config": types.DirectoryAnchor()},
			wantEvents: []types.Action{types.ActionConflict},
			loser:      "b/file",
		},
		{
			name: "link against anchor",
			pkgs: []*types.Package{
				testutil.NewPackage("a", "file").Link("config", "config").Build(),
				testutil.NewPackage("b", "dir").Anchor("config").Build(),
			},
			wantLinks:  types.LinkMap{"config": types.FileLink("a/file/config")},
			wantEvents: []types.Action{types.ActionConflict},
			loser:      "b/dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testutil.NewCatalog(tt.pkgs...)
			plan := BuildPlan(catalog, ResolveActive(catalog, nil), "/catalog")

			assert.Equal(t, tt.wantLinks, plan.Links)
			require.Len(t, plan.Events, len(tt.wantEvents))
			for i, action := range tt.wantEvents {
				assert.Equal(t, action, plan.Events[i].Action)
				assert.Equal(t, tt.loser, plan.Events[i].Package)
			}
		})
	}
}

func TestBuildPlanIsDeterministic(t *testing.T) {
	names := []string{"d/x", "b/x", "c/x", "a/x"}
	for i := 0; i < 10; i++ {
		catalog := make(types.Catalog)
		for _, name := range names {
			ns, pkg, _ := types.SplitName(name)
			catalog[name] = testutil.NewPackage(ns, pkg).Link("shared", "file").Build()
		}
		plan := BuildPlan(catalog, ResolveActive(catalog, nil), "/catalog")
		assert.Equal(t, types.FileLink("a/x/file"), plan.Links["shared"])
		assert.Len(t, plan.Events, 3)
	}
}
