package display_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/display"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
	"github.com/arthur-debert/toolkit/pkg/types"
)

func textPrinter(buf *bytes.Buffer, showUnchanged bool) *display.Printer {
	return display.New(buf, display.Options{
		Format:        config.FormatText,
		Color:         config.ColorNever,
		ShowUnchanged: showUnchanged,
	})
}

func TestPrinter_EmitText(t *testing.T) {
	tests := []struct {
		name  string
		event types.Event
		want  string
	}{
		{
			name:  "created link",
			event: types.Event{Action: types.ActionCreatedLink, Path: ".vimrc", Target: "core/vim/vimrc", Package: "core/vim"},
			want:  "   [+LINK] .vimrc -> core/vim/vimrc",
		},
		{
			name:  "created dir",
			event: types.Event{Action: types.ActionCreatedDir, Path: ".config/nvim", Package: "core/nvim"},
			want:  "    [+DIR] .config/nvim/",
		},
		{
			name:  "removed dir",
			event: types.Event{Action: types.ActionRemovedDir, Path: ".config"},
			want:  "    [-DIR] .config/",
		},
		{
			name:  "relinked",
			event: types.Event{Action: types.ActionRelinked, Path: ".zshrc", Target: "core/zsh/zshrc"},
			want:  "   [~LINK] .zshrc -> core/zsh/zshrc",
		},
		{
			name: "conflict with detail",
			event: types.Event{
				Action: types.ActionConflict, Path: ".gitconfig", Target: "core/git/gitconfig",
				Package: "core/git", Detail: "exists as file",
			},
			want: "[CONFLICT] .gitconfig -> core/git/gitconfig (core/git) : exists as file",
		},
		{
			name:  "anchor conflict shows directory",
			event: types.Event{Action: types.ActionConflict, Path: ".local/bin", Target: "<dir>", Package: "core/bin"},
			want:  "[CONFLICT] .local/bin/ (core/bin)",
		},
		{
			name:  "install package",
			event: types.Event{Action: types.ActionInstallPackage, Package: "core/vim"},
			want:  " [INSTALL] core/vim",
		},
		{
			name:  "check package",
			event: types.Event{Action: types.ActionCheckPackage, Package: "core/vim"},
			want:  "   [CHECK] core/vim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			textPrinter(&buf, false).Emit(tt.event)
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestPrinter_UnchangedHiddenByDefault(t *testing.T) {
	e := types.Event{Action: types.ActionUnchanged, Path: ".vimrc", Target: "core/vim/vimrc"}

	var quiet bytes.Buffer
	textPrinter(&quiet, false).Emit(e)
	assert.Empty(t, quiet.String())

	var verbose bytes.Buffer
	textPrinter(&verbose, true).Emit(e)
	assert.Equal(t, "  [EXISTS] .vimrc -> core/vim/vimrc\n", verbose.String())
}

func TestPrinter_NoEscapesWhenColorOff(t *testing.T) {
	var buf bytes.Buffer
	p := display.New(&buf, display.Options{Format: config.FormatTerm, Color: config.ColorNever})
	p.Emit(types.Event{Action: types.ActionConflict, Path: "x", Package: "a/b"})
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := display.New(&buf, display.Options{Format: config.FormatJSON})
	assert.Equal(t, config.FormatJSON, p.Format())

	p.Emit(types.Event{Action: types.ActionCreatedLink, Path: ".vimrc", Target: "core/vim/vimrc", Package: "core/vim"})
	p.Warning("set broken: bad manifest")
	p.Summary(&reconcile.Result{
		Active: []string{"core/vim"},
		Links:  types.LinkMap{".vimrc": types.FileLink("core/vim/vimrc")},
		Events: []types.Event{{Action: types.ActionCreatedLink, Path: ".vimrc"}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var event types.Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, types.ActionCreatedLink, event.Action)
	assert.Equal(t, ".vimrc", event.Path)

	var warning map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &warning))
	assert.Equal(t, "set broken: bad manifest", warning["warning"])

	var summary struct {
		Summary map[string]int `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &summary))
	assert.Equal(t, 1, summary.Summary["active"])
	assert.Equal(t, 1, summary.Summary["changes"])
	assert.Equal(t, 0, summary.Summary["conflicts"])
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	textPrinter(&buf, false).Summary(&reconcile.Result{
		Active: []string{"a/x", "a/y"},
		Links:  types.LinkMap{"f": types.FileLink("a/x/f")},
		Events: []types.Event{
			{Action: types.ActionCreatedLink, Path: "f"},
			{Action: types.ActionConflict, Path: "g"},
		},
	})
	assert.Equal(t, "2 packages active, 1 paths managed, 1 changes, 1 conflicts\n", buf.String())
}

func TestPrinter_Status(t *testing.T) {
	t.Run("in sync", func(t *testing.T) {
		var buf bytes.Buffer
		textPrinter(&buf, false).Status(&reconcile.Inspection{
			Paths: []reconcile.PathStatus{{Path: ".vimrc", Status: reconcile.StatusOK}},
		})
		assert.Equal(t, "Everything is in sync (1 paths)\n", buf.String())
	})

	t.Run("needs attention", func(t *testing.T) {
		var buf bytes.Buffer
		textPrinter(&buf, false).Status(&reconcile.Inspection{
			Paths: []reconcile.PathStatus{
				{Path: ".vimrc", Status: reconcile.StatusOK},
				{Path: ".zshrc", Status: reconcile.StatusMissing, Target: "core/zsh/zshrc", Package: "core/zsh"},
				{Path: ".old", Status: reconcile.StatusStale, Target: "core/x/old"},
			},
		})
		out := buf.String()
		assert.NotContains(t, out, ".vimrc")
		assert.Contains(t, out, "     missing .zshrc -> core/zsh/zshrc (core/zsh)\n")
		assert.Contains(t, out, "       stale .old -> core/x/old\n")
		assert.Contains(t, out, "2 of 3 paths need attention\n")
	})
}

func TestDetectFormat_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, config.FormatText, display.DetectFormat(&buf))
}

func TestPrinter_LastBuild(t *testing.T) {
	var never bytes.Buffer
	textPrinter(&never, false).LastBuild(time.Time{})
	assert.Equal(t, "Never built\n", never.String())

	var recent bytes.Buffer
	textPrinter(&recent, false).LastBuild(time.Now().Add(-3 * time.Hour))
	assert.Equal(t, "Last build 3 hours ago\n", recent.String())

	var js bytes.Buffer
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	display.New(&js, display.Options{Format: config.FormatJSON}).LastBuild(at)
	assert.JSONEq(t, `{"last_build":"2024-05-01T12:00:00Z"}`, js.String())
}
