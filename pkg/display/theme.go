package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/toolkit/pkg/reconcile"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	CreateColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	UpdateColor = lipgloss.AdaptiveColor{
		Light: "#007ACC", // Blue
		Dark:  "#3D9EFF",
	}

	RemoveColor = lipgloss.AdaptiveColor{
		Light: "#C82333", // Red
		Dark:  "#E05260",
	}

	ConflictColor = lipgloss.AdaptiveColor{
		Light: "#DC3545",
		Dark:  "#FF6B7D",
	}

	PackageColor = lipgloss.AdaptiveColor{
		Light: "#17A2B8", // Cyan
		Dark:  "#4DD0E1",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Gray
		Dark:  "#A0A8B0",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}
)

// tags are the bracketed labels printed for each action
var tags = map[types.Action]string{
	types.ActionCheckPackage:   "CHECK",
	types.ActionInstallPackage: "INSTALL",
	types.ActionRemovePackage:  "REMOVE",
	types.ActionCreatedDir:     "+DIR",
	types.ActionCreatedLink:    "+LINK",
	types.ActionRelinked:       "~LINK",
	types.ActionRemovedLink:    "-LINK",
	types.ActionRemovedDir:     "-DIR",
	types.ActionConflict:       "CONFLICT",
	types.ActionUnchanged:      "EXISTS",
	types.ActionFailed:         "FAILED",
}

// styles holds the styles bound to one lipgloss renderer
type styles struct {
	actions  map[types.Action]lipgloss.Style
	statuses map[reconcile.Status]lipgloss.Style
	pkg      lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	bold     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}
	return styles{
		actions: map[types.Action]lipgloss.Style{
			types.ActionCheckPackage:   fg(UpdateColor),
			types.ActionInstallPackage: fg(CreateColor).Bold(true),
			types.ActionRemovePackage:  fg(RemoveColor).Bold(true),
			types.ActionCreatedDir:     fg(CreateColor),
			types.ActionCreatedLink:    fg(CreateColor),
			types.ActionRelinked:       fg(UpdateColor),
			types.ActionRemovedLink:    fg(RemoveColor),
			types.ActionRemovedDir:     fg(RemoveColor),
			types.ActionConflict:       fg(ConflictColor).Bold(true),
			types.ActionUnchanged:      fg(MutedColor),
			types.ActionFailed:         fg(ConflictColor).Bold(true),
		},
		statuses: map[reconcile.Status]lipgloss.Style{
			reconcile.StatusOK:          fg(CreateColor),
			reconcile.StatusMissing:     fg(WarningColor),
			reconcile.StatusWrongTarget: fg(UpdateColor),
			reconcile.StatusConflict:    fg(ConflictColor).Bold(true),
			reconcile.StatusStale:       fg(RemoveColor),
		},
		pkg:     fg(PackageColor),
		muted:   fg(MutedColor),
		warning: fg(WarningColor).Bold(true),
		bold:    r.NewStyle().Bold(true),
	}
}
