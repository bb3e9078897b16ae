package types

// Action names what happened to a path (or package) during a run.
type Action string

const (
	ActionCreatedDir  Action = "created-dir"
	ActionCreatedLink Action = "created-link"
	ActionRelinked    Action = "relinked"
	ActionRemovedLink Action = "removed-link"
	ActionRemovedDir  Action = "removed-dir"
	ActionConflict    Action = "conflict"
	ActionUnchanged   Action = "unchanged"

	// ActionFailed reports a per-path filesystem error that is neither a
	// conflict nor fatal to the run.
	ActionFailed Action = "failed"

	// Package lifecycle events, emitted before path events.
	ActionCheckPackage   Action = "check-package"
	ActionInstallPackage Action = "install-package"
	ActionRemovePackage  Action = "remove-package"
)

// IsMutation reports whether the action changed the filesystem.
func (a Action) IsMutation() bool {
	switch a {
	case ActionCreatedDir, ActionCreatedLink, ActionRelinked, ActionRemovedLink, ActionRemovedDir:
		return true
	}
	return false
}

// IsPackageEvent reports whether the action concerns a whole package.
func (a Action) IsPackageEvent() bool {
	switch a {
	case ActionCheckPackage, ActionInstallPackage, ActionRemovePackage:
		return true
	}
	return false
}

// Event is a single entry of a reconciliation result.
type Event struct {
	Action Action `json:"action"`

	// Path is mount-relative for path events and the namespaced package
	// name for package events.
	Path string `json:"path"`

	// Target is the catalog-relative link target, when there is one.
	Target string `json:"target,omitempty"`

	// Package is the namespaced name of the package the event belongs to.
	Package string `json:"package,omitempty"`

	// Detail explains conflicts and failures.
	Detail string `json:"detail,omitempty"`
}
