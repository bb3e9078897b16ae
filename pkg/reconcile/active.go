package reconcile

import (
	"sort"

	"github.com/arthur-debert/toolkit/pkg/types"
)

// ResolveActive returns the sorted names of the packages that are active.
// An explicit override always wins; without one the package default
// applies. Overrides naming packages absent from the catalog are ignored.
func ResolveActive(catalog types.Catalog, overrides map[string]bool) []string {
	active := make([]string, 0, len(catalog))
	for name, pkg := range catalog {
		if pkg == nil {
			continue
		}
		selected, ok := overrides[name]
		if (ok && selected) || (!ok && pkg.Active) {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	return active
}

// packageEvents classifies packages against the previous run: kept packages
// are checked, new ones installed, dropped ones removed.
func packageEvents(previous, active []string) []types.Event {
	was := make(map[string]bool, len(previous))
	for _, name := range previous {
		was[name] = true
	}
	is := make(map[string]bool, len(active))
	for _, name := range active {
		is[name] = true
	}

	var checks, installs, removes []types.Event
	for _, name := range active {
		if was[name] {
			checks = append(checks, types.Event{Action: types.ActionCheckPackage, Package: name})
		} else {
			installs = append(installs, types.Event{Action: types.ActionInstallPackage, Package: name})
		}
	}
	sorted := append([]string(nil), previous...)
	sort.Strings(sorted)
	for _, name := range sorted {
		if !is[name] {
			removes = append(removes, types.Event{Action: types.ActionRemovePackage, Package: name})
		}
	}

	events := make([]types.Event, 0, len(checks)+len(installs)+len(removes))
	events = append(events, checks...)
	events = append(events, installs...)
	return append(events, removes...)
}
