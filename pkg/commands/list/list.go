// Package list implements the list command.
package list

import (
	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
)

// PackageInfo describes one catalog package and its selection.
type PackageInfo struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Default   bool   `json:"default"`
	Override  *bool  `json:"override,omitempty"`
	Active    bool   `json:"active"`
	Installed bool   `json:"installed"`
	Paths     int    `json:"paths"`
}

// Result holds the listed packages, sorted by name.
type Result struct {
	Packages []PackageInfo     `json:"packages"`
	Warnings []catalog.Warning `json:"-"`
}

// List reports every package in the catalog.
func List(opts workspace.Options) (*Result, error) {
	logger := logging.GetLogger("commands.list")
	logger.Debug().Str("command", "List").Msg("Executing command")

	ws, err := workspace.Open(opts)
	if err != nil {
		return nil, err
	}

	cat := ws.Catalog.Catalog
	active := make(map[string]bool)
	for _, name := range reconcile.ResolveActive(cat, ws.State.Selected) {
		active[name] = true
	}

	result := &Result{Packages: []PackageInfo{}, Warnings: ws.Catalog.Warnings}
	for _, name := range cat.Names() {
		pkg := cat[name]
		info := PackageInfo{
			Name:      name,
			Source:    pkg.Source,
			Default:   pkg.Active,
			Active:    active[name],
			Installed: ws.State.IsInstalled(name),
			Paths:     len(pkg.Links),
		}
		if v, ok := ws.State.Override(name); ok {
			info.Override = &v
		}
		result.Packages = append(result.Packages, info)
	}

	logger.Info().Str("command", "List").Int("packageCount", len(result.Packages)).Msg("Command finished")
	return result, nil
}
