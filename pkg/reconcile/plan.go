package reconcile

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/arthur-debert/toolkit/pkg/paths"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Plan is the desired state computed from the active packages.
type Plan struct {
	// Links is the desired LinkMap, keyed by mount-relative destination
	Links types.LinkMap

	// Owners maps each claimed destination to the package that won it
	Owners map[string]string

	// Events holds duplicate-claim (unchanged) and conflict events
	Events []types.Event
}

// BuildPlan computes the desired LinkMap. active must be sorted; it decides
// which package wins a contested path. File-link targets are stored
// relative to catalogRoot.
func BuildPlan(catalog types.Catalog, active []string, catalogRoot string) *Plan {
	plan := &Plan{
		Links:  make(types.LinkMap),
		Owners: make(map[string]string),
	}

	for _, name := range active {
		pkg, ok := catalog[name]
		if !ok {
			continue
		}
		for _, rel := range pkg.SortedLinkPaths() {
			dest := pkg.Destination(rel)
			if dest == "" {
				plan.mountClaim(name, pkg.Links[rel])
				continue
			}
			want := resolveTarget(pkg, pkg.Links[rel], catalogRoot)
			plan.claim(name, dest, want)
		}
	}
	return plan
}

func (p *Plan) claim(name, dest string, want types.LinkTarget) {
	have, claimed := p.Links[dest]
	if !claimed {
		p.Links[dest] = want
		p.Owners[dest] = name
		return
	}

	owner := p.Owners[dest]
	if have == want {
		p.Events = append(p.Events, types.Event{
			Action:  types.ActionUnchanged,
			Path:    dest,
			Target:  want.String(),
			Package: name,
			Detail:  "also claimed by " + owner,
		})
		return
	}

	var detail string
	switch {
	case have.IsDirectory():
		detail = fmt.Sprintf("cannot replace directory claimed by %s with link to %s", owner, want.Target)
	case want.IsDirectory():
		detail = fmt.Sprintf("cannot replace link to %s claimed by %s with directory", have.Target, owner)
	default:
		detail = fmt.Sprintf("existing link to %s claimed by %s conflicts with %s", have.Target, owner, want.Target)
	}
	p.Events = append(p.Events, types.Event{
		Action:  types.ActionConflict,
		Path:    dest,
		Target:  want.String(),
		Package: name,
		Detail:  detail,
	})
}

// mountClaim records a claim on the mount itself, which is never managed.
// An anchor there already holds; a link cannot.
func (p *Plan) mountClaim(name string, want types.LinkTarget) {
	e := types.Event{Action: types.ActionUnchanged, Path: ".", Target: want.String(), Package: name, Detail: "mount directory"}
	if !want.IsDirectory() {
		e.Action = types.ActionConflict
		e.Detail = "cannot replace the mount with a link"
	}
	p.Events = append(p.Events, e)
}

// resolveTarget rewrites a package-relative file link as a path relative to
// the catalog root. Sources outside the root keep their absolute path.
func resolveTarget(pkg *types.Package, target types.LinkTarget, catalogRoot string) types.LinkTarget {
	if target.IsDirectory() {
		return target
	}
	abs := filepath.Join(pkg.Source, filepath.FromSlash(target.Target))
	if rel, ok := paths.RelativeTo(catalogRoot, abs); ok {
		return types.FileLink(rel)
	}
	return types.FileLink(filepath.ToSlash(abs))
}

// sourcePath returns the absolute path a file link should point at.
func sourcePath(catalogRoot, target string) string {
	if path.IsAbs(target) {
		return filepath.FromSlash(target)
	}
	return filepath.Join(catalogRoot, filepath.FromSlash(target))
}
