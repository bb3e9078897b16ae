package reconcile

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/toolkit/pkg/filesystem"
	"github.com/arthur-debert/toolkit/pkg/state"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Status classifies one managed path without changing anything.
type Status string

const (
	StatusOK          Status = "ok"
	StatusMissing     Status = "missing"
	StatusWrongTarget Status = "wrong-target"
	StatusConflict    Status = "conflict"
	StatusStale       Status = "stale"
)

// PathStatus is the inspected state of one destination.
type PathStatus struct {
	Path    string `json:"path"`
	Status  Status `json:"status"`
	Target  string `json:"target,omitempty"`
	Package string `json:"package,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Inspection is the read-only counterpart of a run.
type Inspection struct {
	Active []string
	Paths  []PathStatus
}

// Count returns how many paths have status s.
func (i *Inspection) Count(s Status) int {
	n := 0
	for _, p := range i.Paths {
		if p.Status == s {
			n++
		}
	}
	return n
}

// InSync reports whether a run would change nothing.
func (i *Inspection) InSync() bool {
	for _, p := range i.Paths {
		if p.Status != StatusOK {
			return false
		}
	}
	return true
}

// Inspect compares what a run would want with the filesystem and the
// previous state. It performs no writes.
func (rc *Reconciler) Inspect(catalog types.Catalog, st *state.State) (*Inspection, error) {
	if !rc.fs.ResolvesToDirectory(rc.opts.Mount) {
		return nil, mountError(rc.opts.Mount)
	}
	if st == nil {
		st = state.New()
	}

	active := ResolveActive(catalog, st.Selected)
	plan := BuildPlan(catalog, active, rc.opts.CatalogRoot)
	r := &run{fs: rc.fs, mount: rc.opts.Mount, catalogRoot: rc.opts.CatalogRoot}

	var paths []PathStatus
	for _, dest := range plan.Links.SortedPaths() {
		paths = append(paths, r.inspectPath(dest, plan.Links[dest], plan.Owners[dest], st.Links))
	}
	for _, e := range plan.Events {
		if e.Action == types.ActionConflict {
			paths = append(paths, PathStatus{
				Path:    e.Path,
				Status:  StatusConflict,
				Target:  e.Target,
				Package: e.Package,
				Detail:  e.Detail,
			})
		}
	}
	for _, dest := range st.Links.SortedPaths() {
		if _, wanted := plan.Links[dest]; wanted {
			continue
		}
		prev := st.Links[dest]
		abs := r.abs(dest)
		if (prev.IsDirectory() && rc.fs.IsDirectory(abs)) || (!prev.IsDirectory() && rc.fs.IsSymlink(abs)) {
			paths = append(paths, PathStatus{Path: dest, Status: StatusStale, Target: prev.String()})
		}
	}

	sort.SliceStable(paths, func(i, j int) bool { return paths[i].Path < paths[j].Path })
	return &Inspection{Active: active, Paths: paths}, nil
}

// inspectPath mirrors the decisions sync would take for dest. Entries a
// run replaces because previous records them as managed are wrong-target,
// not conflicts.
func (r *run) inspectPath(dest string, target types.LinkTarget, owner string, previous types.LinkMap) PathStatus {
	abs := r.abs(dest)
	ps := PathStatus{Path: dest, Target: target.String(), Package: owner}
	kind := r.fs.Kind(abs)
	prev, managed := previous[dest]

	if target.IsDirectory() {
		switch {
		case kind == filesystem.KindDirectory:
			ps.Status = StatusOK
		case kind == filesystem.KindMissing:
			ps.Status = StatusMissing
		case kind == filesystem.KindSymlink && managed && !prev.IsDirectory():
			ps.Status = StatusWrongTarget
			ps.Detail = "managed link, becomes a directory"
		default:
			ps.Status = StatusConflict
			ps.Detail = fmt.Sprintf("path is a %s, expected a directory", kind)
		}
		return ps
	}

	switch kind {
	case filesystem.KindMissing:
		ps.Status = StatusMissing
	case filesystem.KindSymlink:
		current, err := r.fs.ReadLink(abs)
		src := sourcePath(r.catalogRoot, target.Target)
		switch {
		case err != nil:
			ps.Status = StatusConflict
			ps.Detail = err.Error()
		case sameTarget(abs, current, src):
			ps.Status = StatusOK
		default:
			ps.Status = StatusWrongTarget
			ps.Detail = "points at " + current
		}
	case filesystem.KindDirectory:
		if managed && prev.IsDirectory() && r.fs.IsEmptyDirectory(abs) {
			ps.Status = StatusWrongTarget
			ps.Detail = "managed empty directory, becomes a link"
			break
		}
		fallthrough
	default:
		ps.Status = StatusConflict
		ps.Detail = fmt.Sprintf("path is a %s, expected a symlink", kind)
	}
	return ps
}
