package reconcile

import (
	"path/filepath"

	"github.com/arthur-debert/toolkit/pkg/types"
)

// cleanup retracts every previous entry missing from applied. It must run
// after sync so a path moving between packages is never deleted in between.
func (r *run) cleanup(previous, applied types.LinkMap) {
	for _, dest := range previous.SortedPaths() {
		if _, kept := applied[dest]; kept {
			continue
		}
		abs := r.abs(dest)

		if r.fs.IsSymlink(abs) {
			if err := r.fs.RemoveSymlink(abs); err != nil {
				r.fail(dest, previous[dest].String(), "", err)
				continue
			}
			r.emit(types.Event{Action: types.ActionRemovedLink, Path: dest, Target: previous[dest].String()})
		}

		start := filepath.Dir(dest)
		if previous[dest].IsDirectory() {
			start = dest
		}
		r.prune(filepath.ToSlash(start), applied)
	}
}

// prune removes empty directories from dir upward. It stops at the first
// directory that is non-empty, not a real directory, still anchored, or the
// mount itself.
func (r *run) prune(dir string, applied types.LinkMap) {
	for ; dir != "." && dir != ""; dir = filepath.ToSlash(filepath.Dir(dir)) {
		if target, anchored := applied[dir]; anchored && target.IsDirectory() {
			return
		}
		abs := r.abs(dir)
		if !r.fs.IsEmptyDirectory(abs) {
			return
		}
		if err := r.fs.RemoveDirectory(abs); err != nil {
			r.fail(dir, "", "", err)
			return
		}
		r.emit(types.Event{Action: types.ActionRemovedDir, Path: dir})
	}
}
