package reconcile

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/toolkit/pkg/filesystem"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// sync applies the plan. It returns the LinkMap that actually holds
// afterwards: entries blocked by a conflict or a failure are dropped.
func (r *run) sync(plan *Plan, previous types.LinkMap) types.LinkMap {
	applied := make(types.LinkMap, len(plan.Links))
	r.wanted = plan.Links

	for _, dest := range plan.Links.SortedPaths() {
		target := plan.Links[dest]
		owner := plan.Owners[dest]

		var ok bool
		if target.IsDirectory() {
			ok = r.syncAnchor(dest, owner, previous)
		} else {
			ok = r.syncLink(dest, target.Target, owner, previous)
		}
		if ok {
			applied[dest] = target
		}
	}
	return applied
}

func (r *run) syncAnchor(dest, owner string, previous types.LinkMap) bool {
	abs := r.abs(dest)
	anchor := types.DirectoryAnchor().String()

	switch kind := r.fs.Kind(abs); kind {
	case filesystem.KindDirectory:
		r.emit(types.Event{Action: types.ActionUnchanged, Path: dest, Target: anchor, Package: owner})
		return true

	case filesystem.KindMissing:
		return r.makeDirs(dest, owner, previous)

	case filesystem.KindSymlink:
		// a link this engine made last run may become a directory
		if prev, managed := previous[dest]; managed && !prev.IsDirectory() {
			if !r.removeLink(dest, owner) {
				return false
			}
			return r.makeDirs(dest, owner, previous)
		}
		fallthrough

	default:
		r.emit(types.Event{
			Action:  types.ActionConflict,
			Path:    dest,
			Target:  anchor,
			Package: owner,
			Detail:  fmt.Sprintf("path is a %s, expected a directory", kind),
		})
		return false
	}
}

func (r *run) syncLink(dest, target, owner string, previous types.LinkMap) bool {
	abs := r.abs(dest)
	src := sourcePath(r.catalogRoot, target)

	if parent := filepath.Dir(dest); parent != "." {
		if !r.makeDirs(filepath.ToSlash(parent), owner, previous) {
			return false
		}
	}

	switch kind := r.fs.Kind(abs); kind {
	case filesystem.KindMissing:
		return r.createLink(types.ActionCreatedLink, dest, target, src, owner)

	case filesystem.KindSymlink:
		current, err := r.fs.ReadLink(abs)
		if err != nil {
			r.fail(dest, target, owner, err)
			return false
		}
		if sameTarget(abs, current, src) {
			r.emit(types.Event{Action: types.ActionUnchanged, Path: dest, Target: target, Package: owner})
			return true
		}
		if err := r.fs.RemoveSymlink(abs); err != nil {
			r.fail(dest, target, owner, err)
			return false
		}
		return r.createLink(types.ActionRelinked, dest, target, src, owner)

	case filesystem.KindDirectory:
		// an anchor from last run that is still empty can give way to a link
		if prev, managed := previous[dest]; managed && prev.IsDirectory() && r.fs.IsEmptyDirectory(abs) {
			if err := r.fs.RemoveDirectory(abs); err != nil {
				r.fail(dest, target, owner, err)
				return false
			}
			r.emit(types.Event{Action: types.ActionRemovedDir, Path: dest, Package: owner})
			return r.createLink(types.ActionCreatedLink, dest, target, src, owner)
		}
		fallthrough

	default:
		r.emit(types.Event{
			Action:  types.ActionConflict,
			Path:    dest,
			Target:  target,
			Package: owner,
			Detail:  fmt.Sprintf("path is a %s, expected a symlink", kind),
		})
		return false
	}
}

func (r *run) createLink(action types.Action, dest, target, src, owner string) bool {
	if err := r.fs.CreateSymlink(r.abs(dest), src); err != nil {
		r.fail(dest, target, owner, err)
		return false
	}
	r.emit(types.Event{Action: action, Path: dest, Target: target, Package: owner})
	return true
}

func (r *run) removeLink(dest, owner string) bool {
	if err := r.fs.RemoveSymlink(r.abs(dest)); err != nil {
		r.fail(dest, "", owner, err)
		return false
	}
	r.emit(types.Event{Action: types.ActionRemovedLink, Path: dest, Package: owner})
	return true
}

// makeDirs ensures the mount-relative directory dir exists, reporting each
// directory it creates from the top down. A link this engine made last run
// and no longer wants is removed to make room; any other non-directory in
// the way is a conflict.
func (r *run) makeDirs(dir, owner string, previous types.LinkMap) bool {
	var missing []string
	for d := dir; d != "."; d = filepath.ToSlash(filepath.Dir(d)) {
		abs := r.abs(d)
		if r.staleLink(d, previous) {
			if !r.removeLink(d, owner) {
				return false
			}
			missing = append(missing, d)
			continue
		}
		if r.fs.ResolvesToDirectory(abs) {
			break
		}
		if r.fs.Exists(abs) {
			r.emit(types.Event{
				Action:  types.ActionConflict,
				Path:    d,
				Target:  types.DirectoryAnchor().String(),
				Package: owner,
				Detail:  fmt.Sprintf("path is a %s, expected a directory", r.fs.Kind(abs)),
			})
			return false
		}
		missing = append(missing, d)
	}
	if len(missing) == 0 {
		return true
	}

	if err := r.fs.MakeDirectories(r.abs(dir)); err != nil {
		r.fail(dir, types.DirectoryAnchor().String(), owner, err)
		return false
	}
	for i := len(missing) - 1; i >= 0; i-- {
		r.emit(types.Event{Action: types.ActionCreatedDir, Path: missing[i], Package: owner})
	}
	return true
}

// staleLink reports whether dest holds a symlink recorded as a file link in
// previous that the current plan does not want as a link.
func (r *run) staleLink(dest string, previous types.LinkMap) bool {
	prev, managed := previous[dest]
	if !managed || prev.IsDirectory() {
		return false
	}
	if want, wanted := r.wanted[dest]; wanted && !want.IsDirectory() {
		return false
	}
	return r.fs.IsSymlink(r.abs(dest))
}

// sameTarget compares a link's current target with the wanted source,
// resolving a relative target against the link's directory.
func sameTarget(link, current, want string) bool {
	if !filepath.IsAbs(current) {
		current = filepath.Join(filepath.Dir(link), current)
	}
	return filepath.Clean(current) == filepath.Clean(want)
}
