package filesystem

import (
	"io/fs"
	"os"
	"sort"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Path kinds reported by Adapter.Kind
const (
	KindMissing   = "missing"
	KindFile      = "file"
	KindDirectory = "directory"
	KindSymlink   = "symlink"
	KindOther     = "special file"
)

// Adapter exposes the filesystem primitives the reconciler works with.
// None of its type tests follow symlinks: a symlink to a directory is a
// symlink, not a directory.
type Adapter struct {
	fs types.FS
}

// NewAdapter wraps a types.FS.
func NewAdapter(fsys types.FS) *Adapter {
	return &Adapter{fs: fsys}
}

// FS returns the wrapped filesystem.
func (a *Adapter) FS() types.FS {
	return a.fs
}

// Kind describes what currently occupies path.
func (a *Adapter) Kind(path string) string {
	info, err := a.fs.Lstat(path)
	if err != nil {
		return KindMissing
	}
	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// IsSymlink reports whether path is a symlink.
func (a *Adapter) IsSymlink(path string) bool {
	return a.Kind(path) == KindSymlink
}

// IsDirectory reports whether path is a real directory.
func (a *Adapter) IsDirectory(path string) bool {
	return a.Kind(path) == KindDirectory
}

// ResolvesToDirectory reports whether path is a directory or a symlink
// that resolves to one.
func (a *Adapter) ResolvesToDirectory(path string) bool {
	info, err := a.fs.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether anything, including a dangling symlink, is at path.
func (a *Adapter) Exists(path string) bool {
	return a.Kind(path) != KindMissing
}

// ReadLink returns the target of the symlink at path.
func (a *Adapter) ReadLink(path string) (string, error) {
	target, err := a.fs.Readlink(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read symlink").
			WithDetail("path", path)
	}
	return target, nil
}

// CreateSymlink creates a symlink at path pointing at target.
func (a *Adapter) CreateSymlink(path, target string) error {
	if err := a.fs.Symlink(target, path); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "cannot create symlink").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	return nil
}

// RemoveSymlink removes the symlink at path. It refuses to remove anything
// that is not a symlink.
func (a *Adapter) RemoveSymlink(path string) error {
	if !a.IsSymlink(path) {
		return errors.New(errors.ErrSymlinkRemove, "path is not a symlink").
			WithDetail("path", path)
	}
	if err := a.fs.Remove(path); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkRemove, "cannot remove symlink").
			WithDetail("path", path)
	}
	return nil
}

// MakeDirectories creates path and any missing ancestors. It is a no-op
// when path is already a directory.
func (a *Adapter) MakeDirectories(path string) error {
	if err := a.fs.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create directory").
			WithDetail("path", path)
	}
	return nil
}

// RemoveDirectory removes path, which must be an empty directory.
func (a *Adapter) RemoveDirectory(path string) error {
	if !a.IsDirectory(path) {
		return errors.New(errors.ErrDirRemove, "path is not a directory").
			WithDetail("path", path)
	}
	if err := a.fs.Remove(path); err != nil {
		return errors.Wrap(err, errors.ErrDirRemove, "cannot remove directory").
			WithDetail("path", path)
	}
	return nil
}

// ListChildren returns the names of the entries in path, sorted.
func (a *Adapter) ListChildren(path string) ([]string, error) {
	entries, err := a.fs.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "directory does not exist").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot list directory").
			WithDetail("path", path)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// IsEmptyDirectory reports whether path is a directory with no entries.
func (a *Adapter) IsEmptyDirectory(path string) bool {
	if !a.IsDirectory(path) {
		return false
	}
	children, err := a.ListChildren(path)
	return err == nil && len(children) == 0
}
