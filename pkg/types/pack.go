package types

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Package is one deployable unit: a source tree plus the destination paths
// it wants inside the mount. Packages are built once when the catalog is
// loaded and are not modified afterwards.
type Package struct {
	// Namespace is the package set the package was declared in
	Namespace string

	// Name is the package name within its set
	Name string

	// Source is the absolute path to the package's file tree
	Source string

	// DestPrefix is prepended to every destination in Links
	DestPrefix string

	// Active is the default activation flag
	Active bool

	// Links maps destination paths (relative to DestPrefix) to targets
	// relative to Source
	Links map[string]LinkTarget
}

// FullName returns the namespaced name, "<set>/<package>".
func (p *Package) FullName() string {
	return JoinName(p.Namespace, p.Name)
}

// SortedLinkPaths returns the package's destination paths in ascending order.
func (p *Package) SortedLinkPaths() []string {
	paths := make([]string, 0, len(p.Links))
	for rel := range p.Links {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

// Destination joins DestPrefix and a relative link path into a
// mount-relative destination. An empty result means the mount root.
func (p *Package) Destination(rel string) string {
	dest := filepath.ToSlash(filepath.Join(p.DestPrefix, rel))
	if dest == "." {
		return ""
	}
	return dest
}

// JoinName builds a namespaced package name.
func JoinName(namespace, name string) string {
	return namespace + "/" + name
}

// SplitName splits a namespaced package name. ok is false when name has no
// namespace separator.
func SplitName(name string) (namespace, pkg string, ok bool) {
	i := strings.Index(name, "/")
	if i <= 0 || i == len(name)-1 {
		return "", name, false
	}
	return name[:i], name[i+1:], true
}

// IsCleanRelative reports whether rel is a relative slash path without ".."
// segments.
func IsCleanRelative(rel string) bool {
	if rel == "" {
		return true
	}
	if path.IsAbs(rel) || filepath.IsAbs(rel) {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// Catalog maps namespaced names to packages.
type Catalog map[string]*Package

// Names returns the catalog's namespaced names in ascending order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
