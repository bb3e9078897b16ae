// Package catalog loads every package set under the package root.
//
// Sets are directories directly below the root, loaded in name order.
// A set without a manifest is skipped silently; a set whose manifest or
// packages fail to load is skipped (in whole or in part) with a warning.
// Neither stops the other sets from loading.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/manifest"
	"github.com/arthur-debert/toolkit/pkg/packages"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Options control catalog loading
type Options struct {
	ManifestFiles []string
	Builder       *packages.Builder
}

// Warning is a recoverable problem found while loading.
type Warning struct {
	Set     string
	Package string
	Err     error
}

func (w Warning) String() string {
	if w.Package != "" {
		return fmt.Sprintf("%s/%s: %v", w.Set, w.Package, w.Err)
	}
	return fmt.Sprintf("%s: %v", w.Set, w.Err)
}

// Result is a loaded catalog plus the warnings collected on the way.
type Result struct {
	Root     string
	Catalog  types.Catalog
	Warnings []Warning
}

// Load reads every package set under root. It only fails when root itself
// cannot be read.
func Load(root string, opts Options) (*Result, error) {
	logger := logging.GetLogger("catalog")

	builder := opts.Builder
	if builder == nil {
		builder = packages.NewBuilder(nil)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "package root does not exist").
				WithDetail("root", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read package root").
			WithDetail("root", root)
	}

	result := &Result{Root: root, Catalog: make(types.Catalog)}
	owners := make(map[string]string)

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if !isSetDir(root, entry) {
			continue
		}
		setDir := filepath.Join(root, entry.Name())

		m, err := manifest.Load(setDir, opts.ManifestFiles)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrManifestNotFound) {
				logger.Debug().Str("set", entry.Name()).Msg("No manifest, skipping directory")
				continue
			}
			logger.Warn().Err(err).Str("set", entry.Name()).Msg("Skipping package set")
			result.Warnings = append(result.Warnings, Warning{Set: entry.Name(), Err: err})
			continue
		}

		for _, spec := range m.Packages {
			full := types.JoinName(m.Name, spec.Name)
			if owner, dup := owners[full]; dup {
				err := errors.Newf(errors.ErrPackageInvalid, "duplicate package name, already defined by %s", owner)
				result.Warnings = append(result.Warnings, Warning{Set: m.Name, Package: spec.Name, Err: err})
				logger.Warn().Str("package", full).Str("first", owner).Msg("Duplicate package ignored")
				continue
			}

			pkg, err := build(builder, m.Name, spec, setDir)
			if err != nil {
				result.Warnings = append(result.Warnings, Warning{Set: m.Name, Package: spec.Name, Err: err})
				logger.Warn().Err(err).Str("package", full).Msg("Skipping package")
				continue
			}
			owners[full] = m.Path
			result.Catalog[full] = pkg
		}
	}

	logger.Info().
		Int("packages", len(result.Catalog)).
		Int("warnings", len(result.Warnings)).
		Msg("Catalog loaded")
	return result, nil
}

func build(b *packages.Builder, set string, spec manifest.PackageSpec, setDir string) (*types.Package, error) {
	opts, err := spec.Options()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPackageInvalid, "invalid package options")
	}
	return b.Build(set, spec.Name, setDir, opts)
}

// isSetDir accepts visible directories, following symlinks.
func isSetDir(root string, entry os.DirEntry) bool {
	if strings.HasPrefix(entry.Name(), ".") {
		return false
	}
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		return err == nil && info.IsDir()
	}
	return false
}
