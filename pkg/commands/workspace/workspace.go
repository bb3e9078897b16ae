// Package workspace opens everything a command needs: configuration-derived
// locations, the package catalog and the persisted state.
package workspace

import (
	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/filesystem"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/packages"
	"github.com/arthur-debert/toolkit/pkg/paths"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
	"github.com/arthur-debert/toolkit/pkg/state"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Options locate the catalog, the mount and the state file.
type Options struct {
	PackageRoot   string
	Mount         string
	StateFile     string
	ManifestFiles []string
	IgnoredFiles  []string

	// FS is the filesystem links are managed on. Defaults to the OS.
	FS types.FS
}

// FromConfig combines resolved paths with the package settings of cfg.
func FromConfig(cfg *config.Config, p paths.Paths) Options {
	return Options{
		PackageRoot:   p.PackageRoot(),
		Mount:         p.Mount(),
		StateFile:     p.StateFile(),
		ManifestFiles: cfg.Packages.ManifestFiles,
		IgnoredFiles:  cfg.Packages.IgnoredFiles,
	}
}

// Workspace is an opened catalog plus state
type Workspace struct {
	Options
	Catalog *catalog.Result
	State   *state.State
}

// Open loads the catalog and the state.
func Open(opts Options) (*Workspace, error) {
	logger := logging.GetLogger("commands.workspace")

	st, err := state.Load(opts.StateFile)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(opts.PackageRoot, catalog.Options{
		ManifestFiles: opts.ManifestFiles,
		Builder:       packages.NewBuilder(opts.IgnoredFiles),
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", opts.PackageRoot).
		Str("mount", opts.Mount).
		Int("packages", len(cat.Catalog)).
		Int("warnings", len(cat.Warnings)).
		Msg("Workspace opened")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	return &Workspace{Options: opts, Catalog: cat, State: st}, nil
}

// OpenState loads only the state, for commands that never touch the mount.
func OpenState(opts Options) (*Workspace, error) {
	st, err := state.Load(opts.StateFile)
	if err != nil {
		return nil, err
	}
	return &Workspace{Options: opts, State: st}, nil
}

// Reconciler creates a reconciler over this workspace. sink may be nil.
func (w *Workspace) Reconciler(sink types.EventSink) *reconcile.Reconciler {
	return reconcile.New(reconcile.Options{
		FS:          w.FS,
		CatalogRoot: w.PackageRoot,
		Mount:       w.Mount,
		Sink:        sink,
		Save: func(st *state.State) error {
			return st.Save(w.StateFile)
		},
	})
}

// SaveState writes the state back to disk.
func (w *Workspace) SaveState() error {
	return w.State.Save(w.StateFile)
}
