package reconcile

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/filesystem"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/state"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Options configure a Reconciler.
type Options struct {
	// FS is the filesystem the mount lives on
	FS types.FS

	// CatalogRoot is the absolute package root; link targets are relative
	// to it
	CatalogRoot string

	// Mount is the absolute directory links are created in
	Mount string

	// Sink receives every event as it happens. Optional.
	Sink types.EventSink

	// Save persists the updated state. Optional; a failure is structural.
	Save func(*state.State) error
}

// Reconciler runs the link engine.
type Reconciler struct {
	opts Options
	fs   *filesystem.Adapter
}

// New creates a Reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{opts: opts, fs: filesystem.NewAdapter(opts.FS)}
}

// Result is the outcome of a run.
type Result struct {
	// Active is the sorted active set
	Active []string

	// Links is the LinkMap now in effect
	Links types.LinkMap

	// Events lists everything that happened, in order
	Events []types.Event
}

// Count returns how many events carry action.
func (r *Result) Count(action types.Action) int {
	n := 0
	for _, e := range r.Events {
		if e.Action == action {
			n++
		}
	}
	return n
}

// Mutations returns how many events changed the filesystem.
func (r *Result) Mutations() int {
	n := 0
	for _, e := range r.Events {
		if e.Action.IsMutation() {
			n++
		}
	}
	return n
}

// Run reconciles the mount with catalog and st. On success st holds the new
// active set and LinkMap and has been saved. The returned error is only ever
// structural: conflicts and per-path failures are events. When saving fails
// the result is still returned alongside the error.
func (rc *Reconciler) Run(catalog types.Catalog, st *state.State) (*Result, error) {
	logger := logging.GetLogger("reconcile")

	if !rc.fs.ResolvesToDirectory(rc.opts.Mount) {
		return nil, mountError(rc.opts.Mount)
	}
	if st == nil {
		st = state.New()
	}

	r := &run{
		fs:          rc.fs,
		mount:       rc.opts.Mount,
		catalogRoot: rc.opts.CatalogRoot,
		sink:        rc.opts.Sink,
		logger:      logger,
	}

	active := ResolveActive(catalog, st.Selected)
	logger.Debug().Strs("active", active).Msg("Resolved active set")
	for _, e := range packageEvents(st.Installed, active) {
		r.emit(e)
	}

	plan := BuildPlan(catalog, active, rc.opts.CatalogRoot)
	logger.Debug().
		Int("links", len(plan.Links)).
		Int("plan_events", len(plan.Events)).
		Msg("Built plan")
	for _, e := range plan.Events {
		r.emit(e)
	}

	previous := st.Links
	if previous == nil {
		previous = types.LinkMap{}
	}
	applied := r.sync(plan, previous)
	r.cleanup(previous, applied)

	st.Record(active, applied)
	result := &Result{Active: active, Links: applied, Events: r.events}

	if rc.opts.Save != nil {
		if err := rc.opts.Save(st); err != nil {
			return result, errors.Wrap(err, errors.ErrStateSave, "failed to persist state")
		}
	}

	logger.Info().
		Int("events", len(r.events)).
		Int("mutations", result.Mutations()).
		Int("conflicts", result.Count(types.ActionConflict)).
		Msg("Reconciliation complete")
	return result, nil
}

func mountError(mount string) error {
	return errors.New(errors.ErrMountInvalid, "mount does not exist or is not a directory").
		WithDetail("mount", mount)
}

// run holds the per-invocation state shared by the sync and cleanup phases.
type run struct {
	fs          *filesystem.Adapter
	mount       string
	catalogRoot string
	sink        types.EventSink
	wanted      types.LinkMap
	logger      zerolog.Logger
	events      []types.Event
}

func (r *run) abs(dest string) string {
	return filepath.Join(r.mount, filepath.FromSlash(dest))
}

func (r *run) emit(e types.Event) {
	r.logger.Trace().
		Str("action", string(e.Action)).
		Str("path", e.Path).
		Str("package", e.Package).
		Msg("event")
	r.events = append(r.events, e)
	if r.sink != nil {
		r.sink.Emit(e)
	}
}

func (r *run) fail(dest, target, owner string, err error) {
	r.logger.Debug().Err(err).Str("path", dest).Msg("Filesystem operation failed")
	r.emit(types.Event{
		Action:  types.ActionFailed,
		Path:    dest,
		Target:  target,
		Package: owner,
		Detail:  err.Error(),
	})
}
