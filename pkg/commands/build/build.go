// Package build implements the build command: one reconciliation of the
// mount against the catalog and the persisted state.
package build

import (
	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Options defines the options for Build
type Options struct {
	Workspace workspace.Options

	// Sink receives events as they happen
	Sink types.EventSink

	// OnWarning is called for each catalog warning before reconciling
	OnWarning func(catalog.Warning)
}

// Result is what a build did
type Result struct {
	*reconcile.Result
	Warnings []catalog.Warning
}

// Build loads the catalog and state, reconciles the mount and saves the
// new state. The result is returned even when saving fails.
func Build(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.build")
	logger.Debug().Str("command", "Build").Msg("Executing command")
	defer logging.LogOperationStart(logger, "build")()

	ws, err := workspace.Open(opts.Workspace)
	if err != nil {
		return nil, err
	}
	for _, w := range ws.Catalog.Warnings {
		logger.Warn().Str("warning", w.String()).Msg("Catalog warning")
		if opts.OnWarning != nil {
			opts.OnWarning(w)
		}
	}

	res, err := ws.Reconciler(opts.Sink).Run(ws.Catalog.Catalog, ws.State)
	if res == nil {
		return nil, err
	}

	result := &Result{Result: res, Warnings: ws.Catalog.Warnings}
	logger.Info().
		Str("command", "Build").
		Int("active", len(res.Active)).
		Int("changes", res.Mutations()).
		Msg("Command finished")
	return result, err
}
