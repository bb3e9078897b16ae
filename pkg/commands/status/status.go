// Package status implements the status command, a read-only comparison of
// the mount with what a build would produce.
package status

import (
	"time"

	"github.com/arthur-debert/toolkit/pkg/catalog"
	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/reconcile"
)

// Result is an inspection plus the catalog warnings
type Result struct {
	*reconcile.Inspection
	Warnings []catalog.Warning

	// LastBuild is when the state was last recorded by a build, zero if never
	LastBuild time.Time
}

// Status inspects the mount without changing it or the state file.
func Status(opts workspace.Options) (*Result, error) {
	logger := logging.GetLogger("commands.status")
	logger.Debug().Str("command", "Status").Msg("Executing command")
	defer logging.LogOperationStart(logger, "status")()

	ws, err := workspace.Open(opts)
	if err != nil {
		return nil, err
	}

	insp, err := ws.Reconciler(nil).Inspect(ws.Catalog.Catalog, ws.State)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("command", "Status").
		Int("paths", len(insp.Paths)).
		Bool("inSync", insp.InSync()).
		Msg("Command finished")
	return &Result{Inspection: insp, Warnings: ws.Catalog.Warnings, LastBuild: ws.State.BuiltAt}, nil
}
