// Package selection implements enable, disable and reset. They only edit
// the overrides in the state file; the mount is untouched until the next
// build.
package selection

import (
	"sort"

	"github.com/arthur-debert/toolkit/pkg/commands/workspace"
	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// Mode is the selection change to apply
type Mode int

const (
	Enable Mode = iota
	Disable
	Reset
)

func (m Mode) String() string {
	switch m {
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	default:
		return "reset"
	}
}

// Options defines the options for Select
type Options struct {
	Workspace workspace.Options
	Mode      Mode

	// Names are full ("set/package") or bare package names
	Names []string
}

// Change records one package's override before and after.
type Change struct {
	Name   string
	Before *bool
	After  *bool
}

// Changed reports whether the override actually moved.
func (c Change) Changed() bool {
	if c.Before == nil || c.After == nil {
		return c.Before != c.After
	}
	return *c.Before != *c.After
}

// Result lists the changes in argument order.
type Result struct {
	Mode    Mode
	Changes []Change
}

// Select applies opts.Mode to every named package and saves the state.
// Nothing is saved when a name cannot be resolved.
func Select(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.selection")
	logger.Debug().Str("command", "Select").Str("mode", opts.Mode.String()).Msg("Executing command")

	if len(opts.Names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no package names given")
	}

	ws, err := workspace.Open(opts.Workspace)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(opts.Names))
	for _, arg := range opts.Names {
		name, err := resolve(ws.Catalog.Catalog, ws.State.Selected, arg, opts.Mode == Reset)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	result := &Result{Mode: opts.Mode}
	for _, name := range names {
		change := Change{Name: name, Before: override(ws.State.Selected, name)}
		switch opts.Mode {
		case Enable:
			ws.State.SetOverride(name, true)
		case Disable:
			ws.State.SetOverride(name, false)
		case Reset:
			ws.State.ClearOverride(name)
		}
		change.After = override(ws.State.Selected, name)
		result.Changes = append(result.Changes, change)
	}

	if err := ws.SaveState(); err != nil {
		return nil, err
	}

	logger.Info().Str("command", "Select").Int("packages", len(names)).Msg("Command finished")
	return result, nil
}

func override(selected map[string]bool, name string) *bool {
	v, ok := selected[name]
	if !ok {
		return nil
	}
	return &v
}

// resolve maps arg to a catalog name. A bare name must match exactly one
// package. Reset also accepts names that only exist as overrides.
func resolve(cat types.Catalog, selected map[string]bool, arg string, allowOrphans bool) (string, error) {
	if _, ok := cat[arg]; ok {
		return arg, nil
	}
	if _, ok := selected[arg]; ok && allowOrphans {
		return arg, nil
	}

	if _, _, namespaced := types.SplitName(arg); !namespaced {
		var matches []string
		for full, pkg := range cat {
			if pkg.Name == arg {
				matches = append(matches, full)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			sort.Strings(matches)
			return "", errors.Newf(errors.ErrInvalidInput, "package name %q is ambiguous", arg).
				WithDetail("matches", matches)
		}
	}

	return "", errors.Newf(errors.ErrPackageNotFound, "no package named %q", arg)
}
