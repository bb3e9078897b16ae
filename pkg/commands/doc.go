// Package commands holds the command implementations behind the toolkit
// CLI. Each command lives in its own subpackage and returns a result value
// that the CLI renders; none of them print.
//
//   - workspace/ - shared loading of catalog, state and reconciler
//   - build/     - reconcile the mount and save state
//   - list/      - catalog listing with selection details
//   - selection/ - enable, disable and reset overrides
//   - status/    - read-only inspection of the mount
//   - genconfig/ - print or write a configuration file
package commands
