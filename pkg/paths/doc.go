// Package paths resolves the locations toolkit works with.
//
// # Locations
//
//   - Package root: the directory holding every package set. Taken from the
//     explicit option, then TOOLKIT_ROOT, then ~/.toolkit/packages.
//   - Mount: the directory links are created in. Defaults to $HOME.
//   - State file: the persisted link state. Defaults to
//     $XDG_CONFIG_HOME/toolkit/state.yml.
//   - Config file: $XDG_CONFIG_HOME/toolkit/config.toml (or
//     $TOOLKIT_CONFIG_DIR/config.toml).
//   - Log file: $XDG_STATE_HOME/toolkit/toolkit.log.
//
// XDG base directories are read from the environment first and fall back to
// github.com/adrg/xdg, so tests can redirect them with t.Setenv.
package paths
