// Package config handles toolkit's application configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/toolkit/config.toml, when present
//  3. TOOLKIT_<SECTION>_<KEY> environment variables
//
// Command-line flags are applied by the caller on top of the loaded Config.
package config
