package config

import (
	"fmt"
	"strings"
)

// ColorMode controls ANSI styling of output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a colour mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// OutputFormat selects the event renderer
type OutputFormat string

const (
	FormatAuto OutputFormat = "auto"
	FormatTerm OutputFormat = "term"
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatTerm, FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q (want auto, term, text or json)", s)
}

// Config is the complete application configuration.
type Config struct {
	Paths    Paths    `koanf:"paths" toml:"paths"`
	Packages Packages `koanf:"packages" toml:"packages"`
	Output   Output   `koanf:"output" toml:"output"`
}

// Paths holds location overrides. Empty values are resolved by pkg/paths.
type Paths struct {
	PackageRoot string `koanf:"package_root" toml:"package_root"`
	Mount       string `koanf:"mount" toml:"mount"`
	StateFile   string `koanf:"state_file" toml:"state_file"`
}

// Packages controls how package sets are read.
type Packages struct {
	ManifestFiles []string `koanf:"manifest_files" toml:"manifest_files"`
	IgnoredFiles  []string `koanf:"ignored_files" toml:"ignored_files"`
}

// Output controls rendering.
type Output struct {
	Color         ColorMode    `koanf:"color" toml:"color"`
	Format        OutputFormat `koanf:"format" toml:"format"`
	ShowUnchanged bool         `koanf:"show_unchanged" toml:"show_unchanged"`
}
