package packages

import (
	"os"
	"os/exec"
	"runtime"
)

// Options are the per-package settings declared in a manifest.
type Options struct {
	// Root is the source directory. Relative roots resolve against the set
	// directory; empty means the package name.
	Root string

	// Into is prepended to every destination path
	Into string

	// Default is the default activation flag
	Default bool

	// When, if set, activates the package when all its conditions hold
	When *Condition

	Dotfiles Dotfiles
}

// Dotfiles selects which top-level entries get a leading "."
type Dotfiles struct {
	All   bool
	Paths []string
}

func (d Dotfiles) renames(rel string, depth int) bool {
	if d.All {
		return depth == 0
	}
	for _, p := range d.Paths {
		if p == rel {
			return true
		}
	}
	return false
}

// Condition is a declarative activation test. Empty fields are not checked.
type Condition struct {
	// Command must be found on PATH
	Command string `toml:"command" yaml:"command"`

	// OS must equal runtime.GOOS
	OS string `toml:"os" yaml:"os"`

	// Env must name a non-empty environment variable
	Env string `toml:"env" yaml:"env"`
}

// Probe answers the questions a Condition asks about the host.
type Probe struct {
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	GOOS     string
}

// HostProbe inspects the running system.
func HostProbe() Probe {
	return Probe{LookPath: exec.LookPath, Getenv: os.Getenv, GOOS: runtime.GOOS}
}

// Holds reports whether every set field of the condition is satisfied.
func (c *Condition) Holds(p Probe) bool {
	if c == nil {
		return false
	}
	if c.Command != "" {
		if p.LookPath == nil {
			return false
		}
		if _, err := p.LookPath(c.Command); err != nil {
			return false
		}
	}
	if c.OS != "" && c.OS != p.GOOS {
		return false
	}
	if c.Env != "" && (p.Getenv == nil || p.Getenv(c.Env) == "") {
		return false
	}
	return true
}
