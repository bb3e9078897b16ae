package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/toolkit/pkg/errors"
)

// Environment variable names
const (
	// EnvPackageRoot overrides the package root
	EnvPackageRoot = "TOOLKIT_ROOT"

	// EnvConfigDir overrides the XDG config directory for toolkit
	EnvConfigDir = "TOOLKIT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "toolkit"

	// DefaultPackageRoot is used when neither an option nor TOOLKIT_ROOT is set
	DefaultPackageRoot = "~/.toolkit/packages"

	StateFileName  = "state.yml"
	ConfigFileName = "config.toml"
	LogFileName    = "toolkit.log"
)

// Options carries explicit locations, typically from flags or config.
// Empty fields fall back to the environment and defaults.
type Options struct {
	PackageRoot string
	Mount       string
	StateFile   string
}

// Paths provides the resolved locations
type Paths interface {
	PackageRoot() string
	Mount() string
	StateFile() string
}

type paths struct {
	packageRoot string
	mount       string
	stateFile   string
}

// New resolves every location. All returned paths are absolute and clean.
func New(opts Options) (Paths, error) {
	p := &paths{}

	root := opts.PackageRoot
	if root == "" {
		root = os.Getenv(EnvPackageRoot)
	}
	if root == "" {
		root = DefaultPackageRoot
	}

	mount := opts.Mount
	if mount == "" {
		mount = homeDir()
		if mount == "" {
			return nil, errors.New(errors.ErrMountInvalid, "cannot determine home directory for the mount")
		}
	}

	stateFile := opts.StateFile
	if stateFile == "" {
		stateFile = filepath.Join(ConfigDir(), StateFileName)
	}

	var err error
	if p.packageRoot, err = Normalize(root); err != nil {
		return nil, err
	}
	if p.mount, err = Normalize(mount); err != nil {
		return nil, err
	}
	if p.stateFile, err = Normalize(stateFile); err != nil {
		return nil, err
	}
	return p, nil
}

// ConfigDir returns toolkit's configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns toolkit's XDG state directory, where logs go.
func StateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the log file under the state directory.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.Getenv(EnvHome)
}

// ExpandHome expands a leading ~ or ~/ to the home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home := homeDir()
	if home == "" {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~user is not ours to expand
	return path
}

func (p *paths) PackageRoot() string { return p.packageRoot }
func (p *paths) Mount() string       { return p.mount }
func (p *paths) StateFile() string   { return p.stateFile }

// RelativeTo returns path relative to root, in slash form. The boolean is
// false when path lies outside root.
func RelativeTo(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Normalize expands home, makes path absolute and cleans it.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}
