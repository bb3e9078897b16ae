// Package manifest reads package-set manifests.
//
// A package set is a directory under the package root holding a manifest
// (manifest.toml, manifest.yaml or manifest.yml) and, usually, one
// subdirectory per package:
//
//	name = "shell"
//
//	[[package]]
//	name = "bash"
//	default = true
//	dotfiles = true
//
//	[package.when]
//	command = "bash"
//
// Unknown keys are rejected.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	tkerrors "github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/packages"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// DefaultFileNames are tried in order when no list is configured
var DefaultFileNames = []string{"manifest.toml", "manifest.yaml", "manifest.yml"}

// Manifest is the decoded content of a manifest file.
type Manifest struct {
	// Name is the set's namespace; defaults to the directory name
	Name     string        `toml:"name" yaml:"name"`
	Packages []PackageSpec `toml:"package" yaml:"package"`

	// Path is the file the manifest was read from
	Path string `toml:"-" yaml:"-"`
}

// PackageSpec declares one package.
type PackageSpec struct {
	Name     string              `toml:"name" yaml:"name"`
	Root     string              `toml:"root" yaml:"root"`
	Into     string              `toml:"into" yaml:"into"`
	Default  bool                `toml:"default" yaml:"default"`
	When     *packages.Condition `toml:"when" yaml:"when"`
	Dotfiles interface{}         `toml:"dotfiles" yaml:"dotfiles"`
}

// Find returns the first manifest file present in dir.
func Find(dir string, names []string) (string, error) {
	if len(names) == 0 {
		names = DefaultFileNames
	}
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", tkerrors.New(tkerrors.ErrManifestNotFound, "no manifest found").
		WithDetail("dir", dir)
}

// Load finds, reads and validates the manifest of the set in dir.
func Load(dir string, names []string) (*Manifest, error) {
	p, err := Find(dir, names)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrFileAccess, "cannot read manifest").
			WithDetail("path", p)
	}

	m, err := Parse(data, filepath.Ext(p))
	if err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrManifestParse, "invalid manifest").
			WithDetail("path", p)
	}
	m.Path = p
	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	if err := m.Validate(); err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrManifestParse, "invalid manifest").
			WithDetail("path", p)
	}
	return m, nil
}

// Parse decodes manifest data. ext selects the format: ".toml", ".yaml" or
// ".yml".
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".toml":
		dec := gotoml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	return &m, nil
}

// Validate checks names and paths.
func (m *Manifest) Validate() error {
	if strings.Contains(m.Name, "/") {
		return fmt.Errorf("set name %q must not contain '/'", m.Name)
	}
	seen := make(map[string]bool, len(m.Packages))
	for i, spec := range m.Packages {
		switch {
		case spec.Name == "":
			return fmt.Errorf("package %d has no name", i+1)
		case strings.Contains(spec.Name, "/"):
			return fmt.Errorf("package name %q must not contain '/'", spec.Name)
		case seen[spec.Name]:
			return fmt.Errorf("package %q declared twice", spec.Name)
		case !types.IsCleanRelative(spec.Into):
			return fmt.Errorf("package %q: into %q must be relative without '..'", spec.Name, spec.Into)
		}
		if _, err := spec.dotfiles(); err != nil {
			return fmt.Errorf("package %q: %w", spec.Name, err)
		}
		seen[spec.Name] = true
	}
	return nil
}

// Options converts the declaration into builder options.
func (s PackageSpec) Options() (packages.Options, error) {
	dotfiles, err := s.dotfiles()
	if err != nil {
		return packages.Options{}, err
	}
	return packages.Options{
		Root:     s.Root,
		Into:     s.Into,
		Default:  s.Default,
		When:     s.When,
		Dotfiles: dotfiles,
	}, nil
}

func (s PackageSpec) dotfiles() (packages.Dotfiles, error) {
	switch v := s.Dotfiles.(type) {
	case nil:
		return packages.Dotfiles{}, nil
	case bool:
		return packages.Dotfiles{All: v}, nil
	case []interface{}:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			p, ok := item.(string)
			if !ok {
				return packages.Dotfiles{}, fmt.Errorf("dotfiles entries must be strings, got %v", item)
			}
			paths = append(paths, filepath.ToSlash(filepath.Clean(p)))
		}
		return packages.Dotfiles{Paths: paths}, nil
	}
	return packages.Dotfiles{}, fmt.Errorf("dotfiles must be true, false or a list of paths")
}
