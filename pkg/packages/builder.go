package packages

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// DefaultIgnoredFiles are marker files that anchor their directory
var DefaultIgnoredFiles = []string{".keep"}

// Builder constructs packages from source trees.
type Builder struct {
	IgnoredFiles []string
	Probe        Probe
}

// NewBuilder returns a Builder using the host probe.
func NewBuilder(ignoredFiles []string) *Builder {
	if ignoredFiles == nil {
		ignoredFiles = DefaultIgnoredFiles
	}
	return &Builder{IgnoredFiles: ignoredFiles, Probe: HostProbe()}
}

// Build creates the package namespace/name from setDir and opts.
func (b *Builder) Build(namespace, name, setDir string, opts Options) (*types.Package, error) {
	logger := logging.GetLogger("packages").With().
		Str("package", types.JoinName(namespace, name)).
		Logger()

	if !types.IsCleanRelative(opts.Into) {
		return nil, errors.Newf(errors.ErrPackageInvalid, "destination prefix %q must be relative without '..'", opts.Into).
			WithDetail("package", types.JoinName(namespace, name))
	}

	source := opts.Root
	if source == "" {
		source = name
	}
	if !filepath.IsAbs(source) {
		source = filepath.Join(setDir, source)
	}
	source = filepath.Clean(source)

	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrPackageInvalid, "package source is not a directory").
			WithDetail("package", types.JoinName(namespace, name)).
			WithDetail("source", source)
	}

	files, err := walkSource(source)
	if err != nil {
		return nil, err
	}

	links := make(map[string]types.LinkTarget, len(files))
	for _, rel := range files {
		dest, base := destinationFor(rel, opts.Dotfiles)
		if b.ignored(base) {
			links[parentOf(dest)] = types.DirectoryAnchor()
			continue
		}
		links[dest] = types.FileLink(rel)
	}

	active := opts.Default || opts.When.Holds(b.Probe)
	logger.Debug().
		Str("source", source).
		Int("links", len(links)).
		Bool("default", active).
		Msg("Built package")

	return &types.Package{
		Namespace:  namespace,
		Name:       name,
		Source:     source,
		DestPrefix: cleanPrefix(opts.Into),
		Active:     active,
		Links:      links,
	}, nil
}

func (b *Builder) ignored(base string) bool {
	for _, name := range b.IgnoredFiles {
		if name == base {
			return true
		}
	}
	return false
}

// walkSource returns the slash-separated paths of every non-directory entry
// below source, sorted.
func walkSource(source string) ([]string, error) {
	conf := fastwalk.Config{Follow: false}

	var mu sync.Mutex
	var files []string
	err := fastwalk.Walk(&conf, source, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source, p)
		if err != nil {
			return err
		}
		mu.Lock()
		files = append(files, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPackageInvalid, "cannot read package source").
			WithDetail("source", source)
	}
	sort.Strings(files)
	return files, nil
}

// destinationFor maps a source-relative file path to its destination,
// applying dotfile renames component by component. It also returns the
// original base name.
func destinationFor(rel string, dotfiles Dotfiles) (string, string) {
	parts := strings.Split(rel, "/")
	dest := make([]string, len(parts))
	for i, part := range parts {
		dest[i] = part
		if dotfiles.renames(strings.Join(parts[:i+1], "/"), i) {
			dest[i] = "." + part
		}
	}
	return strings.Join(dest, "/"), parts[len(parts)-1]
}

// parentOf returns the directory of a slash path, "" at the top level.
func parentOf(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

func cleanPrefix(into string) string {
	if into == "" {
		return ""
	}
	cleaned := path.Clean(filepath.ToSlash(into))
	if cleaned == "." {
		return ""
	}
	return cleaned
}
