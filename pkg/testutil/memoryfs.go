package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

const maxLinkHops = 40

// MemoryFS implements types.FS with in-memory storage. Symlinks are real
// nodes: Lstat reports them, Stat and ReadFile follow them. Intermediate
// path components are not resolved through symlinks.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection
	errorPaths map[string]error

	// Statistics
	readCount  int
	writeCount int
}

type fileNode struct {
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	linkDest string
	children map[string]*fileNode
}

func (n *fileNode) isDir() bool  { return n.mode.IsDir() }
func (n *fileNode) isLink() bool { return n.mode&os.ModeSymlink != 0 }

// NewMemoryFS creates an empty in-memory filesystem holding only "/".
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		children: make(map[string]*fileNode),
	}
	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
	}
}

func clean(name string) string {
	if !path.IsAbs(name) {
		name = "/" + name
	}
	return path.Clean(name)
}

func notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) injected(name string) error {
	return m.errorPaths[name]
}

// lookup returns the node at name without following a final symlink.
func (m *MemoryFS) lookup(op, name string) (*fileNode, error) {
	if err := m.injected(name); err != nil {
		return nil, err
	}
	node, ok := m.files[name]
	if !ok {
		return nil, notExist(op, name)
	}
	return node, nil
}

// resolve follows symlinks until it reaches a non-link node.
func (m *MemoryFS) resolve(op, name string) (*fileNode, string, error) {
	for i := 0; i < maxLinkHops; i++ {
		node, err := m.lookup(op, name)
		if err != nil {
			return nil, name, err
		}
		if !node.isLink() {
			return node, name, nil
		}
		dest := node.linkDest
		if !path.IsAbs(dest) {
			dest = path.Join(path.Dir(name), dest)
		}
		name = path.Clean(dest)
	}
	return nil, name, &fs.PathError{Op: op, Path: name, Err: errors.New("too many levels of symbolic links")}
}

func (m *MemoryFS) parentOf(op, name string) (*fileNode, error) {
	parent, err := m.lookup(op, path.Dir(name))
	if err != nil {
		return nil, err
	}
	if !parent.isDir() {
		return nil, &fs.PathError{Op: op, Path: path.Dir(name), Err: errors.New("not a directory")}
	}
	return parent, nil
}

func (m *MemoryFS) insert(name string, node *fileNode, parent *fileNode) {
	parent.children[path.Base(name)] = node
	m.files[name] = node
}

// ReadFile reads the content of the file at name, following symlinks.
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount++

	node, _, err := m.resolve("read", clean(name))
	if err != nil {
		return nil, err
	}
	if node.isDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to name, creating missing parent directories.
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCount++

	p := clean(name)
	if err := m.injected(p); err != nil {
		return err
	}
	if existing, ok := m.files[p]; ok && existing.isDir() {
		return &fs.PathError{Op: "write", Path: name, Err: errors.New("is a directory")}
	}
	if err := m.mkdirAll(path.Dir(p), 0755); err != nil {
		return err
	}
	parent, err := m.parentOf("write", p)
	if err != nil {
		return err
	}
	node := &fileNode{
		mode:    perm.Perm(),
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}
	m.insert(p, node, parent)
	return nil
}

// Stat returns file info, following symlinks.
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.resolve("stat", clean(name))
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: path.Base(clean(name))}, nil
}

// Lstat returns file info without following symlinks.
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := clean(name)
	node, err := m.lookup("lstat", p)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: path.Base(p)}, nil
}

// Remove removes a file, a symlink or an empty directory.
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := clean(name)
	if p == "/" {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
	}
	node, err := m.lookup("remove", p)
	if err != nil {
		return err
	}
	if node.isDir() && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}
	parent, err := m.parentOf("remove", p)
	if err != nil {
		return err
	}
	delete(parent.children, path.Base(p))
	delete(m.files, p)
	return nil
}

// RemoveAll removes name and everything below it.
func (m *MemoryFS) RemoveAll(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := clean(name)
	for key := range m.files {
		if key != "/" && (key == p || strings.HasPrefix(key, p+"/")) {
			delete(m.files, key)
		}
	}
	if parent, ok := m.files[path.Dir(p)]; ok && parent.isDir() && p != "/" {
		delete(parent.children, path.Base(p))
	}
	return nil
}

// MkdirAll creates a directory and all missing parents.
func (m *MemoryFS) MkdirAll(name string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirAll(clean(name), perm)
}

func (m *MemoryFS) mkdirAll(p string, perm os.FileMode) error {
	if err := m.injected(p); err != nil {
		return err
	}
	if node, ok := m.files[p]; ok {
		if !node.isDir() {
			return &fs.PathError{Op: "mkdir", Path: p, Err: errors.New("not a directory")}
		}
		return nil
	}
	if err := m.mkdirAll(path.Dir(p), perm); err != nil {
		return err
	}
	parent := m.files[path.Dir(p)]
	m.insert(p, &fileNode{
		mode:     perm.Perm() | os.ModeDir,
		modTime:  time.Now(),
		children: make(map[string]*fileNode),
	}, parent)
	return nil
}

// Readlink returns the destination of a symbolic link.
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.lookup("readlink", clean(name))
	if err != nil {
		return "", err
	}
	if !node.isLink() {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return node.linkDest, nil
}

// Symlink creates newname as a symbolic link to oldname. The parent of
// newname must exist.
func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCount++

	p := clean(newname)
	if err := m.injected(p); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	if _, ok := m.files[p]; ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	parent, err := m.parentOf("symlink", p)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	m.insert(p, &fileNode{
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		linkDest: oldname,
	}, parent)
	return nil
}

// ReadDir returns the entries of a directory sorted by name, following a
// symlinked directory.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount++

	node, _, err := m.resolve("readdir", clean(name))
	if err != nil {
		return nil, err
	}
	if !node.isDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, fs.FileInfoToDirEntry(&fileInfo{node: child, name: childName}))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// WithError makes every operation touching path fail with err.
func (m *MemoryFS) WithError(name string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[clean(name)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

// Paths returns every path in the filesystem except "/", sorted.
func (m *MemoryFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		if p != "/" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir() }
func (fi *fileInfo) Sys() interface{}   { return nil }
