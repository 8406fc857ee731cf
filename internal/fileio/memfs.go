package fileio

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
)

// MemFS is an in-memory FS. Paths are slash separated and rooted at "/".
// Failures can be injected per path and operation for tests.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	faults map[string]error // "op:path" -> error
	writes []string         // write log, in order
}

var _ FS = (*MemFS)(nil)

// NewMemFS creates an empty filesystem containing only "/".
func NewMemFS() *MemFS {
	return &MemFS{
		files:  make(map[string][]byte),
		dirs:   map[string]bool{"/": true},
		faults: make(map[string]error),
	}
}

func clean(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// AddFile stores content at p, creating parent directories.
func (m *MemFS) AddFile(p string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = clean(p)
	m.mkdirAllLocked(path.Dir(p))
	m.files[p] = []byte(content)
}

// AddBytes is AddFile for raw bytes.
func (m *MemFS) AddBytes(p string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = clean(p)
	m.mkdirAllLocked(path.Dir(p))
	m.files[p] = append([]byte(nil), content...)
}

// MkdirAll creates p and its parents.
func (m *MemFS) MkdirAll(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAllLocked(clean(p))
}

func (m *MemFS) mkdirAllLocked(p string) {
	for p != "/" && !m.dirs[p] {
		m.dirs[p] = true
		p = path.Dir(p)
	}
}

// Fail makes op ("read", "write", "open", "readdir", "stat") on p return err.
func (m *MemFS) Fail(op, p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op+":"+clean(p)] = err
}

// Content returns the stored bytes of p as a string.
func (m *MemFS) Content(p string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[clean(p)]
	return string(data), ok
}

// Writes returns the paths passed to WriteFile, in call order.
func (m *MemFS) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.writes...)
}

func (m *MemFS) fault(op, p string) error {
	if err, ok := m.faults[op+":"+p]; ok {
		return &fs.PathError{Op: op, Path: p, Err: err}
	}
	return nil
}

func (m *MemFS) ReadDir(p string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	if err := m.fault("readdir", p); err != nil {
		return nil, wrap("readdir", p, err)
	}
	if !m.dirs[p] {
		if _, ok := m.files[p]; ok {
			return nil, wrap("readdir", p, &fs.PathError{Op: "readdir", Path: p, Err: syscall.ENOTDIR})
		}
		return nil, wrap("readdir", p, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist})
	}

	var entries []Entry
	for f, data := range m.files {
		if path.Dir(f) == p {
			entries = append(entries, Entry{Name: path.Base(f), Path: f, Size: int64(len(data))})
		}
	}
	for d := range m.dirs {
		if d != "/" && path.Dir(d) == p {
			entries = append(entries, Entry{Name: path.Base(d), Path: d, IsDir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *MemFS) Stat(p string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	if err := m.fault("stat", p); err != nil {
		return Entry{}, wrap("stat", p, err)
	}
	if data, ok := m.files[p]; ok {
		return Entry{Name: path.Base(p), Path: p, Size: int64(len(data))}, nil
	}
	if m.dirs[p] {
		return Entry{Name: path.Base(p), Path: p, IsDir: true}, nil
	}
	return Entry{}, wrap("stat", p, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist})
}

func (m *MemFS) Open(p string) (io.ReadCloser, error) {
	data, err := m.read("open", p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFS) ReadFile(p string) ([]byte, error) {
	return m.read("read", p)
}

func (m *MemFS) read(op, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	if err := m.fault(op, p); err != nil {
		return nil, wrap(op, p, err)
	}
	data, ok := m.files[p]
	if !ok {
		return nil, wrap(op, p, &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist})
	}
	return append([]byte(nil), data...), nil
}

// WriteFile creates or replaces p. The parent directory must exist.
func (m *MemFS) WriteFile(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)
	if err := m.fault("write", p); err != nil {
		return wrap("write", p, err)
	}
	if !m.dirs[path.Dir(p)] {
		return wrap("write", p, &fs.PathError{Op: "write", Path: p, Err: fs.ErrNotExist})
	}
	if m.dirs[p] {
		return wrap("write", p, &fs.PathError{Op: "write", Path: p, Err: syscall.EISDIR})
	}
	m.files[p] = append([]byte(nil), data...)
	m.writes = append(m.writes, p)
	return nil
}
