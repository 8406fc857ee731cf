// Package fileio provides the filesystem and text I/O surfaces the editor
// core works against, with an OS-backed and an in-memory implementation.
package fileio

import (
	"io"
	"os"
	"path/filepath"
)

// Entry is one node of a directory listing.
type Entry struct {
	Name  string
	Path  string // usable with the same FS
	IsDir bool
	Size  int64
}

// FS is the directory and byte-level file access the core needs.
// ReadDir returns entries sorted by name.
type FS interface {
	ReadDir(path string) ([]Entry, error)
	Stat(path string) (Entry, error)
	Open(path string) (io.ReadCloser, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFS is FS on the host filesystem.
type OSFS struct{}

var _ FS = OSFS{}

// ReadDir lists path. os.ReadDir already sorts by filename.
func (OSFS) ReadDir(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, wrap("readdir", path, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		e := Entry{
			Name:  d.Name(),
			Path:  filepath.Join(path, d.Name()),
			IsDir: d.IsDir(),
		}
		if info, err := d.Info(); err == nil {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (OSFS) Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, wrap("stat", path, err)
	}
	return Entry{Name: info.Name(), Path: path, IsDir: info.IsDir(), Size: info.Size()}, nil
}

func (OSFS) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrap("open", path, err)
	}
	return f, nil
}

func (OSFS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	return data, wrap("read", path, err)
}

// WriteFile replaces the file content, keeping the existing mode when the
// file is already there.
func (OSFS) WriteFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return wrap("write", path, os.WriteFile(path, data, perm))
}
