package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

func validNamespace(ns string) bool {
	return namespacePattern.MatchString(ns)
}

// FS persists all keys of one namespace as a single JSON document.
// Every write replaces the file atomically through a temp file and rename.
type FS struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFS loads the document at path, starting empty when it does not exist.
func OpenFS(path string) (*FS, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &values); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	return &FS{path: path, values: values}, nil
}

// Path exposes the backing file (primarily for testing).
func (f *FS) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Get returns the value for key.
func (f *FS) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	return v, ok
}

// Set stores value under key and flushes the document.
func (f *FS) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.values[key]; ok && existing == value {
		return nil
	}
	next := maps.Clone(f.values)
	next[key] = value
	return f.commit(next)
}

// Remove deletes key and flushes the document.
func (f *FS) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}
	next := maps.Clone(f.values)
	delete(next, key)
	return f.commit(next)
}

// commit writes next to disk and only then makes it the visible state, so a
// failed write leaves memory matching the file.
func (f *FS) commit(next map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	f.values = next
	return nil
}

// Dir opens one FS document per namespace under a base directory.
type Dir struct {
	basePath string

	mu   sync.Mutex
	open map[string]*FS
}

// NewDir constructs a Dir rooted at basePath.
func NewDir(basePath string) *Dir {
	return &Dir{
		basePath: basePath,
		open:     make(map[string]*FS),
	}
}

// Open returns the document for namespace, reusing an already loaded one.
func (d *Dir) Open(namespace string) (KV, error) {
	if !validNamespace(namespace) {
		return nil, ErrInvalidNamespace
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if fs, ok := d.open[namespace]; ok {
		return fs, nil
	}
	fs, err := OpenFS(filepath.Join(d.basePath, namespace+".json"))
	if err != nil {
		return nil, err
	}
	d.open[namespace] = fs
	return fs, nil
}
