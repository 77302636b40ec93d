// Package vault implements the local document store over a directory of
// markdown notes.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"halo_sync/internal/domain"
	"halo_sync/internal/markdown"
)

// Vault reads and writes notes below a root directory. Parsed front matter
// is cached per file and invalidated on modification time changes.
type Vault struct {
	root string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	matter  map[string]any
}

// New creates a vault rooted at path. A leading ~ expands to the home
// directory.
func New(path string) (*Vault, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expand vault path %q: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &Vault{
		root:  path,
		cache: map[string]cacheEntry{},
	}, nil
}

// Load reads a note and splits it into front matter and body.
func (v *Vault) Load(name string) (*domain.Document, error) {
	raw, err := v.read(name)
	if err != nil {
		return nil, err
	}

	matter, body, err := markdown.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	return &domain.Document{Name: name, Matter: matter, Body: body}, nil
}

// FrontMatter returns the parsed front matter of a note, served from cache
// while the file is unchanged on disk.
func (v *Vault) FrontMatter(name string) (map[string]any, error) {
	info, err := os.Stat(v.path(name))
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}

	v.mu.Lock()
	entry, ok := v.cache[name]
	v.mu.Unlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.matter, nil
	}

	doc, err := v.Load(name)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.cache[name] = cacheEntry{modTime: info.ModTime(), matter: doc.Matter}
	v.mu.Unlock()

	return doc.Matter, nil
}

// Create writes a new note and fails if one with that name already exists.
func (v *Vault) Create(name, content string) error {
	f, err := os.OpenFile(v.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

// Write replaces the full content of an existing note.
func (v *Vault) Write(name, content string) error {
	if err := os.WriteFile(v.path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	v.invalidate(name)
	return nil
}

// ProcessFrontMatter rewrites a note in place: the callback receives the
// current front matter map and mutates it, the body stays untouched. This is
// the only rewrite path that touches metadata.
func (v *Vault) ProcessFrontMatter(name string, fn func(matter map[string]any)) error {
	doc, err := v.Load(name)
	if err != nil {
		return err
	}

	fn(doc.Matter)

	raw, err := markdown.Join(doc.Matter, doc.Body)
	if err != nil {
		return fmt.Errorf("rewrite %q: %w", name, err)
	}

	return v.Write(name, raw)
}

func (v *Vault) read(name string) (string, error) {
	data, err := os.ReadFile(v.path(name))
	if err != nil {
		return "", fmt.Errorf("read %q: %w", name, err)
	}
	return string(data), nil
}

func (v *Vault) path(name string) string {
	return filepath.Join(v.root, name)
}

func (v *Vault) invalidate(name string) {
	v.mu.Lock()
	delete(v.cache, name)
	v.mu.Unlock()
}
