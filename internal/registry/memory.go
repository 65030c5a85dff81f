package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// memClass is the stored form of a class.
type memClass struct {
	id          int64
	css         string
	replacement *string
	used        bool
}

// MemoryStore implements Store using in-memory data structures.
// Nothing survives Close; it backs ":memory:" registries and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	classes map[string]*memClass           // keyed by class name
	files   map[string]string              // path → content hash
	links   map[string]map[string]struct{} // path → class names
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	m := &MemoryStore{}
	m.init()
	return m
}

func (m *MemoryStore) init() {
	m.nextID = 0
	m.classes = make(map[string]*memClass)
	m.files = make(map[string]string)
	m.links = make(map[string]map[string]struct{})
}

// UpsertClass creates or updates a class. A nil replacement keeps the existing one.
func (m *MemoryStore) UpsertClass(_ context.Context, name, css string, replacement *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.classes[name]; ok {
		c.css = css
		if replacement != nil {
			c.replacement = clone(replacement)
		}
		return nil
	}

	m.nextID++
	m.classes[name] = &memClass{
		id:          m.nextID,
		css:         css,
		replacement: clone(replacement),
	}
	return nil
}

// SetMapping sets or clears the replacement of an existing class.
func (m *MemoryStore) SetMapping(_ context.Context, name string, replacement *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.classes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	c.replacement = clone(replacement)
	return nil
}

// MarkUsed flags a class as referenced.
func (m *MemoryStore) MarkUsed(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.classes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	c.used = true
	return nil
}

// RecordFile stores a scanned file with its content hash.
func (m *MemoryStore) RecordFile(_ context.Context, path, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = hash
	return nil
}

// LinkFileToClass records that a file references a class.
func (m *MemoryStore) LinkFileToClass(_ context.Context, path, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.classes[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	if _, ok := m.files[path]; !ok {
		m.files[path] = ""
	}
	if m.links[path] == nil {
		m.links[path] = make(map[string]struct{})
	}
	m.links[path][name] = struct{}{}
	return nil
}

// UnlinkFile drops every class link of a file.
func (m *MemoryStore) UnlinkFile(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, path)
	return nil
}

// Classes returns all classes ordered by name.
func (m *MemoryStore) Classes(_ context.Context) ([]Class, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, names := range m.links {
		for name := range names {
			counts[name]++
		}
	}

	classes := make([]Class, 0, len(m.classes))
	for name, c := range m.classes {
		classes = append(classes, Class{
			ID:          c.id,
			Name:        name,
			CSS:         c.css,
			Replacement: clone(c.replacement),
			Used:        c.used,
			Files:       counts[name],
		})
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})

	return classes, nil
}

// ClassesMissingMapping returns used classes without a replacement.
func (m *MemoryStore) ClassesMissingMapping(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name, c := range m.classes {
		if c.used && c.replacement == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Files returns files linked to at least one class.
func (m *MemoryStore) Files(_ context.Context) ([]File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []File
	for path, names := range m.links {
		if len(names) == 0 {
			continue
		}
		files = append(files, File{Path: path, Hash: m.files[path]})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// Snapshot captures the current classes and mappings.
func (m *MemoryStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	classes, err := m.Classes(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(classes), nil
}

// Reset drops all registry data.
func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.init()
	return nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
