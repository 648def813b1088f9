package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory document store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]storedDocument
	closed bool
}

type storedDocument struct {
	format    Format
	data      []byte
	revision  int
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]storedDocument)}
}

// Save implements Store.
func (m *MemoryStore) Save(doc Document) error {
	if err := validate(doc); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	stored := make([]byte, len(doc.Data))
	copy(stored, doc.Data)

	m.docs[doc.Name] = storedDocument{
		format:    doc.Format,
		data:      stored,
		revision:  m.docs[doc.Name].revision + 1,
		updatedAt: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Document{}, ErrStoreClosed
	}

	d, ok := m.docs[name]
	if !ok {
		return Document{}, ErrNotFound
	}

	data := make([]byte, len(d.data))
	copy(data, d.data)
	return Document{Name: name, Format: d.format, Data: data}, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.docs))
	for name, d := range m.docs {
		infos = append(infos, Info{
			Name:      name,
			Format:    d.format,
			Revision:  d.revision,
			UpdatedAt: d.updatedAt,
			Size:      int64(len(d.data)),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.docs, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.docs = nil
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
