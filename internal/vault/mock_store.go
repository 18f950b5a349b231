package vault

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MockStore is an in-memory Store for testing.
type MockStore struct {
	mu    sync.Mutex
	files map[string][]byte

	// Error injection
	ReadError error

	// Request tracking
	ReadPaths []string
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{files: make(map[string][]byte)}
}

// AddFile installs a file at a vault-relative path.
func (m *MockStore) AddFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// RemoveFile deletes a file.
func (m *MockStore) RemoveFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

func (m *MockStore) Stat(path string) (EntryKind, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; ok {
		return KindFile, nil
	}

	prefix := path + "/"
	if path == "" || path == "." {
		prefix = ""
	}
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return KindFolder, nil
		}
	}
	return KindAbsent, nil
}

func (m *MockStore) List(dir string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := dir + "/"
	if dir == "" || dir == "." {
		prefix = ""
	}

	seen := make(map[string]EntryKind)
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			seen[rest[:i]] = KindFolder
		} else {
			seen[rest] = KindFile
		}
	}

	entries := make([]Entry, 0, len(seen))
	for name, kind := range seen {
		entries = append(entries, Entry{Name: name, Kind: kind})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *MockStore) Read(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadPaths = append(m.ReadPaths, path)

	if m.ReadError != nil {
		return nil, m.ReadError
	}

	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("no mock file %s", path)
	}
	return content, nil
}
