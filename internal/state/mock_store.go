package state

import (
	"sync"
	"time"
)

// MockStore is an in-memory Store for testing.
type MockStore struct {
	mu       sync.Mutex
	runs     []RunRecord
	lastSync time.Time

	// Error injection
	RecordError error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) LastSync() (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync, nil
}

func (m *MockStore) RecordRun(rec *RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordError != nil {
		return m.RecordError
	}

	m.runs = append(m.runs, *rec)
	if rec.Succeeded() {
		m.lastSync = rec.FinishedAt
	}
	return nil
}

func (m *MockStore) History(limit int) ([]RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]RunRecord, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, m.runs[i])
	}
	return records, nil
}

func (m *MockStore) Close() error {
	return nil
}

// Runs returns all recorded runs, oldest first.
func (m *MockStore) Runs() []RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunRecord(nil), m.runs...)
}
