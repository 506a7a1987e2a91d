package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory RecordStore. It backs dry runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*ContentRecord
}

var _ RecordStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*ContentRecord),
	}
}

// Create stores the record, enforcing slug uniqueness under the store lock.
func (s *MemoryStore) Create(_ context.Context, record *ContentRecord) (*PersistedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Slug]; exists {
		return nil, fmt.Errorf("record %s: %w", record.Slug, ErrDuplicateSlug)
	}

	stored := *record
	s.records[record.Slug] = &stored

	return &PersistedRecord{
		ID:        uuid.NewString(),
		Slug:      record.Slug,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Get returns the stored record for a slug, if present.
func (s *MemoryStore) Get(slug string) (*ContentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[slug]
	return record, ok
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}
