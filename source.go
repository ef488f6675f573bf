package localedata

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Source is the storage collaborator: one read-only document per identifier.
type Source interface {
	// Read returns the raw record for id. A missing record must produce an
	// error matching ErrRecordNotFound (see NotFound).
	Read(ctx context.Context, id string) (Map, error)

	// List returns every identifier with a record, RootID included.
	List(ctx context.Context) ([]string, error)
}

// MemorySource serves records held in memory.
type MemorySource struct {
	mu      sync.RWMutex
	records map[string]Map
}

// NewMemorySource returns a source over records. The map is copied; the
// records themselves are not.
func NewMemorySource(records map[string]Map) *MemorySource {
	return &MemorySource{records: maps.Clone(records)}
}

// Put adds or replaces the record for id.
func (s *MemorySource) Put(id string, record Map) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]Map)
	}
	s.records[id] = record
}

func (s *MemorySource) Read(_ context.Context, id string) (Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, NotFound(id)
	}
	if record == nil {
		return Map{}, nil
	}
	return record, nil
}

func (s *MemorySource) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.records)), nil
}

var _ Source = (*MemorySource)(nil)
