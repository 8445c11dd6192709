package store

import (
	"context"
	"sync"

	"github.com/JonMunkholm/pinstore/internal/core"
)

// MemoryStore keeps records in process memory only.
//
// Records are lost when the process exits. The store reports itself as
// non-durable so /health can surface that to operators.
type MemoryStore struct {
	mu         sync.RWMutex
	records    []core.Record
	maxRecords int
}

// NewMemoryStore creates an empty in-memory store holding at most maxRecords.
func NewMemoryStore(maxRecords int) *MemoryStore {
	if maxRecords <= 0 {
		maxRecords = core.DefaultMaxRecords
	}
	return &MemoryStore{maxRecords: maxRecords}
}

func (s *MemoryStore) Append(ctx context.Context, rec core.Record) error {
	if err := ctx.Err(); err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = core.KeepTail(append(s.records, rec), s.maxRecords)
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Mode() string  { return ModeMemory }
func (s *MemoryStore) Durable() bool { return false }
