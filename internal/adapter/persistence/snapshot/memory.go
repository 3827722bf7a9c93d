package snapshot

import (
	"context"
	"sync"

	"credito_tributario/internal/usecase/interfaces"
)

// MemoryStorage keeps snapshots in process memory. Sessions do not survive a
// restart; used by default in development and in tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ interfaces.ISnapshotStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]byte)}
}

func (s *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

func (s *MemoryStorage) Save(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), payload...)
	return nil
}
