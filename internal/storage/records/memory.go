package records

import (
	"context"
	"sync"
)

// Memory is a process-local BlobStore.
type Memory struct {
	mu   sync.RWMutex
	vals map[string][]byte
}

func NewMemory() *Memory { return &Memory{vals: map[string][]byte{}} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = append([]byte(nil), value...)
	return nil
}
