package registry

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Registry for tests and single-node development.
type Memory struct {
	mu    sync.RWMutex
	files map[string]FileInfo
	order []string
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]FileInfo)}
}

func (m *Memory) Get(ctx context.Context, id string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.files[id]
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return info, nil
}

func (m *Memory) Put(ctx context.Context, info FileInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.files[info.ID]; !exists {
		m.order = append(m.order, info.ID)
	}
	m.files[info.ID] = info
	return nil
}

func (m *Memory) List(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FileInfo, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.files[id])
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.files, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
