package keystore

import (
	"context"
	"sync"
)

// Memory keeps credentials in process memory. Values are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Put(_ context.Context, profile, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[profile] = value
	return nil
}

func (m *Memory) Fetch(_ context.Context, profile string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[profile], nil
}
