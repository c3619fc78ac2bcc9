package storage

import (
	"fmt"
	"sync"
)

// MemoryBackend is an in-process Backend with an optional byte quota.
// It backs tests and ephemeral sessions; nothing survives the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int64 // 0 means unbounded

	// FailWrites forces every Set to fail. Tests use it to exercise the
	// optimistic-write policy without filling the quota.
	FailWrites bool
}

// NewMemoryBackend creates an empty in-memory backend.
// A quota of 0 means unbounded.
func NewMemoryBackend(quota int64) *MemoryBackend {
	return &MemoryBackend{
		data:  make(map[string]string),
		quota: quota,
	}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return fmt.Errorf("write refused")
	}

	if m.quota > 0 {
		used := m.usedLocked()
		// Replacing a key frees its old bytes first.
		used -= int64(len(m.data[key]))
		if used+int64(len(value)) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Remaining implements Capacity.
func (m *MemoryBackend) Remaining() (int64, bool) {
	if m.quota <= 0 {
		return 0, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quota - m.usedLocked(), true
}

// Len returns the number of stored keys.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryBackend) usedLocked() int64 {
	var used int64
	for _, v := range m.data {
		used += int64(len(v))
	}
	return used
}
