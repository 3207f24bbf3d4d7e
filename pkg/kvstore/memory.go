package kvstore

import (
	"sync"
	"sync/atomic"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// Stats are simple counters for store traffic, intended for diagnostics.
type Stats struct {
	Loads   int64 `json:"loads"`
	Misses  int64 `json:"misses"`
	Stores  int64 `json:"stores"`
	Deletes int64 `json:"deletes"`
	Keys    int   `json:"keys"`
}

// Memory is a mutex-guarded in-process key-value store. It is the default
// backend for tests and for runs that don't need durability.
type Memory struct {
	data map[string][]byte
	mu   sync.RWMutex

	// counters
	loads   int64
	misses  int64
	stores  int64
	deletes int64
}

var _ core.KVStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		atomic.AddInt64(&m.misses, 1)
		return nil, core.ErrKeyNotFound
	}

	atomic.AddInt64(&m.loads, 1)
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Store(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored

	atomic.AddInt64(&m.stores, 1)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, existed := m.data[key]; existed {
		delete(m.data, key)
		atomic.AddInt64(&m.deletes, 1)
	}
	return nil
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Memory) Stats() Stats {
	return Stats{
		Loads:   atomic.LoadInt64(&m.loads),
		Misses:  atomic.LoadInt64(&m.misses),
		Stores:  atomic.LoadInt64(&m.stores),
		Deletes: atomic.LoadInt64(&m.deletes),
		Keys:    m.Len(),
	}
}
