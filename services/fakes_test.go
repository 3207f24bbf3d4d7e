package services

import (
	"sync"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// FakeKVStore is a test-only fake implementing core.KVStore. It stores
// values in a map and exposes error fields for behavior injection.
type FakeKVStore struct {
	data map[string][]byte
	mu   sync.RWMutex

	loadErr   error
	storeErr  error
	deleteErr error
}

var _ core.KVStore = (*FakeKVStore)(nil)

func NewFakeKVStore() *FakeKVStore {
	return &FakeKVStore{data: make(map[string][]byte)}
}

func (f *FakeKVStore) Load(key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	value, ok := f.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return value, nil
}

func (f *FakeKVStore) Store(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	f.data[key] = value
	return nil
}

func (f *FakeKVStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, key)
	return nil
}

func (f *FakeKVStore) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string][]byte)
	return nil
}
