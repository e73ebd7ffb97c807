package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process. Values are stored JSON-encoded so
// readers never share mutable state with writers.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after defaultExpiration
// unless a per-entry expiration is given.
func NewMemoryCache(defaultExpiration time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultExpiration, 2*defaultExpiration),
	}
}

func (m *MemoryCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw.([]byte), dest)
}

func (m *MemoryCache) SetJSON(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store.Set(key, jsonData, expirationOrDefault(expiration))
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.store.Delete(key)
	}
	return nil
}

// SetNX relies on go-cache's Add, which fails when a live entry exists.
func (m *MemoryCache) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if err := m.store.Add(key, value, expirationOrDefault(expiration)); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}

func expirationOrDefault(expiration time.Duration) time.Duration {
	if expiration <= 0 {
		return gocache.DefaultExpiration
	}
	return expiration
}
