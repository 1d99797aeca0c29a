package catalogcache

import (
	"context"
	"strings"
	"time"

	"github.com/kailas-cloud/assetsearch/internal/db"
)

// mockStore is an in-memory stand-in for the consumer interface.
type mockStore struct {
	data  map[string][]byte
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) ([]byte, error)
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	p := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, p) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
