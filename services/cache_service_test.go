package services

import (
	"coffeeshop_server/structs"
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryEntries stands in for redis in the read-through path.
type memoryEntries struct {
	mu      sync.Mutex
	values  map[string][]byte
	failGet error
}

func newMemoryEntries() *memoryEntries {
	return &memoryEntries{values: map[string][]byte{}}
}

func (m *memoryEntries) get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.values[key]
	if !ok {
		return nil, redis.Nil
	}
	return v, nil
}

func (m *memoryEntries) set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryEntries) incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(string(m.values[key]), 10, 64)
	n++
	m.values[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func newMemoryCache() (*CacheService, *memoryEntries) {
	entries := newMemoryEntries()
	cs := &CacheService{
		logger:  gecho.NewDefaultLogger(),
		config:  &structs.CacheConfig{Enabled: true, KeyPrefix: "coffeeshop"},
		entries: entries,
	}
	return cs, entries
}

func TestCachedServesHitsUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	cs, _ := newMemoryCache()

	calls := 0
	load := func() (string, error) {
		calls++
		return "v" + strconv.Itoa(calls), nil
	}

	v, err := cached(ctx, cs, cs.key("coffee", "1"), load)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	v, err = cached(ctx, cs, cs.key("coffee", "1"), load)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, 1, calls)

	cs.InvalidateAll(ctx)

	v, err = cached(ctx, cs, cs.key("coffee", "1"), load)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, calls)
}

func TestLoadRacingInvalidationIsNotServedLater(t *testing.T) {
	ctx := context.Background()
	cs, _ := newMemoryCache()
	key := cs.key("order", "queue")

	// The mutation commits and invalidates while the read is still loading
	// the pre-mutation value.
	stale, err := cached(ctx, cs, key, func() (string, error) {
		cs.InvalidateAll(ctx)
		return "before", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "before", stale)

	fresh, err := cached(ctx, cs, key, func() (string, error) {
		return "after", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after", fresh)
}

func TestCachedFallsThroughWhenGenerationUnreadable(t *testing.T) {
	ctx := context.Background()
	cs, entries := newMemoryCache()
	entries.failGet = errors.New("connection reset")

	calls := 0
	for range 2 {
		v, err := cached(ctx, cs, cs.key("barista", "0"), func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, entries.values)
}

func TestCachedDoesNotStoreFailedLoads(t *testing.T) {
	ctx := context.Background()
	cs, entries := newMemoryCache()

	_, err := cached(ctx, cs, cs.key("coffee", "9"), func() (int, error) {
		return 0, errors.New("not found")
	})
	assert.Error(t, err)
	assert.Empty(t, entries.values)
}

func TestCacheKeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "coffeeshop:order:1"},
		{"coffeeshop", "coffeeshop:order:1"},
		{"shop:", "shop:order:1"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			cs := NewCacheService(gecho.NewDefaultLogger(), &structs.CacheConfig{KeyPrefix: tt.prefix})
			assert.Equal(t, tt.want, cs.key("order", "1"))
		})
	}
}
