package services

import (
	"coffeeshop_server/structs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// CacheService is a read-through cache over redis. With caching disabled
// every read misses and every write is dropped. Redis failures are logged
// and treated as misses so requests fall through to the database.
//
// Entries are namespaced by a generation counter. Invalidation bumps the
// counter, so a load that raced a mutation stores its result under a
// generation no reader asks for any more.
type CacheService struct {
	logger  *gecho.Logger
	config  *structs.CacheConfig
	client  *redis.Client
	entries entryStore
}

// entryStore is the subset of redis the read-through path needs.
type entryStore interface {
	get(ctx context.Context, key string) ([]byte, error) // redis.Nil on a miss
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	incr(ctx context.Context, key string) (int64, error)
}

type redisEntries struct {
	client *redis.Client
}

func (r redisEntries) get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key).Bytes()
}

func (r redisEntries) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisEntries) incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func NewCacheService(logger *gecho.Logger, cfg *structs.CacheConfig) *CacheService {
	cs := &CacheService{logger: logger, config: cfg}
	if cfg == nil || !cfg.Enabled {
		return cs
	}
	cs.client = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
	cs.entries = redisEntries{client: cs.client}
	return cs
}

// Enabled reports whether cache entries are stored anywhere.
func (cs *CacheService) Enabled() bool {
	return cs != nil && cs.entries != nil
}

// Close closes the redis connection pool
func (cs *CacheService) Close() error {
	if cs == nil || cs.client == nil {
		return nil
	}
	return cs.client.Close()
}

func (cs *CacheService) key(parts ...string) string {
	prefix := "coffeeshop"
	if cs.config != nil && cs.config.KeyPrefix != "" {
		prefix = strings.TrimSuffix(cs.config.KeyPrefix, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}

func (cs *CacheService) ttl() time.Duration {
	if cs.config != nil && cs.config.TTL > 0 {
		return cs.config.TTL
	}
	return 5 * time.Minute
}

// generation returns the current invalidation generation, 0 before the
// first invalidation.
func (cs *CacheService) generation(ctx context.Context) (int64, error) {
	raw, err := cs.entries.get(ctx, cs.key("generation"))
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed cache generation %q: %w", raw, err)
	}
	return gen, nil
}

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		cs.logger.Warn("Failed to encode cache entry", gecho.Field("key", key), gecho.Field("error", err))
		return
	}
	if err := cs.entries.set(ctx, key, data, cs.ttl()); err != nil {
		cs.logger.Warn("Failed to write cache entry", gecho.Field("key", key), gecho.Field("error", err))
	}
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, bool) {
	val, err := cs.entries.get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cs.logger.Warn("Failed to read cache entry", gecho.Field("key", key), gecho.Field("error", err))
		}
		return nil, false
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		cs.logger.Warn("Discarding undecodable cache entry", gecho.Field("key", key), gecho.Field("error", err))
		return nil, false
	}
	return &result, true
}

// cached serves key from the cache or computes, stores and returns it. The
// generation is read before load runs, so a result computed across an
// invalidation is filed under the old generation.
func cached[T any](ctx context.Context, cs *CacheService, key string, load func() (T, error)) (T, error) {
	if !cs.Enabled() {
		return load()
	}
	gen, err := cs.generation(ctx)
	if err != nil {
		cs.logger.Warn("Failed to read cache generation", gecho.Field("error", err))
		return load()
	}
	versioned := key + "#" + strconv.FormatInt(gen, 10)

	if hit, ok := getJSON[T](ctx, cs, versioned); ok {
		return *hit, nil
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	setJSON(ctx, cs, versioned, value)
	return value, nil
}

// InvalidateAll retires every cached entry by starting a new generation.
// Mutations can reprice orders across all three resources, so they retire
// everything. Retired entries expire with their TTL.
func (cs *CacheService) InvalidateAll(ctx context.Context) {
	if !cs.Enabled() {
		return
	}
	if _, err := cs.entries.incr(ctx, cs.key("generation")); err != nil {
		cs.logger.Warn("Failed to advance cache generation, clearing keys", gecho.Field("error", err))
		if err := cs.ClearAll(ctx); err != nil {
			cs.logger.Warn("Failed to invalidate cache", gecho.Field("error", err))
		}
	}
}

// ClearAll drops every key under the configured prefix and reports failures.
func (cs *CacheService) ClearAll(ctx context.Context) error {
	if cs == nil || cs.client == nil {
		return nil
	}
	return cs.DeletePattern(ctx, cs.key("*"))
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := cs.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

// IncrementRateLimit atomically increments the counter for one client and
// bucket, starting its window on the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, client, bucket string, window time.Duration) (int64, error) {
	if cs == nil || cs.client == nil {
		return 0, errors.New("cache is disabled")
	}
	key := cs.key("ratelimit", bucket, client)

	pipe := cs.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return incr.Val(), nil
}

func (cs *CacheService) Ping(ctx context.Context) error {
	if cs == nil || cs.client == nil {
		return errors.New("cache is disabled")
	}
	return cs.client.Ping(ctx).Err()
}

// GetConnectionStats returns redis pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if cs == nil || cs.client == nil {
		return map[string]any{"enabled": false}
	}
	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
