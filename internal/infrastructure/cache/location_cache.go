package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	applocation "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	locationKeyPrefix     = "store:location:"
	locationGenerationKey = locationKeyPrefix + "gen"
	defaultLocationTTL    = 10 * time.Minute
)

// RedisLocationCache caches resolved pincodes in Redis.
//
// Entries are keyed by a generation counter. Invalidate increments the
// counter, which orphans every entry written under the previous generation;
// orphans expire through their TTL.
type RedisLocationCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewRedisLocationCache creates a location cache on an existing Redis client
func NewRedisLocationCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisLocationCache {
	if ttl <= 0 {
		ttl = defaultLocationTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocationCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisLocationCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, locationGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func pincodeKey(gen int64, pincode string) string {
	return fmt.Sprintf("%s%d:pincode:%s", locationKeyPrefix, gen, pincode)
}

// Get returns the cached resolution for a pincode
func (c *RedisLocationCache) Get(ctx context.Context, pincode string) (loc *applocation.ResolvedLocation, hit bool, err error) {
	ctx, span := telemetry.StartSpan(ctx, "cache.location.get", attribute.String("pincode", pincode))
	defer func() {
		span.SetAttributes(attribute.Bool("cache.hit", hit))
		telemetry.RecordError(span, err)
		span.End()
	}()

	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read location cache generation: %w", err)
	}

	data, err := c.client.Get(ctx, pincodeKey(gen, pincode)).Bytes()
	if errors.Is(err, redis.Nil) {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read location cache: %w", err)
	}

	var decoded applocation.ResolvedLocation
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		c.logger.Warn("Discarding corrupt location cache entry", zap.String("pincode", pincode), zap.Error(jsonErr))
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&c.hits, 1)
	return &decoded, true, nil
}

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Generation returns the current cache generation
func (c *RedisLocationCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read location cache generation: %w", err)
	}
	return gen, nil
}

// Set stores a resolution read under generation gen. The write is dropped
// when the generation has moved on since.
func (c *RedisLocationCache) Set(ctx context.Context, gen int64, pincode string, loc *applocation.ResolvedLocation) error {
	if loc == nil {
		return nil
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{locationGenerationKey, pincodeKey(gen, pincode)},
		strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to write location cache: %w", err)
	}
	if stored == 0 {
		c.logger.Debug("Dropped stale location cache write",
			zap.String("pincode", pincode), zap.Int64("generation", gen))
	}
	return nil
}

// Invalidate advances the generation so no earlier entry is served again
func (c *RedisLocationCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, locationGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate location cache: %w", err)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *RedisLocationCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// InMemoryLocationCache is the single-process fallback used when Redis is disabled
type InMemoryLocationCache struct {
	hits   int64
	misses int64

	mu         sync.RWMutex
	ttl        time.Duration
	generation int64
	entries    map[string]locationEntry
	now        func() time.Time
}

type locationEntry struct {
	generation int64
	value      applocation.ResolvedLocation
	expiresAt  time.Time
}

// NewInMemoryLocationCache creates an in-memory location cache
func NewInMemoryLocationCache(ttl time.Duration) *InMemoryLocationCache {
	if ttl <= 0 {
		ttl = defaultLocationTTL
	}
	return &InMemoryLocationCache{
		ttl:     ttl,
		entries: make(map[string]locationEntry),
		now:     time.Now,
	}
}

// Get returns the cached resolution for a pincode
func (c *InMemoryLocationCache) Get(_ context.Context, pincode string) (*applocation.ResolvedLocation, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[pincode]
	if !ok || entry.generation != c.generation || c.now().After(entry.expiresAt) {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&c.hits, 1)
	loc := entry.value
	return &loc, true, nil
}

// Stats returns hit and miss counters
func (c *InMemoryLocationCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Generation returns the current cache generation
func (c *InMemoryLocationCache) Generation(context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

// Set stores a resolution unless the cache was invalidated after gen was read
func (c *InMemoryLocationCache) Set(_ context.Context, gen int64, pincode string, loc *applocation.ResolvedLocation) error {
	if loc == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.entries[pincode] = locationEntry{generation: gen, value: *loc, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops every entry
func (c *InMemoryLocationCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries = make(map[string]locationEntry)
	return nil
}

var (
	_ applocation.ResolutionCache = (*RedisLocationCache)(nil)
	_ applocation.ResolutionCache = (*InMemoryLocationCache)(nil)
)
