package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "store:ratelimit:"

// Quota is the outcome of charging one request to a fixed window.
type Quota struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

func quotaFor(limit int, count int64, resetIn time.Duration) Quota {
	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}
	return Quota{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: int(remaining),
		ResetIn:   resetIn,
	}
}

// RedisRateLimiter counts requests in Redis so limits hold across instances.
// The window starts with the first request for a key.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int
	period time.Duration
}

// NewRedisRateLimiter allows limit requests per key in each period
func NewRedisRateLimiter(client redis.Cmdable, limit int, period time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, period: period}
}

// Take increments the counter for key and reports the remaining quota
func (l *RedisRateLimiter) Take(ctx context.Context, key string) (Quota, error) {
	k := rateLimitKeyPrefix + key

	var count *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		count = p.Incr(ctx, k)
		ttl = p.PTTL(ctx, k)
		return nil
	}); err != nil {
		return Quota{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	resetIn := ttl.Val()
	if resetIn <= 0 {
		if err := l.client.PExpire(ctx, k, l.period).Err(); err != nil {
			return Quota{}, fmt.Errorf("rate limit %s: %w", key, err)
		}
		resetIn = l.period
	}
	return quotaFor(l.limit, count.Val(), resetIn), nil
}

type window struct {
	count   int64
	started time.Time
}

// MemoryRateLimiter keeps windows in process memory. It is used when Redis
// is disabled.
type MemoryRateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryRateLimiter allows limit requests per key in each period. Call
// Stop to end the sweep loop.
func NewMemoryRateLimiter(limit int, period time.Duration) *MemoryRateLimiter {
	l := &MemoryRateLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

func (l *MemoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(2 * l.period)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *MemoryRateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, w := range l.windows {
		if now.Sub(w.started) >= l.period {
			delete(l.windows, key)
		}
	}
}

// Stop ends the sweep loop. Safe to call more than once.
func (l *MemoryRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Take charges one request to key
func (l *MemoryRateLimiter) Take(_ context.Context, key string) (Quota, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.started) >= l.period {
		w = &window{started: now}
		l.windows[key] = w
	}
	w.count++
	return quotaFor(l.limit, w.count, l.period-now.Sub(w.started)), nil
}
