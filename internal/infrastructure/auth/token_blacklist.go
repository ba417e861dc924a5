package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist holds the ids of access tokens revoked before they expire (logout)
type TokenBlacklist interface {
	// AddToBlacklist revokes a token id; ttl should be the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token id has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// BlacklistKeyPrefix namespaces revoked token ids in Redis
const BlacklistKeyPrefix = "store:token:blacklist:"

// RedisTokenBlacklist shares revocations across instances. Each entry
// expires with the token it revokes.
type RedisTokenBlacklist struct {
	client redis.Cmdable
}

// NewRedisTokenBlacklist creates a token blacklist on an existing Redis client
func NewRedisTokenBlacklist(client redis.Cmdable) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// AddToBlacklist revokes jti for ttl. Non-positive ttls are ignored because
// the token has already expired.
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, BlacklistKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

// IsBlacklisted reports whether jti has been revoked
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, BlacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token %s: %w", jti, err)
	}
	return n == 1, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is used when Redis is disabled. Revocations are
// local to the process; expired entries are swept on every write.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	now     func() time.Time
	expires map[string]time.Time
}

// NewInMemoryTokenBlacklist creates an empty in-process blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{now: time.Now, expires: make(map[string]time.Time)}
}

// AddToBlacklist revokes jti for ttl
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for id, at := range b.expires {
		if !now.Before(at) {
			delete(b.expires, id)
		}
	}
	b.expires[jti] = now.Add(ttl)
	return nil
}

// IsBlacklisted reports whether jti is revoked and the revocation is live
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	at, ok := b.expires[jti]
	return ok && b.now().Before(at), nil
}

// Len returns the number of tracked revocations, expired ones included
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.expires)
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
