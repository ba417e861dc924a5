package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBlacklist() (*InMemoryTokenBlacklist, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	b := NewInMemoryTokenBlacklist()
	b.now = clock.Now
	return b, clock
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	b, clock := newTestBlacklist()

	require.NoError(t, b.AddToBlacklist(ctx, "jti-admin", 15*time.Minute))

	revoked, err := b.IsBlacklisted(ctx, "jti-admin")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = b.IsBlacklisted(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, revoked)

	clock.Advance(15 * time.Minute)
	revoked, err = b.IsBlacklisted(ctx, "jti-admin")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation ends with the token lifetime")
}

func TestInMemoryTokenBlacklist_IgnoresExpiredTokens(t *testing.T) {
	b, _ := newTestBlacklist()

	require.NoError(t, b.AddToBlacklist(context.Background(), "jti-old", 0))
	require.NoError(t, b.AddToBlacklist(context.Background(), "jti-older", -time.Second))
	assert.Zero(t, b.Len())
}

func TestInMemoryTokenBlacklist_SweepsOnWrite(t *testing.T) {
	ctx := context.Background()
	b, clock := newTestBlacklist()

	for _, jti := range []string{"a", "b", "c"} {
		require.NoError(t, b.AddToBlacklist(ctx, jti, time.Minute))
	}
	assert.Equal(t, 3, b.Len())

	clock.Advance(2 * time.Minute)
	require.NoError(t, b.AddToBlacklist(ctx, "d", time.Minute))
	assert.Equal(t, 1, b.Len())
}

func TestInMemoryTokenBlacklist_Concurrent(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryTokenBlacklist()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jti := string(rune('a' + i%26))
			_ = b.AddToBlacklist(ctx, jti, time.Minute)
			_, _ = b.IsBlacklisted(ctx, jti)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, b.Len())
}
