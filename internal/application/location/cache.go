package location

import (
	"context"

	"go.uber.org/zap"
)

// ResolutionCache caches resolved pincode chains. Implementations namespace
// entries by a generation that Invalidate advances, so no entry survives a
// location write. Set takes the generation read before the chain was loaded
// and stores nothing if an Invalidate happened in between.
type ResolutionCache interface {
	Get(ctx context.Context, pincode string) (*ResolvedLocation, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, gen int64, pincode string, loc *ResolvedLocation) error
	Invalidate(ctx context.Context) error
}

// NoopResolutionCache never stores anything
type NoopResolutionCache struct{}

func (NoopResolutionCache) Get(context.Context, string) (*ResolvedLocation, bool, error) {
	return nil, false, nil
}

func (NoopResolutionCache) Generation(context.Context) (int64, error) { return 0, nil }

func (NoopResolutionCache) Set(context.Context, int64, string, *ResolvedLocation) error { return nil }

func (NoopResolutionCache) Invalidate(context.Context) error { return nil }

var _ ResolutionCache = NoopResolutionCache{}

// invalidateCache bumps the cache generation after a write. Cache failures are
// logged and otherwise ignored.
func invalidateCache(ctx context.Context, cache ResolutionCache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate location cache", zap.Error(err))
	}
}
