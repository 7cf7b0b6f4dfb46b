package socialtenant

import (
	"context"
	"errors"
	"time"

	"github.com/zhangzhonghe/apitable/pkg/metrics"
)

// DefaultCacheTTL is used when NewCachedGetter receives a non-positive ttl.
const DefaultCacheTTL = 5 * time.Minute

// CachedGetter caches the descriptive columns of found tenants. Status and
// permanent code are never cached: every lookup re-reads them from the source,
// so a disabled or re-authorized corp is seen immediately.
type CachedGetter struct {
	next  Source
	cache Cache
	ttl   time.Duration
}

// NewCachedGetter wraps next with cache.
func NewCachedGetter(next Source, cache Cache, ttl time.Duration) *CachedGetter {
	if next == nil {
		panic("socialtenant: Source is required")
	}
	if cache == nil {
		panic("socialtenant: Cache is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedGetter{next: next, cache: cache, ttl: ttl}
}

func cacheKey(appID, tenantID string) string {
	return appID + ":" + tenantID
}

func (g *CachedGetter) GetByAppIDAndTenantID(ctx context.Context, appID, tenantID string) (*Tenant, error) {
	key := cacheKey(appID, tenantID)
	if t, ok := g.cache.Get(ctx, key); ok {
		metrics.TenantCacheLookups.WithLabelValues("hit").Inc()

		creds, err := g.next.GetCredentials(ctx, appID, tenantID)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				g.cache.Delete(ctx, key)
			}
			return nil, err
		}
		t.PermanentCode = creds.PermanentCode
		t.Status = creds.Status
		return t, nil
	}
	metrics.TenantCacheLookups.WithLabelValues("miss").Inc()

	t, err := g.next.GetByAppIDAndTenantID(ctx, appID, tenantID)
	if err != nil {
		return nil, err
	}
	cached := *t
	cached.PermanentCode = ""
	g.cache.Set(ctx, key, &cached, g.ttl)
	return t, nil
}

// Invalidate drops the cached entry.
func (g *CachedGetter) Invalidate(ctx context.Context, appID, tenantID string) {
	g.cache.Delete(ctx, cacheKey(appID, tenantID))
}
