package socialtenant

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores tenants by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type memoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache returns a process-local cache that sweeps expired entries every minute.
func NewMemoryCache() Cache {
	return &memoryCache{c: gocache.New(5*time.Minute, time.Minute)}
}

func (m *memoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	t, ok := v.(Tenant)
	if !ok {
		return nil, false
	}
	// hand out a copy so callers cannot mutate the cached value
	return &t, true
}

func (m *memoryCache) Set(_ context.Context, key string, tenant *Tenant, ttl time.Duration) {
	if tenant == nil {
		return
	}
	m.c.Set(key, *tenant, ttl)
}

func (m *memoryCache) Delete(_ context.Context, key string) {
	m.c.Delete(key)
}

type redisCache struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisCache returns a cache shared between replicas. Values are stored as JSON.
// Redis failures degrade to cache misses.
func NewRedisCache(rdb redis.UniversalClient, prefix string) Cache {
	return &redisCache{rdb: rdb, prefix: prefix + "social_tenant:"}
}

func (r *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (r *redisCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	if tenant == nil {
		return
	}
	data, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	_ = r.rdb.Set(ctx, r.prefix+key, data, ttl).Err()
}

func (r *redisCache) Delete(ctx context.Context, key string) {
	_ = r.rdb.Del(ctx, r.prefix+key).Err()
}
