package config

import "time"

// Cache backends. CacheBackendNone reads every tenant straight from Postgres.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// App holds service-level settings.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"socialkit"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	TenantCacheBackend string        `env:"TENANT_CACHE_BACKEND" envDefault:"none"` // none, memory or redis
	TenantCacheTTL     time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`

	// WeComStoreBackend selects where suite tickets and access tokens live.
	WeComStoreBackend string `env:"WECOM_STORE_BACKEND" envDefault:"redis"`
}

// UsesRedis reports whether any component is configured to need a Redis connection.
func (a App) UsesRedis() bool {
	return a.TenantCacheBackend == CacheBackendRedis || a.WeComStoreBackend == CacheBackendRedis
}
