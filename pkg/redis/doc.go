// Package redis connects the service to Redis with github.com/redis/go-redis/v9.
//
// The client returned by Connect backs the WeCom suite ticket and access
// token store and, when TENANT_CACHE_BACKEND=redis, the social tenant cache.
// Healthcheck plugs into the readiness endpoint.
package redis
