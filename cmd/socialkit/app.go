package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zhangzhonghe/apitable/pkg/config"
	"github.com/zhangzhonghe/apitable/pkg/logger"
	"github.com/zhangzhonghe/apitable/pkg/pg"
	"github.com/zhangzhonghe/apitable/pkg/redis"
	"github.com/zhangzhonghe/apitable/pkg/requestid"
	"github.com/zhangzhonghe/apitable/pkg/wecom"
	"github.com/zhangzhonghe/apitable/svc/editionlog"
	"github.com/zhangzhonghe/apitable/svc/socialtenant"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg   config.App
	pgCfg pg.Config
	log   *slog.Logger

	pool *pgxpool.Pool
	rdb  *goredis.Client

	closeOnce sync.Once

	registry   *wecom.Registry
	tenants    editionlog.TenantGetter
	changelogs editionlog.Service
}

func newLogger(cfg config.App) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}

// newDBApp connects to Postgres only.
func newDBApp(ctx context.Context) (*app, error) {
	a := &app{}
	if err := config.Load(&a.cfg); err != nil {
		return nil, err
	}
	if err := config.Load(&a.pgCfg); err != nil {
		return nil, err
	}
	a.log = newLogger(a.cfg)
	logger.SetAsDefault(a.log)

	pool, err := pg.Connect(ctx, a.pgCfg)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	return a, nil
}

// newApp wires everything needed to record changelogs.
func newApp(ctx context.Context) (*app, error) {
	a, err := newDBApp(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	var redisCfg redis.Config
	if a.cfg.UsesRedis() {
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		a.rdb = rdb
	}

	var wecomCfg wecom.Config
	if err := config.Load(&wecomCfg); err != nil {
		return err
	}
	suites, err := wecom.LoadSuites(wecomCfg.SuitesFile)
	if err != nil {
		return err
	}

	var store wecom.Store
	switch a.cfg.WeComStoreBackend {
	case config.CacheBackendRedis:
		store = wecom.NewRedisStore(a.rdb, redisCfg.KeyPrefix)
	case config.CacheBackendMemory:
		store = wecom.NewMemoryStore()
	default:
		return fmt.Errorf("unknown WECOM_STORE_BACKEND %q", a.cfg.WeComStoreBackend)
	}

	opts := append(wecom.FromConfig(wecomCfg), wecom.WithLogger(a.log))
	a.registry, err = wecom.NewRegistry(suites, store, opts...)
	if err != nil {
		return err
	}

	a.tenants, err = newTenantGetter(a.cfg, socialtenant.NewPostgresStore(a.pool), a.rdb, redisCfg.KeyPrefix)
	if err != nil {
		return err
	}

	a.changelogs = editionlog.NewService(
		editionlog.NewPostgresStore(a.pool),
		a.tenants,
		a.registry,
		editionlog.WithLogger(a.log),
	)

	a.log.InfoContext(ctx, "application wired",
		slog.Any("suites", a.registry.SuiteIDs()),
		slog.String("tenant_cache", a.cfg.TenantCacheBackend),
		slog.String("wecom_store", a.cfg.WeComStoreBackend),
	)
	return nil
}

// newTenantGetter puts the configured cache, if any, in front of src.
func newTenantGetter(cfg config.App, src socialtenant.Source, rdb goredis.UniversalClient, keyPrefix string) (editionlog.TenantGetter, error) {
	var cache socialtenant.Cache
	switch cfg.TenantCacheBackend {
	case config.CacheBackendNone, "":
		return src, nil
	case config.CacheBackendRedis:
		cache = socialtenant.NewRedisCache(rdb, keyPrefix)
	case config.CacheBackendMemory:
		cache = socialtenant.NewMemoryCache()
	default:
		return nil, fmt.Errorf("unknown TENANT_CACHE_BACKEND %q", cfg.TenantCacheBackend)
	}
	return socialtenant.NewCachedGetter(src, cache, cfg.TenantCacheTTL), nil
}

// close is safe to call more than once.
func (a *app) close() {
	a.closeOnce.Do(func() {
		if a.rdb != nil {
			_ = a.rdb.Close()
		}
		if a.pool != nil {
			a.pool.Close()
		}
	})
}
