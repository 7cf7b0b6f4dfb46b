package wecom

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store keeps suite tickets and suite access tokens.
// Getters return ErrNotStored when the value is absent or expired.
type Store interface {
	SuiteTicket(ctx context.Context, suiteID string) (string, error)
	SetSuiteTicket(ctx context.Context, suiteID, ticket string, ttl time.Duration) error
	AccessToken(ctx context.Context, suiteID string) (string, error)
	SetAccessToken(ctx context.Context, suiteID, token string, ttl time.Duration) error
	DeleteAccessToken(ctx context.Context, suiteID string) error
}

func ticketKey(suiteID string) string { return "wecom:suite_ticket:" + suiteID }
func tokenKey(suiteID string) string  { return "wecom:suite_access_token:" + suiteID }

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns a process-local Store. Values do not survive restarts
// and are not shared between replicas.
func NewMemoryStore() Store {
	return &memoryStore{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (s *memoryStore) get(key string) (string, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", ErrNotStored
	}
	str, _ := v.(string)
	if str == "" {
		return "", ErrNotStored
	}
	return str, nil
}

func (s *memoryStore) SuiteTicket(_ context.Context, suiteID string) (string, error) {
	return s.get(ticketKey(suiteID))
}

func (s *memoryStore) SetSuiteTicket(_ context.Context, suiteID, ticket string, ttl time.Duration) error {
	s.c.Set(ticketKey(suiteID), ticket, ttl)
	return nil
}

func (s *memoryStore) AccessToken(_ context.Context, suiteID string) (string, error) {
	return s.get(tokenKey(suiteID))
}

func (s *memoryStore) SetAccessToken(_ context.Context, suiteID, token string, ttl time.Duration) error {
	s.c.Set(tokenKey(suiteID), token, ttl)
	return nil
}

func (s *memoryStore) DeleteAccessToken(_ context.Context, suiteID string) error {
	s.c.Delete(tokenKey(suiteID))
	return nil
}

type redisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store shared by every replica connected to rdb.
func NewRedisStore(rdb redis.UniversalClient, prefix string) Store {
	return &redisStore{rdb: rdb, prefix: prefix}
}

func (s *redisStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotStored
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *redisStore) SuiteTicket(ctx context.Context, suiteID string) (string, error) {
	return s.get(ctx, ticketKey(suiteID))
}

func (s *redisStore) SetSuiteTicket(ctx context.Context, suiteID, ticket string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+ticketKey(suiteID), ticket, ttl).Err()
}

func (s *redisStore) AccessToken(ctx context.Context, suiteID string) (string, error) {
	return s.get(ctx, tokenKey(suiteID))
}

func (s *redisStore) SetAccessToken(ctx context.Context, suiteID, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+tokenKey(suiteID), token, ttl).Err()
}

func (s *redisStore) DeleteAccessToken(ctx context.Context, suiteID string) error {
	return s.rdb.Del(ctx, s.prefix+tokenKey(suiteID)).Err()
}
