package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "surf:token:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Entry is what a cached bearer token resolves to.
type Entry struct {
	TokenID uint
	UserID  uint
}

// TokenCache keeps token hash -> Entry lookups in redis.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache connects to redis and verifies the connection.
func NewTokenCache(cfg *Config) (*TokenCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &TokenCache{client: rdb, ttl: cfg.TTL}, nil
}

func (c *TokenCache) Get(ctx context.Context, hash string) (Entry, bool, error) {
	val, err := c.client.Get(ctx, Key(hash)).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}
	e, err := ParseEntry(val)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (c *TokenCache) Set(ctx context.Context, hash string, e Entry) error {
	if err := c.client.Set(ctx, Key(hash), e.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *TokenCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *TokenCache) Close() error {
	return c.client.Close()
}

func Key(hash string) string {
	return keyPrefix + hash
}

func (e Entry) String() string {
	return fmt.Sprintf("%d:%d", e.TokenID, e.UserID)
}

func ParseEntry(s string) (Entry, error) {
	tok, user, ok := strings.Cut(s, ":")
	if !ok {
		return Entry{}, fmt.Errorf("malformed cache entry %q", s)
	}
	tokenID, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed cache entry %q: %w", s, err)
	}
	userID, err := strconv.ParseUint(user, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed cache entry %q: %w", s, err)
	}
	return Entry{TokenID: uint(tokenID), UserID: uint(userID)}, nil
}
