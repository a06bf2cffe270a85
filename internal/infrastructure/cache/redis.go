package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "fsb:"
	pendingMarker    = "pending"
	paidPrefix       = "paid:"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisChargeLedger shares charge keys across instances. A key holds
// "pending" while a charge is in flight and "paid:<reference>" afterwards.
type RedisChargeLedger struct {
	client    *redis.Client
	keyPrefix string
}

var _ interfaces.IChargeLedger = (*RedisChargeLedger)(nil)

func NewRedisChargeLedger(client *redis.Client) *RedisChargeLedger {
	return &RedisChargeLedger{client: client, keyPrefix: defaultKeyPrefix}
}

// Reserve uses SETNX so exactly one caller wins the key.
func (l *RedisChargeLedger) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.keyPrefix+key, pendingMarker, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve charge key: %w", err)
	}
	return ok, nil
}

func (l *RedisChargeLedger) Complete(ctx context.Context, key, paymentRef string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.keyPrefix+key, paidPrefix+paymentRef, ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete charge key: %w", err)
	}
	return nil
}

func (l *RedisChargeLedger) Lookup(ctx context.Context, key string) (string, bool, error) {
	v, err := l.client.Get(ctx, l.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read charge key: %w", err)
	}
	if !strings.HasPrefix(v, paidPrefix) {
		return "", false, nil
	}
	return strings.TrimPrefix(v, paidPrefix), true, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release deletes the key only while it is still pending.
func (l *RedisChargeLedger) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.keyPrefix + key}, pendingMarker).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release charge key: %w", err)
	}
	return nil
}

func (l *RedisChargeLedger) Forget(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to forget charge key: %w", err)
	}
	return nil
}

// RedisDocumentCache stores JSON snapshots with a TTL.
type RedisDocumentCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ interfaces.IDocumentCache = (*RedisDocumentCache)(nil)

func NewRedisDocumentCache(client *redis.Client, ttl time.Duration) *RedisDocumentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisDocumentCache{client: client, keyPrefix: defaultKeyPrefix + "doc:", ttl: ttl}
}

func (c *RedisDocumentCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisDocumentCache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl).Err()
}

func (c *RedisDocumentCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
