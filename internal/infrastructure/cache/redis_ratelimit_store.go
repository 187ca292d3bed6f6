package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "shiplabel:"

// RedisRateLimitStore implements RateLimitStore using Redis counters.
// Instances sharing a Redis share their limits.
type RedisRateLimitStore struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
	now       func() time.Time
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisRateLimitStore connects to Redis and verifies the connection
func NewRedisRateLimitStore(cfg RedisConfig, limit int, window time.Duration) (*RedisRateLimitStore, error) {
	if limit <= 0 || window <= 0 {
		return nil, ErrInvalidRateLimit
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRateLimitStoreWithClient(client, cfg.KeyPrefix, limit, window), nil
}

// NewRedisRateLimitStoreWithClient creates a store with an existing Redis client.
// The connection is not checked.
func NewRedisRateLimitStoreWithClient(client *redis.Client, keyPrefix string, limit int, window time.Duration) *RedisRateLimitStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisRateLimitStore{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
		now:       time.Now,
	}
}

// Take increments the counter for key in the current window. INCR and the
// expiry run in one transaction so a counter never outlives its window.
func (s *RedisRateLimitStore) Take(ctx context.Context, key string) (RateLimitResult, error) {
	start := windowStart(s.now(), s.window)
	resetAt := start.Add(s.window)
	redisKey := s.windowKey(key, start)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireAt(ctx, redisKey, resetAt.Add(time.Second))
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count request: %w", err)
	}

	return newResult(incr.Val(), s.limit, resetAt), nil
}

// windowKey is prefix + "ratelimit:" + key + ":" + window start in unix seconds
func (s *RedisRateLimitStore) windowKey(key string, start time.Time) string {
	return s.keyPrefix + "ratelimit:" + key + ":" + strconv.FormatInt(start.Unix(), 10)
}

// Close closes the Redis connection
func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client
func (s *RedisRateLimitStore) GetClient() *redis.Client {
	return s.client
}

var _ RateLimitStore = (*RedisRateLimitStore)(nil)
