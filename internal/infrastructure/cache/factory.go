package cache

import (
	"fmt"
	"time"

	"github.com/Pratham6392/shipment/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Rate limit backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// RateLimitStoreFactory creates rate limit stores based on configuration
type RateLimitStoreFactory struct {
	redisConfig           config.RedisConfig
	limit                 int
	window                time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RateLimitStoreFactoryOption is a functional option for configuring the factory
type RateLimitStoreFactoryOption func(*RateLimitStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) RateLimitStoreFactoryOption {
	return func(f *RateLimitStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default is true.
func WithInMemoryFallback(allow bool) RateLimitStoreFactoryOption {
	return func(f *RateLimitStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewRateLimitStoreFactory creates a new factory for limit requests per window
func NewRateLimitStoreFactory(cfg config.RedisConfig, limit int, window time.Duration, opts ...RateLimitStoreFactoryOption) *RateLimitStoreFactory {
	f := &RateLimitStoreFactory{
		redisConfig:           cfg,
		limit:                 limit,
		window:                window,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based store
func (f *RateLimitStoreFactory) CreateRedisStore() (RateLimitStore, error) {
	store, err := NewRedisRateLimitStore(RedisConfig{
		Addr:      f.redisConfig.Addr,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	}, f.limit, f.window)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis rate limit store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates a per-process store
func (f *RateLimitStoreFactory) CreateInMemoryStore() (RateLimitStore, error) {
	return NewInMemoryRateLimitStore(f.limit, f.window)
}

// CreateStore creates the store for backend. A redis backend that cannot be
// reached falls back to memory when fallback is allowed.
func (f *RateLimitStoreFactory) CreateStore(backend string) (RateLimitStore, error) {
	switch backend {
	case "", BackendMemory:
		f.logger.Info("using in-memory rate limit store")
		return f.CreateInMemoryStore()
	case BackendRedis:
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", backend)
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis rate limit store", zap.String("addr", f.redisConfig.Addr))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for rate limiting but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory rate limit store. "+
		"Limits will not be shared between instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore()
}
