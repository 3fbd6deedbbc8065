package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Snapshot-derived payloads never go stale for their fingerprint; the TTL
// only bounds memory once a newer snapshot replaces them.
const SnapshotCacheTTL = 30 * time.Minute

// CacheService is a Redis cache-aside layer for rendered snapshot payloads.
// Keys embed the snapshot fingerprint, so a reload never serves stale data.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	logger := log.With().Str("component", "redis").Logger()

	if redisURL == "" {
		logger.Info().Msg("no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("connection failed, caching disabled")
		rdb.Close()
		return &CacheService{}
	}

	logger.Info().Msg("connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// NewCacheServiceWithClient wraps an existing client. A nil client disables
// caching.
func NewCacheServiceWithClient(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Enabled reports whether a Redis client is configured.
func (c *CacheService) Enabled() bool {
	return c.rdb != nil
}

// Get returns the cached payload for key, or nil when absent or disabled.
func (c *CacheService) Get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// Set stores the JSON encoding of data under key and returns the encoded
// bytes so callers can serve them directly.
func (c *CacheService) Set(ctx context.Context, key string, data any) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if c.rdb == nil {
		return b, nil
	}
	return b, c.rdb.Set(ctx, key, b, SnapshotCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func SummaryKey(fingerprint string) string {
	return fmt.Sprintf("trendx:%s:summary", fingerprint)
}

func RankingsKey(fingerprint, by string, limit int) string {
	return fmt.Sprintf("trendx:%s:rankings:%s:%d", fingerprint, by, limit)
}

func AccountsKey(fingerprint string) string {
	return fmt.Sprintf("trendx:%s:accounts", fingerprint)
}
