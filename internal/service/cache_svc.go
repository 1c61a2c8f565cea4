package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Grade trees change only on seed runs and moderation actions, so they can
// sit in cache for a while; moderation invalidates explicitly.
const (
	GradeTreeCacheTTL = 15 * time.Minute
	GradeListCacheTTL = 15 * time.Minute
)

// CacheService provides a Redis cache-aside layer for grade tree lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetGradeTree retrieves a cached grade tree payload. Returns nil if not
// cached or cache is disabled.
func (c *CacheService) GetGradeTree(ctx context.Context, gradeNum string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, gradeTreeKey(gradeNum)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetGradeTree stores a grade tree in cache.
func (c *CacheService) SetGradeTree(ctx context.Context, gradeNum string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, gradeTreeKey(gradeNum), b, GradeTreeCacheTTL).Err()
}

// InvalidateGradeTree removes a grade tree from cache (called after a
// moderation action flips a media item's disabled flag).
func (c *CacheService) InvalidateGradeTree(ctx context.Context, gradeNum string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, gradeTreeKey(gradeNum)).Err()
}

// GetGradeList retrieves the cached grade listing.
func (c *CacheService) GetGradeList(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, gradeListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetGradeList stores the grade listing in cache.
func (c *CacheService) SetGradeList(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, gradeListKey, b, GradeListCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

const gradeListKey = "grades:list"

func gradeTreeKey(gradeNum string) string {
	return fmt.Sprintf("grade:%s", gradeNum)
}
