package dal

import (
	"context"
	"fmt"
	"log"
	"time"

	"bloomfundr-settlement/internal/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient is nil when Redis is not configured or unreachable at boot;
// callers then run uncached.
var RedisClient *redis.Client

// NewRedisClient connects and pings once.
func NewRedisClient(ctx context.Context, c config.RedisCfg) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", c.Addr, err)
	}
	return rdb, nil
}

func InitRedis() {
	c := config.C.Redis
	if c.Addr == "" {
		log.Println("[Redis] no address configured, cache disabled")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rdb, err := NewRedisClient(ctx, c)
	if err != nil {
		log.Printf("[Redis] %v, cache disabled", err)
		return
	}
	RedisClient = rdb
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
