package utils

import (
	"context"
	"log"
	"time"

	"grandstay/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (availability snapshots, report caches).
	CacheClient *redis.Client
	// VerifyCacheClient holds short-lived verification and reset codes.
	VerifyCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitVerifyCache initializes the Redis client holding expiring verification codes.
func InitVerifyCache() {
	VerifyCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisVerifyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := VerifyCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Verify Cache): %v", err)
	}
}

// GetVerifyCacheClient returns the Redis client for verification codes.
func GetVerifyCacheClient() *redis.Client {
	if VerifyCacheClient == nil {
		InitVerifyCache()
	}
	return VerifyCacheClient
}

// InitRedis initializes all Redis clients at startup.
func InitRedis() {
	InitCache()
	InitVerifyCache()
}
