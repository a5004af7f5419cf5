// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient holds browse session state when SESSION_BACKEND=redis.
var SessionCacheClient *redis.Client

// InitSessionCache connects the session Redis client and pings it.
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (Session): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session client, or nil when it was never initialised.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
