package ratelimit

import (
	"context"
	"fmt"
	"log"
	"triviaquiz/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// Allow counts one request for the given client key in a fixed window and
// reports whether the request is still within the limit. The window TTL is
// set when the first request of a window arrives.
func Allow(ctx context.Context, client *redis.Client, key string) (bool, error) {
	count, err := client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit.Allow: %w", err)
	}
	if count == 1 {
		if err := client.Expire(ctx, "ratelimit:"+key, config.AppConfig.RateLimitWindow).Err(); err != nil {
			return false, fmt.Errorf("ratelimit.Allow: %w", err)
		}
	}
	return count <= int64(config.AppConfig.RateLimitMax), nil
}
