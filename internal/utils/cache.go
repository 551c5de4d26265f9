package utils

import (
	"context" // Context for Redis operations
	"fmt"     // Error wrapping
	"strconv" // User ids are cached as decimal strings
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// APIKeyCacheKey is the Redis key holding the user id for an API key
func APIKeyCacheKey(apiKey string) string {
	return "apikey:" + apiKey
}

// CachedUserID returns the user id cached for apiKey. found is false on a miss.
func CachedUserID(ctx context.Context, rdb *redis.Client, apiKey string) (userID uint, found bool, err error) {
	val, err := rdb.Get(ctx, APIKeyCacheKey(apiKey)).Result() // Get value from Redis
	if err == redis.Nil {
		return 0, false, nil // Key does not exist
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	userID, err = parseUserID(val)
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// CacheUserID stores the owner of apiKey for ttl
func CacheUserID(ctx context.Context, rdb *redis.Client, apiKey string, userID uint, ttl time.Duration) error {
	return rdb.Set(ctx, APIKeyCacheKey(apiKey), strconv.FormatUint(uint64(userID), 10), ttl).Err() // Set value in Redis with TTL
}

func parseUserID(val string) (uint, error) {
	id, err := strconv.ParseUint(val, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("cached user id %q is invalid", val)
	}
	return uint(id), nil
}
