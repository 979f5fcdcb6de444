package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"habitflow/internal/config"
	"habitflow/pkg/logger"
)

const (
	habitsKeyPrefix = "habits:user:"
	todosKeyPrefix  = "todos:user:"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		client = redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			return
		}
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

func ttl() time.Duration {
	return time.Duration(config.Get().CacheTTL) * time.Second
}

// GetRawHabits reads a user's habit list as pre-marshaled JSON. (nil, false) on miss.
func GetRawHabits(ctx context.Context, userID string) ([]byte, bool) {
	return getRaw(ctx, habitsKeyPrefix+userID)
}

// SetRawHabitsAsync caches a user's habit list off the request path.
func SetRawHabitsAsync(userID string, b []byte) {
	go setRaw(context.Background(), habitsKeyPrefix+userID, b)
}

// GetRawTodos reads a user's todo list as pre-marshaled JSON. (nil, false) on miss.
func GetRawTodos(ctx context.Context, userID string) ([]byte, bool) {
	return getRaw(ctx, todosKeyPrefix+userID)
}

// SetRawTodosAsync caches a user's todo list off the request path.
func SetRawTodosAsync(userID string, b []byte) {
	go setRaw(context.Background(), todosKeyPrefix+userID, b)
}

// InvalidateHabits deletes a user's habit list so the next read goes to the DB.
func InvalidateHabits(ctx context.Context, userID string) {
	del(ctx, habitsKeyPrefix+userID)
}

// InvalidateTodos deletes a user's todo list.
func InvalidateTodos(ctx context.Context, userID string) {
	del(ctx, todosKeyPrefix+userID)
}

// InvalidateAllHabits removes every cached habit list. Used by the daily
// rollover, which touches all users at once.
func InvalidateAllHabits(ctx context.Context) {
	c := Client(ctx)
	if c == nil {
		return
	}
	iter := c.Scan(ctx, 0, habitsKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Debug(ctx, "Redis delete during rollover invalidation failed", "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.Debug(ctx, "Redis scan during rollover invalidation failed", "error", err)
	}
}

func getRaw(ctx context.Context, key string) ([]byte, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get failed", "error", err, "key", key)
		return nil, false
	}
	return b, true
}

func setRaw(ctx context.Context, key string, b []byte) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Set(ctx, key, b, ttl()).Err(); err != nil {
		logger.Debug(ctx, "Redis set failed", "error", err, "key", key)
	}
}

func del(ctx context.Context, key string) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, key).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate failed", "error", err, "key", key)
	}
}
