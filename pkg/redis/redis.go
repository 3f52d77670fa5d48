package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis backs the shared request counters used for rate limiting.
type IRedis interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Close() error
}

type Config struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
	now    func() time.Time
}

func New(config Config) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", config.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, now: time.Now}
}

// windowKey buckets key into fixed windows so every replica counts into
// the same slot.
func windowKey(key string, now time.Time, window time.Duration) string {
	return fmt.Sprintf("%s:%d", key, now.UnixNano()/int64(window))
}

// Allow counts one hit for key in the current window and reports whether
// the count is still within limit.
func (r *redisClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	slot := windowKey(key, r.now(), window)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, slot)
	pipe.Expire(ctx, slot, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Error(fmt.Sprintf("Error counting hit for key %s: %v", slot, err))
		return false, err
	}

	count := incr.Val()
	if count > int64(limit) {
		logrus.Debug(fmt.Sprintf("Key %s over limit: %d > %d", slot, count, limit))
		return false, nil
	}

	return true, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
