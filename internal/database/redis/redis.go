package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config for redis
type Config struct {
	Host     string
	Port     uint
	Password string
	DB       uint
}

// Enabled reports whether a redis host was configured
func (c Config) Enabled() bool {
	return c.Host != ""
}

// NewClient creates a redis client and verifies the connection.
//
// The client backs the shared rate limit store of the API.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("redis: host is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       int(cfg.DB),
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: error connecting to redis: %w", err)
	}

	return client, nil
}
