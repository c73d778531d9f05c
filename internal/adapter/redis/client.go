// Package redis opens the Redis connection used for distributed locking.
package redis

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/skillhub-backend/internal/config"
)

// Open parses the configured URL and returns a client without dialing.
// Connections are made on first use.
func Open(cfg config.RedisConfig) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return goredis.NewClient(opts), nil
}
