// Package redisstore implements the store contracts on Redis. Entities
// are stored as JSON blobs keyed by ID, with per-collection ID sets for
// enumeration. Collection ordering is applied in memory after fetch,
// since Redis has no secondary ordering of its own.
package redisstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewClient connects to Redis at the given address and verifies the
// connection.
func NewClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
