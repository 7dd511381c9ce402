package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// NewClient builds a client for addr without touching the network.
func NewClient(addr string) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// Connect builds a client and verifies the server answers PING.
// The caller owns the returned client and must Close it on shutdown.
func Connect(ctx context.Context, addr string) (*redisv9.Client, error) {
	client := NewClient(addr)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: failed to connect to %s: %w", addr, err)
	}

	config.GetLogger().Infow("Redis connected", "addr", addr)
	return client, nil
}
