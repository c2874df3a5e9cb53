// Package rediscache is CacheClient: a typed wrapper over the external
// Redis-compatible KV store holding fully-rendered variant bytes.
package rediscache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL is how long a variant lives in the cache after Put, per spec.md §3.
const TTL = 300 * time.Second

// Client wraps a *redis.Client with the three operations the CDN needs.
type Client struct {
	rdb *redis.Client
}

// New wraps an already-dialed redis client.
func New(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Get returns the blob stored at key. An empty blob or any protocol error
// is treated as absent, per spec.md §4.2.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put stores value at key, then sets its TTL with a follow-up EXPIRE. The
// two commands are not pipelined atomically: a process death between them
// leaves an entry with no TTL, which is acceptable for a bounded-size
// cache.
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, key, TTL).Err()
}

// Health is the introspection payload served by GET /health.
type Health struct {
	MemoryUsage    string   `json:"memory_usage"`
	NumKeys        int64    `json:"num_keys"`
	Keys           []string `json:"keys"`
	UptimeSeconds  int64    `json:"uptime_seconds"`
}

// Health pipelines INFO + DBSIZE, then issues KEYS *. KEYS is O(N) and must
// only be called from this path, never on a hot request path.
func (c *Client) Health(ctx context.Context) (Health, error) {
	pipe := c.rdb.Pipeline()
	infoCmd := pipe.Info(ctx)
	sizeCmd := pipe.DBSize(ctx)
	if _, err := pipe.Exec(ctx); err != nil {
		return Health{}, err
	}

	info := infoCmd.Val()

	keys, err := c.rdb.Keys(ctx, "*").Result()
	if err != nil {
		return Health{}, err
	}

	return Health{
		MemoryUsage:   parseInfoField(info, "used_memory_human:", "(error)"),
		NumKeys:       sizeCmd.Val(),
		Keys:          keys,
		UptimeSeconds: parseInfoInt(info, "uptime_in_seconds:", 0),
	}, nil
}

func parseInfoField(info, prefix, fallback string) string {
	for _, line := range strings.Split(info, "\r\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	return fallback
}

func parseInfoInt(info, prefix string, fallback int64) int64 {
	raw := parseInfoField(info, prefix, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
