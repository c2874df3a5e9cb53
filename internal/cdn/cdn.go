// Package cdn holds the typestate-guarded cache connection: Disconnected
// admits no cache calls, Connected guarantees a reachable connection behind
// the returned handle. No Connected -> Disconnected transition exists;
// transient failures are not retried, an operational restart is expected.
package cdn

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"imagecdn/internal/applog"
	"imagecdn/internal/localcache"
	"imagecdn/internal/rediscache"
	"imagecdn/internal/storage"
)

const dialTimeout = 10 * time.Second

// DefaultRedisHost is used when REDIS_HOST is unset.
const DefaultRedisHost = "redis://127.0.0.1"

// Disconnected carries storage and the local fingerprint cache, but has no
// method that can reach the external cache. Only Connect can produce a
// handle with cache-using methods.
type Disconnected struct {
	Storage    *storage.Store
	LocalCache *localcache.Cache
}

// New constructs a Disconnected handle around an already-built Storage.
func New(store *storage.Store) *Disconnected {
	return &Disconnected{
		Storage:    store,
		LocalCache: localcache.New(),
	}
}

// Connected is the only handle with access to the external cache. It is
// produced exclusively by Connect, so no request path can be wired to
// issue a cache call before startup completes.
type Connected struct {
	Storage    *storage.Store
	LocalCache *localcache.Cache

	mu    sync.Mutex
	cache *rediscache.Client
}

// Connect resolves REDIS_HOST (default DefaultRedisHost), dials with a
// 10-second timeout, and returns a Connected handle. On any failure the
// process exits non-zero: this is a FatalStartup condition, not a
// recoverable one.
func (d *Disconnected) Connect() *Connected {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = DefaultRedisHost
	}

	opts, err := redis.ParseURL(host)
	if err != nil {
		applog.Fatal("could not parse REDIS_HOST %q: %v", host, err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		applog.Fatal("could not connect to redis: %v", err)
	}

	applog.Info("established connection to redis")

	return &Connected{
		Storage:    d.Storage,
		LocalCache: d.LocalCache,
		cache:      rediscache.New(rdb),
	}
}

// CacheGet acquires the connection mutex for the duration of a single GET,
// then releases it. Callers must not hold CPU work (decode/resize/encode)
// across this call.
func (c *Connected) CacheGet(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(ctx, key)
}

// CachePut acquires the connection mutex for the duration of a SET+EXPIRE
// pair, then releases it.
func (c *Connected) CachePut(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Put(ctx, key, value)
}

// CacheHealth reports cache introspection data. Callers must not call this
// from a hot request path: it issues KEYS *, which is O(N).
func (c *Connected) CacheHealth(ctx context.Context) (rediscache.Health, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Health(ctx)
}
