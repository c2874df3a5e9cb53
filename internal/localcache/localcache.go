// Package localcache is tier one of the read path's two-tier cache: an
// in-process mapping from a request fingerprint to a resolved filesystem
// path, generalized from the teacher CDN's serveImage/resizeImage handlers
// (which memoized a resolved path behind patrickmn/go-cache before the
// external Redis tier existed). It never holds rendered variant bytes —
// those live exclusively in the Redis-backed tier (internal/rediscache);
// this tier only shortcuts redundant Storage.Get existence probes for a
// burst of requests hitting the same cold fingerprint.
package localcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 10 * time.Second
	cleanupInterval   = 30 * time.Second
)

// resolvedPath is what gets memoized per fingerprint.
type resolvedPath struct {
	path   string
	exists bool
}

// Cache memoizes origin-file existence/path lookups for a short local TTL.
type Cache struct {
	inner *gocache.Cache
}

// New constructs a Cache with the package's default expiration and sweep
// interval.
func New() *Cache {
	return &Cache{inner: gocache.New(defaultExpiration, cleanupInterval)}
}

// Lookup returns the memoized (path, exists) pair for fingerprint, and
// whether an entry was present at all.
func (c *Cache) Lookup(fingerprint string) (path string, exists bool, found bool) {
	v, ok := c.inner.Get(fingerprint)
	if !ok {
		return "", false, false
	}
	rp := v.(resolvedPath)
	return rp.path, rp.exists, true
}

// Remember records the resolution for fingerprint for the default TTL.
func (c *Cache) Remember(fingerprint, path string, exists bool) {
	c.inner.Set(fingerprint, resolvedPath{path: path, exists: exists}, gocache.DefaultExpiration)
}
