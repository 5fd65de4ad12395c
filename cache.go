package fleetdispatch

import (
	"bytes"
	"strconv"
	"sync"
	"time"
)

// LayerCache memoizes rendered marker payloads for the current snapshot.
// Entries are keyed by the query parameters and time bucket that shaped
// them; the whole cache is dropped as soon as a newer snapshot epoch is
// seen.
type LayerCache struct {
	mu       sync.Mutex
	epoch    int64
	payloads map[string][]byte
}

// NewLayerCache creates an empty cache.
func NewLayerCache() *LayerCache {
	return &LayerCache{payloads: map[string][]byte{}}
}

func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// staleBucket quantizes now to half the staleness threshold, so a payload
// whose stale flags have aged out of date is never served past half a
// threshold after it was rendered.
func staleBucket(now time.Time, threshold time.Duration) string {
	return strconv.FormatInt(now.Truncate(threshold/2).Unix(), 10)
}

// Get returns the cached payload for key, valid only for the given epoch.
func (c *LayerCache) Get(epoch int64, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil, false
	}
	b, ok := c.payloads[key]
	return b, ok
}

// Put stores a payload for key under the given epoch, resetting the cache
// when the epoch moved forward.
func (c *LayerCache) Put(epoch int64, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.epoch = epoch
		c.payloads = map[string][]byte{}
	}
	c.payloads[key] = payload
}
