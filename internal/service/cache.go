package service

import (
	"strconv"
	"time"

	"github.com/anime-shed/page-inspector-go/pkg/models"
	"github.com/patrickmn/go-cache"
)

// ResultCache holds recent reports keyed by normalized URL and a time
// bucket of length ttl, so a URL is re-analyzed at most once per bucket.
// A cache with ttl <= 0 stores nothing.
type ResultCache struct {
	items *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewResultCache creates a cache whose entries live for ttl
func NewResultCache(ttl time.Duration) *ResultCache {
	rc := &ResultCache{ttl: ttl, now: time.Now}
	if ttl > 0 {
		rc.items = cache.New(ttl, 2*ttl)
	}
	return rc
}

// Enabled reports whether the cache stores anything
func (rc *ResultCache) Enabled() bool {
	return rc != nil && rc.items != nil
}

// key returns the cache key of url for the current time bucket. A disabled
// cache has a single bucket.
func (rc *ResultCache) key(url string) string {
	var bucket int64
	if rc.ttl > 0 {
		bucket = rc.now().UnixNano() / int64(rc.ttl)
	}
	return url + "|" + strconv.FormatInt(bucket, 10)
}

// Get returns the cached report for url in the current bucket
func (rc *ResultCache) Get(url string) (*models.Analysis, bool) {
	if !rc.Enabled() {
		return nil, false
	}
	v, ok := rc.items.Get(rc.key(url))
	if !ok {
		return nil, false
	}
	a, ok := v.(*models.Analysis)
	return a, ok
}

// Set caches a report for url in the current bucket
func (rc *ResultCache) Set(url string, a *models.Analysis) {
	if !rc.Enabled() {
		return
	}
	rc.items.SetDefault(rc.key(url), a)
}

// Invalidate drops every cached entry for the report with the given id
func (rc *ResultCache) Invalidate(id string) {
	if !rc.Enabled() {
		return
	}
	for key, item := range rc.items.Items() {
		if a, ok := item.Object.(*models.Analysis); ok && a.ID == id {
			rc.items.Delete(key)
		}
	}
}

// ItemCount returns the number of cached entries, expired ones included
func (rc *ResultCache) ItemCount() int {
	if !rc.Enabled() {
		return 0
	}
	return rc.items.ItemCount()
}
