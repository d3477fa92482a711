package analyzer

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type classification struct {
	crawler Crawler
	ok      bool
}

// CachedClassifier memoizes another Classifier by user-agent.
// Access logs repeat a small set of agents, so most lookups are hits.
type CachedClassifier struct {
	inner  Classifier
	cache  *lru.Cache[string, classification]
	hits   int64
	misses int64
}

// NewCachedClassifier wraps inner with an LRU cache holding up to size agents.
func NewCachedClassifier(inner Classifier, size int) (*CachedClassifier, error) {
	cache, err := lru.New[string, classification](size)
	if err != nil {
		return nil, fmt.Errorf("creating classifier cache: %w", err)
	}
	return &CachedClassifier{inner: inner, cache: cache}, nil
}

func (c *CachedClassifier) Classify(userAgent string) (Crawler, bool) {
	if res, ok := c.cache.Get(userAgent); ok {
		c.hits++
		return res.crawler, res.ok
	}
	c.misses++
	crawler, ok := c.inner.Classify(userAgent)
	c.cache.Add(userAgent, classification{crawler: crawler, ok: ok})
	return crawler, ok
}

// Stats returns cache hit and miss counts.
func (c *CachedClassifier) Stats() (hits, misses int64) {
	return c.hits, c.misses
}
