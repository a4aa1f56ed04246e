package cache

import (
	"github.com/coocood/freecache"
	"github.com/rs/zerolog"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/metrics"
)

// Cache holds pre-encoded API responses for the read-mostly hero endpoints.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

type FreeCache struct {
	cache *freecache.Cache
	ttl   int
}

func New(cfg *config.Config, logger zerolog.Logger) Cache {
	if cfg.CacheSizeMB <= 0 {
		logger.Info().Msg("response cache disabled")
		return &noopCache{}
	}

	ttl := int(constants.HeroCacheTTL.Seconds())
	logger.Info().Int("size_mb", cfg.CacheSizeMB).Int("ttl_s", ttl).Msg("response cache initialized")

	return &FreeCache{
		cache: freecache.NewCache(cfg.CacheSizeMB * 1024 * 1024),
		ttl:   ttl,
	}
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *FreeCache) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

func (c *FreeCache) Clear() {
	c.cache.Clear()
}

type noopCache struct{}

func (n *noopCache) Get(string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(string, []byte)        {}
func (n *noopCache) Clear()                    {}

// Instrumented counts hits and misses on every Get.
type Instrumented struct {
	inner   Cache
	metrics metrics.Recorder
}

func (c *Instrumented) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *Instrumented) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *Instrumented) Clear() {
	c.inner.Clear()
}

// NewInstrumented wraps the configured cache with hit/miss counters. A
// disabled cache is returned bare so it does not report phantom misses.
func NewInstrumented(cfg *config.Config, logger zerolog.Logger, m metrics.Recorder) Cache {
	inner := New(cfg, logger)
	if _, ok := inner.(*noopCache); ok {
		return inner
	}
	return &Instrumented{inner: inner, metrics: m}
}
