package application

import (
	"time"

	"github.com/example/teetime-engine/internal/teetime"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultPreviewCacheSize = 16
	defaultPreviewCacheTTL  = 5 * time.Minute
)

// previewCache memoizes spacing previews per preset.
type previewCache struct {
	lru *expirable.LRU[teetime.SpacingPreset, teetime.SpacingImpactPreview]
}

func newPreviewCache(size int, ttl time.Duration) *previewCache {
	if size <= 0 {
		size = defaultPreviewCacheSize
	}
	if ttl <= 0 {
		ttl = defaultPreviewCacheTTL
	}
	return &previewCache{lru: expirable.NewLRU[teetime.SpacingPreset, teetime.SpacingImpactPreview](size, nil, ttl)}
}

func (c *previewCache) Get(preset teetime.SpacingPreset) (teetime.SpacingImpactPreview, bool) {
	if c == nil {
		return teetime.SpacingImpactPreview{}, false
	}
	return c.lru.Get(preset)
}

func (c *previewCache) Store(preset teetime.SpacingPreset, preview teetime.SpacingImpactPreview) {
	if c == nil {
		return
	}
	c.lru.Add(preset, preview)
}

func (c *previewCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
