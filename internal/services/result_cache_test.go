package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey_ScopedBySectionAndWindow(t *testing.T) {
	w := mustWindow(t, "2025-10-01", "2025-10-07")

	assert.Equal(t, "kpi:production:2025-10-01:2025-10-07", cacheKey(SectionProduction, w))

	other := mustWindow(t, "2025-10-02", "2025-10-07")
	assert.NotEqual(t, cacheKey(SectionProduction, w), cacheKey(SectionProduction, other))
	assert.NotEqual(t, cacheKey(SectionProduction, w), cacheKey(SectionEnergy, w))
}

func TestResultCache_NilClientDegrades(t *testing.T) {
	w := mustWindow(t, "", "")

	var nilCache *ResultCache
	var dest any
	assert.False(t, nilCache.Get(context.Background(), SectionQuality, w, &dest))
	nilCache.Set(context.Background(), SectionQuality, w, "value")

	cache := NewResultCache(nil, 0)
	assert.False(t, cache.Get(context.Background(), SectionQuality, w, &dest))
	cache.Set(context.Background(), SectionQuality, w, "value")
	assert.False(t, cache.Get(context.Background(), SectionQuality, w, &dest), "no client means nothing is stored")
}
