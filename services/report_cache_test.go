package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/shop-dataset/validator"
)

func sampleReport() *validator.Report {
	return &validator.Report{Results: []validator.CheckResult{
		{Name: "schema/customers", Category: validator.CategorySchema, Status: validator.StatusPass},
		{Name: "business/price_gte_cost", Category: validator.CategoryBusiness, Status: validator.StatusFail, Violations: 2},
	}}
}

func exerciseCache(t *testing.T, cache ReportCache) {
	ctx := context.Background()
	key := ReportKey("demo", "run-1")
	other := ReportKey("other", "run-1")

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, sampleReport()))
	require.NoError(t, cache.Set(ctx, other, sampleReport()))
	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleReport().Results, got.Results)
	assert.False(t, got.Passed())

	require.NoError(t, cache.Delete(ctx, DatasetPrefix("demo")))
	_, ok, _ = cache.Get(ctx, key)
	assert.False(t, ok)
	_, ok, _ = cache.Get(ctx, other)
	assert.True(t, ok, "other datasets are untouched")
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache(time.Minute))
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", sampleReport()))
	time.Sleep(5 * time.Millisecond)
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	cache, err := NewRedisCache(context.Background(), addr, time.Minute)
	require.NoError(t, err)
	defer cache.Close()
	exerciseCache(t, cache)
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, "127.0.0.1:1", time.Minute)
	assert.Error(t, err)
}
