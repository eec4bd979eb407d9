package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeremiapane/shop-dataset/validator"
)

// ReportCache stores validation reports by key. A miss is (nil, false, nil).
type ReportCache interface {
	Get(ctx context.Context, key string) (*validator.Report, bool, error)
	Set(ctx context.Context, key string, report *validator.Report) error
	Delete(ctx context.Context, prefix string) error
}

// ReportKey identifies the report of one generation run of a dataset.
func ReportKey(dataset, runID string) string {
	return "validation:" + dataset + ":" + runID
}

// DatasetPrefix matches every report key of dataset.
func DatasetPrefix(dataset string) string {
	return "validation:" + dataset + ":"
}

type memoryEntry struct {
	report  *validator.Report
	expires time.Time
}

type MemoryCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*validator.Report, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || (m.ttl > 0 && time.Now().After(e.expires)) {
		return nil, false, nil
	}
	return e.report, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, report *validator.Report) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{report: report, expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and pings it once.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (*validator.Report, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var report validator.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return &report, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, report *validator.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, r.ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
