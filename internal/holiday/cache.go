package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Cache stores computed holiday lists per (country, year).
type Cache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, code string, year int) (entries []domain.HolidayEntry, ok bool, err error)
	Set(ctx context.Context, code string, year int, entries []domain.HolidayEntry) error
}

// RedisCache is a Cache backed by Redis string keys holding JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a RedisCache writing keys with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisClient parses url, connects and pings before returning.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("holiday.NewRedisClient: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("holiday.NewRedisClient: ping: %w", err)
	}
	return client, nil
}

type cachedEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func cacheKey(code string, year int) string {
	return fmt.Sprintf("holidays:%s:%d", code, year)
}

func (c *RedisCache) Get(ctx context.Context, code string, year int) ([]domain.HolidayEntry, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(code, year)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("holiday.RedisCache.Get: %w", err)
	}

	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("holiday.RedisCache.Get: decode: %w", err)
	}
	entries := make([]domain.HolidayEntry, 0, len(cached))
	for _, e := range cached {
		d, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			return nil, false, fmt.Errorf("holiday.RedisCache.Get: decode date: %w", err)
		}
		entries = append(entries, domain.HolidayEntry{Date: d, Name: e.Name, CountryCode: code})
	}
	return entries, true, nil
}

func (c *RedisCache) Set(ctx context.Context, code string, year int, entries []domain.HolidayEntry) error {
	cached := make([]cachedEntry, 0, len(entries))
	for _, e := range entries {
		cached = append(cached, cachedEntry{Date: e.Date.Format(time.DateOnly), Name: e.Name})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("holiday.RedisCache.Set: encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(code, year), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("holiday.RedisCache.Set: %w", err)
	}
	return nil
}
