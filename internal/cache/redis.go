package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glamourhall/glamourhall/internal/models"
)

const keyPrefix = "glamourhall:scrape:"

// Redis shares scrape results across processes. Unlike Memory it applies a
// TTL, since a shared cache outlives any single deploy. Redis errors degrade
// to cache misses; the scrape pipeline is the source of truth.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "scrape_cache"),
	}
}

func (r *Redis) Get(ctx context.Context, keyword string) ([]models.Product, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+keyword).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("cache read failed", "keyword", keyword, "error", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		r.logger.Warn("cache entry corrupt", "keyword", keyword, "error", err)
		return nil, false
	}

	return products, true
}

func (r *Redis) Set(ctx context.Context, keyword string, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		r.logger.Warn("cache encode failed", "keyword", keyword, "error", err)
		return
	}

	if err := r.client.Set(ctx, keyPrefix+keyword, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", "keyword", keyword, "error", err)
	}
}
