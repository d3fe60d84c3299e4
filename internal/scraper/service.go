package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/glamourhall/glamourhall/internal/cache"
	"github.com/glamourhall/glamourhall/internal/limiter"
	"github.com/glamourhall/glamourhall/internal/models"
	"github.com/glamourhall/glamourhall/internal/ratelimit"
)

// Service is the product-discovery entry point. ScrapeProducts never returns
// an error: every failure inside the pipeline degrades to an empty list so
// advice can still be served without product suggestions.
type Service struct {
	site    Site
	fetcher Fetcher
	cache   cache.Cache
	limiter *limiter.Limiter
	delay   *ratelimit.Limiter
	logger  *slog.Logger
}

func NewService(site Site, fetcher Fetcher, c cache.Cache, l *limiter.Limiter, delay *ratelimit.Limiter) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	if l == nil {
		l = limiter.New(2)
	}
	if delay == nil {
		delay = ratelimit.New(0, 0)
	}
	return &Service{
		site:    site,
		fetcher: fetcher,
		cache:   c,
		limiter: l,
		delay:   delay,
		logger:  slog.Default().With("component", "scraper"),
	}
}

// ScrapeProducts returns products for a search keyword, serving from cache
// when the keyword has been scraped before in this process.
func (s *Service) ScrapeProducts(ctx context.Context, keyword string) []models.Product {
	key := normalizeKeyword(keyword)
	if key == "" {
		return []models.Product{}
	}

	if products, ok := s.cache.Get(ctx, key); ok {
		s.logger.Debug("cache hit", "keyword", key, "count", len(products))
		return products
	}

	var products []models.Product
	s.limiter.Do(func() {
		products = s.scrape(ctx, key)
	})

	// Empty results are cached too: a keyword the storefront has nothing
	// for stays expensive to re-check otherwise.
	s.cache.Set(ctx, key, products)

	return products
}

func (s *Service) scrape(ctx context.Context, keyword string) []models.Product {
	if err := s.delay.Wait(ctx); err != nil {
		s.logger.Warn("scrape abandoned before launch", "keyword", keyword, "error", err)
		return []models.Product{}
	}

	searchURL := s.site.SearchURL(keyword)
	s.logger.Info("scraping keyword", "keyword", keyword, "url", searchURL)

	html, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			s.logger.Info("storefront has no results", "keyword", keyword)
		} else {
			s.logger.Error("scrape failed", "keyword", keyword, "error", err)
		}
		return []models.Product{}
	}

	products, err := Extract(html, s.site)
	if err != nil {
		s.logger.Error("extraction failed", "keyword", keyword, "error", err)
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}

	s.logger.Info("scrape completed", "keyword", keyword, "count", len(products))
	return products
}

func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
