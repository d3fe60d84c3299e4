package scraper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamourhall/glamourhall/internal/cache"
	"github.com/glamourhall/glamourhall/internal/limiter"
)

type stubFetcher struct {
	calls atomic.Int32
	html  string
	err   error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls.Add(1)
	return f.html, f.err
}

func newTestService(f Fetcher) *Service {
	return NewService(DefaultSite(), f, cache.NewMemory(), limiter.New(2), nil)
}

func TestScrapeProductsCacheIdempotence(t *testing.T) {
	fetcher := &stubFetcher{html: fixtureHTML}
	svc := newTestService(fetcher)

	first := svc.ScrapeProducts(context.Background(), "denim jacket")
	second := svc.ScrapeProducts(context.Background(), "denim jacket")

	assert.Equal(t, int32(1), fetcher.calls.Load(), "second call must be a cache hit")
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestScrapeProductsNormalizesKeyword(t *testing.T) {
	fetcher := &stubFetcher{html: fixtureHTML}
	svc := newTestService(fetcher)

	svc.ScrapeProducts(context.Background(), "  Denim Jacket  ")
	svc.ScrapeProducts(context.Background(), "denim jacket")

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestScrapeProductsNeverErrors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
	}{
		{
			name:    "fetch failure",
			fetcher: &stubFetcher{err: errors.New("navigation timed out")},
		},
		{
			name:    "storefront empty state",
			fetcher: &stubFetcher{err: ErrNoResults},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.fetcher)

			products := svc.ScrapeProducts(context.Background(), "anything")

			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func TestScrapeProductsCachesEmptyResults(t *testing.T) {
	fetcher := &stubFetcher{err: ErrNoResults}
	svc := newTestService(fetcher)

	svc.ScrapeProducts(context.Background(), "nonexistent thing")
	svc.ScrapeProducts(context.Background(), "nonexistent thing")

	assert.Equal(t, int32(1), fetcher.calls.Load(), "empty results are cached too")
}

func TestScrapeProductsEmptyKeyword(t *testing.T) {
	fetcher := &stubFetcher{html: fixtureHTML}
	svc := newTestService(fetcher)

	products := svc.ScrapeProducts(context.Background(), "   ")

	assert.Empty(t, products)
	assert.Equal(t, int32(0), fetcher.calls.Load())
}
