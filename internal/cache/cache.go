package cache

import (
	"context"
	"sync"

	"github.com/glamourhall/glamourhall/internal/models"
)

// Cache memoizes scrape results per keyword. Implementations must be safe
// for concurrent use; two concurrent misses for the same keyword may both
// scrape and the last writer wins, which is acceptable because entries for
// the same keyword are interchangeable.
type Cache interface {
	Get(ctx context.Context, keyword string) ([]models.Product, bool)
	Set(ctx context.Context, keyword string, products []models.Product)
}

// Memory is the process-lifetime cache: no TTL, no eviction, no size bound.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]models.Product
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]models.Product)}
}

func (m *Memory) Get(_ context.Context, keyword string) ([]models.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products, ok := m.data[keyword]
	return products, ok
}

func (m *Memory) Set(_ context.Context, keyword string, products []models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[keyword] = products
}

// Size returns the number of cached keywords.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
