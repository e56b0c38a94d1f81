// Package cache holds the storefront's read caches: short TTL snapshots of
// the category tree, brand list and filter metadata, and an LRU of product
// detail payloads.
package cache

import (
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	ttlMu sync.RWMutex
	ttl   = 5 * time.Minute
)

// SetTTL changes the lifetime of the snapshot caches.
func SetTTL(d time.Duration) {
	ttlMu.Lock()
	ttl = d
	ttlMu.Unlock()
}

func currentTTL() time.Duration {
	ttlMu.RLock()
	defer ttlMu.RUnlock()
	return ttl
}

type snapshot[T any] struct {
	mu        sync.RWMutex
	data      T
	fetchedAt time.Time
	set       bool
}

func (s *snapshot[T]) get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set && time.Since(s.fetchedAt) < currentTTL() {
		return s.data, true
	}
	var zero T
	return zero, false
}

func (s *snapshot[T]) store(data T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.fetchedAt = time.Now()
	s.set = true
}

func (s *snapshot[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.data = zero
	s.set = false
}

// ── Category tree (parents with subcategories + product counts) ─────────────

var tree snapshot[[]models.StorefrontCategory]

func GetTree() ([]models.StorefrontCategory, bool) { return tree.get() }

func SetTree(parents []models.StorefrontCategory) { tree.store(parents) }

// ── Brands ───────────────────────────────────────────────────────────────────

var brands snapshot[[]models.StorefrontBrand]

func GetBrands() ([]models.StorefrontBrand, bool) { return brands.get() }

func SetBrands(data []models.StorefrontBrand) { brands.store(data) }

// ── Filter metadata ──────────────────────────────────────────────────────────

var filters snapshot[*models.FilterMetadata]

func GetFilterMetadata() (*models.FilterMetadata, bool) { return filters.get() }

func SetFilterMetadata(data *models.FilterMetadata) { filters.store(data) }

// ── Invalidate everything (call on any category/brand/product write) ────────

func Invalidate() {
	tree.clear()
	brands.clear()
	filters.clear()
	Products.Purge()
}
