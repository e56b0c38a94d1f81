package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// ProductCache keeps recently served product detail payloads keyed by slug.
// The underlying LRU is built once, on Configure or first use, because each
// expirable LRU runs its own expiry goroutine.
type ProductCache struct {
	once sync.Once
	size int
	ttl  time.Duration
	lru  *expirable.LRU[string, models.StorefrontProduct]
}

// Products is the process-wide product detail cache.
var Products = &ProductCache{size: 512, ttl: time.Minute}

func NewProductCache(size int, ttl time.Duration) *ProductCache {
	p := &ProductCache{}
	p.Configure(size, ttl)
	return p
}

// Configure sets the cache shape. It reports false, changing nothing, when
// the cache was already built.
func (p *ProductCache) Configure(size int, ttl time.Duration) bool {
	configured := false
	p.once.Do(func() {
		p.size, p.ttl = size, ttl
		p.lru = expirable.NewLRU[string, models.StorefrontProduct](size, nil, ttl)
		configured = true
	})
	return configured
}

func (p *ProductCache) cache() *expirable.LRU[string, models.StorefrontProduct] {
	p.once.Do(func() {
		p.lru = expirable.NewLRU[string, models.StorefrontProduct](p.size, nil, p.ttl)
	})
	return p.lru
}

func (p *ProductCache) Get(slug string) (models.StorefrontProduct, bool) {
	v, ok := p.cache().Get(slug)
	if ok {
		metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
	}
	return v, ok
}

func (p *ProductCache) Add(slug string, product models.StorefrontProduct) {
	p.cache().Add(slug, product)
}

func (p *ProductCache) Remove(slug string) {
	p.cache().Remove(slug)
}

func (p *ProductCache) Purge() {
	p.cache().Purge()
}

func (p *ProductCache) Len() int {
	return p.cache().Len()
}
