package history

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// ProductReader resolves a ReadQuery into product records.
type ProductReader interface {
	ReadProducts(ctx context.Context, q ReadQuery) ([]models.ProductCard, error)
}

// RailSet is the pair of product rails shown next to a product page.
type RailSet struct {
	History []models.ProductCard
	Related []models.ProductCard
}

// Rails keeps the "recently viewed" and "related" rails in step with a Store.
// Every store change triggers a background refresh; only the newest refresh
// reports.
type Rails struct {
	reader   ProductReader
	log      *zap.Logger
	onChange func(RailSet)
	timeout  time.Duration

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	unsub  func()
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	last   RailSet
}

// NewRails subscribes to store and performs an initial refresh.
func NewRails(store *Store, reader ProductReader, onChange func(RailSet), log *zap.Logger) *Rails {
	if log == nil {
		log = zap.NewNop()
	}
	if onChange == nil {
		onChange = func(RailSet) {}
	}
	ctx, stop := context.WithCancel(context.Background())
	r := &Rails{
		reader:   reader,
		log:      log,
		onChange: onChange,
		timeout:  10 * time.Second,
		ctx:      ctx,
		stop:     stop,
		last:     RailSet{History: []models.ProductCard{}, Related: []models.ProductCard{}},
	}
	r.unsub = store.Subscribe(r.refresh)
	r.refresh(store.Entries())
	return r
}

// Current returns the last reported rails.
func (r *Rails) Current() RailSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Wait blocks until pending refreshes finish.
func (r *Rails) Wait() {
	r.wg.Wait()
}

// Close unsubscribes from the store and cancels any refresh in flight.
func (r *Rails) Close() {
	r.unsub()
	r.stop()
	r.wg.Wait()
}

func (r *Rails) refresh(entries []Entry) {
	r.mu.Lock()
	if r.ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer cancel()

		set := RailSet{
			History: r.read(ctx, Derive(entries, ModeHistory)),
			Related: r.read(ctx, Derive(entries, ModeRelated)),
		}

		r.mu.Lock()
		if gen != r.gen {
			r.mu.Unlock()
			return
		}
		r.last = set
		r.mu.Unlock()
		r.onChange(set)
	}()
}

func (r *Rails) read(ctx context.Context, q ReadQuery) []models.ProductCard {
	if q.Empty() {
		return []models.ProductCard{}
	}
	products, err := r.reader.ReadProducts(ctx, q)
	if err != nil {
		r.log.Warn("[history.rails] fetch failed",
			zap.String("type", string(q.Mode)),
			zap.Error(err),
		)
		return []models.ProductCard{}
	}
	if q.Mode == ModeHistory {
		return OrderByIDs(products, q.IDs)
	}
	if products == nil {
		products = []models.ProductCard{}
	}
	return products
}
