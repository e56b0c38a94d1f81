package services

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
)

// ViewCounter records product detail views.
type ViewCounter interface {
	Increment(ctx context.Context, productID string) error
}

// PgxViewCounter increments products.views through the raw pgx pool.
type PgxViewCounter struct {
	pool *pgxpool.Pool
}

func NewPgxViewCounter(pool *pgxpool.Pool) *PgxViewCounter {
	return &PgxViewCounter{pool: pool}
}

func (v *PgxViewCounter) Increment(ctx context.Context, productID string) error {
	_, err := v.pool.Exec(ctx, `UPDATE products SET views = COALESCE(views, 0) + 1 WHERE id = $1`, productID)
	return err
}

var (
	viewCounter ViewCounter
	viewsWG     sync.WaitGroup
)

// InitViewCounter sets the counter used by RecordView. A nil counter
// disables view tracking.
func InitViewCounter(vc ViewCounter) {
	viewCounter = vc
}

// RecordView increments the view count in the background.
func RecordView(productID string) {
	if viewCounter == nil {
		return
	}
	vc := viewCounter
	viewsWG.Add(1)
	go func() {
		defer viewsWG.Done()
		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := vc.Increment(ctx, productID); err != nil {
			zap.L().Warn("[store.product.view] increment failed",
				zap.String("product_id", productID), zap.Error(err))
		}
	}()
}

// WaitForViews blocks until pending RecordView calls finish.
func WaitForViews() {
	viewsWG.Wait()
}
