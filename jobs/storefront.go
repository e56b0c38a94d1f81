package jobs

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	store_category "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/category_controller"
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

const (
	ExpireOrdersJob = "expire-pending-orders"
	WarmCachesJob   = "warm-caches"
)

// ExpirePendingOrders cancels orders left pending for longer than maxAge,
// returning their stock.
func ExpirePendingOrders(db *gorm.DB, spec string, maxAge time.Duration) Job {
	return Job{
		Name:    ExpireOrdersJob,
		Spec:    spec,
		Timeout: time.Minute,
		Run: func(ctx context.Context) error {
			n, err := services.ExpirePendingOrders(ctx, db, time.Now().Add(-maxAge))
			if n > 0 {
				cache.Products.Purge()
				zap.L().Info("[jobs.expire-orders] cancelled stale orders", zap.Int("count", n))
			}
			return err
		},
	}
}

// WarmCaches reloads the category tree, brand list and filter metadata so
// storefront reads rarely hit the database.
func WarmCaches(db *gorm.DB, spec string) Job {
	return Job{
		Name:    WarmCachesJob,
		Spec:    spec,
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			tree, err := store_category.LoadCategoryTree(ctx, db)
			if err != nil {
				return errors.Wrap(err, "categories")
			}
			brands, err := store_category.LoadBrands(ctx, db)
			if err != nil {
				return errors.Wrap(err, "brands")
			}
			filters, err := store_filter.LoadFilterMetadata(ctx, db)
			if err != nil {
				return errors.Wrap(err, "filter metadata")
			}

			cache.SetTree(tree)
			cache.SetBrands(brands)
			cache.SetFilterMetadata(filters)
			return nil
		},
	}
}
