package product_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// GetStorefrontProductBySlug godoc
// @Summary Get storefront product by slug
// @Description Product detail page payload. Records a view and adds the product to the visitor's browsing history.
// @Tags store
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.ApiResponse{data=models.StorefrontProduct}
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/{slug} [get]
func GetStorefrontProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if !history.IsSlug(slug) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, ok := cache.Products.Get(slug)
	if !ok {
		p, err := services.Catalog().BySlug(ctx, slug)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		if err != nil {
			zap.L().Error("[store.product.get] lookup failed", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
			return
		}
		product = models.StorefrontProduct{
			ProductCard: p.Card(),
			Description: p.Description,
			Tags:        append([]string{}, p.Tags...),
		}
		cache.Products.Add(slug, product)
	}

	metrics.ProductViewsTotal.Inc()
	services.RecordView(product.ID)
	recordVisit(ctx, middleware.VisitorID(c), history.Entry{ID: product.ID, Category: product.Category})

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched", product))
}

// recordVisit pushes a product onto the visitor's history. Failures only
// cost the visitor a rail entry, so they are logged and dropped.
func recordVisit(ctx context.Context, visitorID string, entry history.Entry) {
	if visitorID == "" {
		return
	}
	store, err := services.VisitorHistory(ctx, visitorID)
	if err == nil {
		err = store.Add(ctx, entry)
	}
	if err != nil {
		zap.L().Warn("[store.history.add] failed",
			zap.String("visitor_id", visitorID), zap.String("product_id", entry.ID), zap.Error(err))
		return
	}
	metrics.HistoryEventsTotal.WithLabelValues("add").Inc()
}
