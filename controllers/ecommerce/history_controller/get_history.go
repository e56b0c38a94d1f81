package history_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// VisitorHistory is the browsing history of the current visitor together
// with both product rails.
type VisitorHistory struct {
	Entries []history.Entry      `json:"entries"`
	History []models.ProductCard `json:"history"`
	Related []models.ProductCard `json:"related"`
}

// GetHistory godoc
// @Summary Get the visitor's browsing history
// @Description Recently viewed entries (most recent first) with the "recently viewed" and "related products" rails resolved.
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=VisitorHistory}
// @Failure 500 {object} models.ApiResponse "History could not be loaded"
// @Router /store/history [get]
func GetHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.DefaultTimeout)
	defer cancel()

	visitorID := middleware.VisitorID(c)
	store, err := services.VisitorHistory(ctx, visitorID)
	if err != nil {
		zap.L().Error("[store.history.get] load failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load browsing history"))
		return
	}

	entries := store.Entries()
	out := VisitorHistory{
		Entries: entries,
		History: []models.ProductCard{},
		Related: []models.ProductCard{},
	}

	// A failing rail is logged and left empty; the other rail and the
	// entries are still returned.
	var g errgroup.Group
	g.Go(func() error {
		out.History = readRail(ctx, visitorID, history.Derive(entries, history.ModeHistory))
		return nil
	})
	g.Go(func() error {
		out.Related = readRail(ctx, visitorID, history.Derive(entries, history.ModeRelated))
		return nil
	})
	_ = g.Wait()

	metrics.HistoryEventsTotal.WithLabelValues("read").Inc()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Browsing history fetched", out))
}

func readRail(ctx context.Context, visitorID string, q history.ReadQuery) []models.ProductCard {
	products, err := services.Catalog().ReadProducts(ctx, q)
	if err != nil {
		zap.L().Warn("[store.history.get] rail failed",
			zap.String("visitor_id", visitorID),
			zap.String("type", string(q.Mode)),
			zap.Error(err))
		return []models.ProductCard{}
	}
	if products == nil {
		return []models.ProductCard{}
	}
	return products
}
