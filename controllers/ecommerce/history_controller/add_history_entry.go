package history_controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

type AddHistoryEntryRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddHistoryEntry godoc
// @Summary Record a product view
// @Description Moves the product to the front of the visitor's history. The list keeps the ten most recent distinct products.
// @Tags store
// @Accept json
// @Produce json
// @Param payload body AddHistoryEntryRequest true "Viewed product"
// @Success 200 {object} models.ApiResponse{data=[]history.Entry}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/history [post]
func AddHistoryEntry(c *gin.Context) {
	var req AddHistoryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "product_id is required"))
		return
	}
	productID := strings.TrimSpace(req.ProductID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.DefaultTimeout)
	defer cancel()

	products, err := services.Catalog().ByIDs(ctx, []string{productID})
	if err != nil {
		zap.L().Error("[store.history.add] product lookup failed", zap.String("product_id", productID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record product view"))
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	visitorID := middleware.VisitorID(c)
	store, err := services.VisitorHistory(ctx, visitorID)
	if err == nil {
		err = store.Add(ctx, history.Entry{ID: products[0].ID.String(), Category: products[0].Category})
	}
	if err != nil {
		zap.L().Error("[store.history.add] save failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record product view"))
		return
	}

	metrics.HistoryEventsTotal.WithLabelValues("add").Inc()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product view recorded", store.Entries()))
}
