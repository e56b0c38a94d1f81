package history_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// ClearHistory godoc
// @Summary Clear the visitor's browsing history
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/history [delete]
func ClearHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.DefaultTimeout)
	defer cancel()

	visitorID := middleware.VisitorID(c)
	store, err := services.VisitorHistory(ctx, visitorID)
	if err == nil {
		err = store.Clear(ctx)
	}
	if err != nil {
		zap.L().Error("[store.history.clear] failed", zap.String("visitor_id", visitorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear browsing history"))
		return
	}

	metrics.HistoryEventsTotal.WithLabelValues("clear").Inc()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Browsing history cleared", nil))
}
