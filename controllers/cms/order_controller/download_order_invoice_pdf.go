package order_controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// DownloadOrderInvoicePDF godoc
// @Summary Download order invoice PDF
// @Description Generate and download an invoice PDF for the order
// @Tags Admin - Orders
// @Produce octet-stream
// @Param id path string true "Order ID"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ApiResponse "Invalid order ID"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /admin/orders/{id}/invoice [get]
func DownloadOrderInvoicePDF(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := loadOrder(ctx, orderID)
	if errors.Is(err, errOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}
	if err != nil {
		zap.L().Error("[order.download-invoice] load failed", zap.String("id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	buf, err := services.GenerateInvoicePDF(order)
	if err != nil {
		zap.L().Error("[order.download-invoice] render failed", zap.String("order", order.OrderNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate invoice"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.InvoiceFilename(order)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	zap.L().Info("[order.download-invoice] sent", zap.String("order", order.OrderNumber), zap.Int("bytes", buf.Len()))
}
