package product_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// GetBrowsingHistoryProducts godoc
// @Summary Products for the browsing-history rails
// @Description type=history returns the given ids in the given order. type=related returns products in the given categories that are not among ids, or any products outside ids when no category is valid. Invalid ids and categories are ignored.
// @Tags store
// @Produce json
// @Param type query string true "Rail" Enums(history, related)
// @Param ids query string false "Comma separated product ids, most recent first"
// @Param categories query string false "Comma separated category slugs"
// @Param limit query int false "Maximum products" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCard}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/browsing-history [get]
func GetBrowsingHistoryProducts(c *gin.Context) {
	mode, err := history.ParseMode(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "type must be history or related"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	q := history.ReadQuery{
		Mode:       mode,
		IDs:        splitList(c.QueryArray("ids")),
		Categories: splitList(c.QueryArray("categories")),
		Limit:      limit,
	}.Normalize()

	if q.Empty() {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Products fetched", []models.ProductCard{}))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := services.Catalog().ReadProducts(ctx, q)
	if err != nil {
		zap.L().Error("[store.products.history] read failed",
			zap.String("type", string(mode)), zap.Int("ids", len(q.IDs)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products fetched", products))
}
