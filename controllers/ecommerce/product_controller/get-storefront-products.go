package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
)

// GetStorefrontProducts godoc
// @Summary Search storefront products
// @Description Paginated product search. Every facet defaults to "all"; unparsable price or rating values yield an empty page.
// @Tags store
// @Produce json
// @Param q query string false "Free text matched against name and description"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag"
// @Param brand query string false "Brand slug"
// @Param price query string false "Price range min-max, either side optional" example(10-50)
// @Param rating query string false "Minimum average rating"
// @Param sort query string false "Sort key" Enums(best-selling, price-low-to-high, price-high-to-low, newest-arrivals, avg-customer-review) default(best-selling)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCard}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	state := search.FromValues(c.Request.URL.Query())
	spec := search.Derive(state)

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := services.Catalog().Search(ctx, spec)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		zap.L().Error("[store.products.search] query failed",
			zap.String("filters", state.Encode()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	outcome := "ok"
	switch {
	case spec.Unsatisfiable:
		outcome = "unsatisfiable"
	case page.Total == 0:
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()

	products := page.Products
	if products == nil {
		products = []models.ProductCard{}
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched", products, &models.Pagination{
		Page:       page.Page,
		Limit:      spec.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}))
}
