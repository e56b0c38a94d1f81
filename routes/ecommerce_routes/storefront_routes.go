package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	store_category "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/category_controller"
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	store_history "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/history_controller"
	store_order "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/order_controller"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/product_controller"
	store_wishlist "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/wishlist_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
)

// SetupStorefrontRoutes registers the public storefront API. Every request
// carries a visitor cookie, issued on first contact.
func SetupStorefrontRoutes(router *gin.RouterGroup, secureCookies bool) *gin.RouterGroup {
	store := router.Group("/store")
	store.Use(middleware.Visitor(secureCookies))

	// Product routes
	products := store.Group("/products")
	{
		products.GET("", store_product.GetStorefrontProducts)                       // Search with facets
		products.GET("/browsing-history", store_product.GetBrowsingHistoryProducts) // History / related rails
		products.GET("/filters/metadata", store_filter.GetFilterMetadata)           // Facet options
		products.GET("/:slug", store_product.GetStorefrontProductBySlug)            // Single product
	}

	store.GET("/categories", store_category.GetCategories)
	store.GET("/brands", store_category.GetBrands)

	// Browsing history
	history := store.Group("/history")
	{
		history.GET("", store_history.GetHistory)
		history.POST("", store_history.AddHistoryEntry)
		history.DELETE("", store_history.ClearHistory)
	}

	// Wishlist
	wishlist := store.Group("/wishlist")
	{
		wishlist.GET("", store_wishlist.GetWishlist)
		wishlist.POST("", store_wishlist.AddWishlistItem)
		wishlist.DELETE("/:productId", store_wishlist.RemoveWishlistItem)
	}

	// Orders
	orders := store.Group("/orders")
	{
		orders.POST("", store_order.CreateOrder)
		orders.GET("", store_order.GetOrders)
		orders.GET("/:id", store_order.GetOrderDetails)
	}

	return store
}
