package storefront_routes

import (
	store_product "github.com/Vantage-CRM/vantage-crm-backend/controllers/storefront/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	products := store.Group("/products")
	{
		products.GET("", store_product.GetStorefrontProducts)
		products.GET("/filters", store_product.GetStorefrontFilters)
		products.GET("/:id", store_product.GetStorefrontProductByID)
	}
}
