// @title Vantage CRM API
// @version 1.0
// @description Vantage CRM Backend API Documentation
// @host localhost:8082
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	_ "github.com/Vantage-CRM/vantage-crm-backend/docs"
	"github.com/Vantage-CRM/vantage-crm-backend/middleware"
	"github.com/Vantage-CRM/vantage-crm-backend/routes/crm_routes"
	"github.com/Vantage-CRM/vantage-crm-backend/routes/storefront_routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	// Redis connection
	config.ConnectRedis()

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Actor-Email", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")

	// CRM admin routes (at /api/v1/crm prefix)
	crmGroup := api.Group("/crm")
	crmGroup.Use(middleware.RateLimiter(100, time.Minute))
	crmGroup.Use(middleware.ActivityLoggingMiddleware())
	crm_routes.SetupLeadRoutes(crmGroup)
	crm_routes.SetupOpportunityRoutes(crmGroup)
	crm_routes.SetupOrderRoutes(crmGroup)
	crm_routes.SetupStockRoutes(crmGroup)
	crm_routes.SetupAgentRoutes(crmGroup)
	crm_routes.SetupAnalyticsRoutes(crmGroup)
	log.Println("✅ CRM routes registered")

	// Public storefront (no rate limiter)
	storefront_routes.SetupStorefrontRoutes(api)
	log.Println("✅ Storefront routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
