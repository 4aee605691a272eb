// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/handlers"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupPaymentRoutes(rg, db, redisClient, cfg, logger)
	SetupAccountRoutes(rg, db, cfg)
	SetupSupportRoutes(rg, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	auth.Use(middleware.Session())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupCatalogRoutes sets up catalog related routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	rg.GET("/home", catalogHandler.Home)
	rg.GET("/categories", catalogHandler.Categories)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.List)
		products.GET("/:slug", catalogHandler.GetBySlug)
	}

	// Review routes address products by numeric ID
	reviews := rg.Group("/reviews/products/:id")
	{
		reviews.GET("", reviewHandler.List)

		protected := reviews.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			protected.POST("", reviewHandler.Create)
		}
	}
}

// SetupCartRoutes sets up cart routes shared by guests and users
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.Session())
	cart.Use(middleware.OptionalAuth(cfg))
	{
		cart.GET("", cartHandler.Get)
		cart.GET("/count", cartHandler.Count)
		cart.POST("/items", cartHandler.Add)
		cart.DELETE("/items/:product_id", cartHandler.Remove)
		cart.DELETE("", cartHandler.Clear)
	}
}

// SetupOrderRoutes sets up checkout and order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.Session())
	orders.Use(middleware.OptionalAuth(cfg))
	{
		// Guests can place and view the order of their session
		orders.POST("", orderHandler.Create)
		orders.GET("/:id", orderHandler.Get)
		orders.GET("/:id/invoice", orderHandler.Invoice)

		protected := orders.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			protected.GET("", orderHandler.History)
		}
	}
}

// SetupPaymentRoutes sets up payment and webhook routes
func SetupPaymentRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	paymentHandler := handlers.NewPaymentHandler(db, redisClient, cfg, logger)

	payment := rg.Group("/payment")
	payment.Use(middleware.Session())
	payment.Use(middleware.OptionalAuth(cfg))
	{
		payment.POST("/orders/:id/intent", paymentHandler.CreateIntent)
		payment.GET("/orders/:id/status", paymentHandler.Confirm)
	}

	// Webhooks are authenticated by signature, not session
	rg.POST("/webhooks/stripe", paymentHandler.Webhook)
}

// SetupAccountRoutes sets up account-scoped routes
func SetupAccountRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(db, cfg)
	favoriteHandler := handlers.NewFavoriteHandler(db, cfg)

	addresses := rg.Group("/addresses")
	addresses.Use(middleware.AuthRequired(cfg))
	{
		addresses.GET("", addressHandler.List)
		addresses.POST("", addressHandler.Create)
		addresses.PUT("/:id", addressHandler.Update)
		addresses.PUT("/:id/default", addressHandler.SetDefault)
		addresses.DELETE("/:id", addressHandler.Delete)
	}

	favorites := rg.Group("/favorites")
	favorites.Use(middleware.AuthRequired(cfg))
	{
		favorites.GET("", favoriteHandler.List)
		favorites.POST("/:product_id", favoriteHandler.Toggle)
	}
}

// SetupSupportRoutes sets up the static support pages
func SetupSupportRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	supportHandler := handlers.NewSupportHandler(cfg)

	support := rg.Group("/support")
	{
		support.GET("", supportHandler.Pages)
		support.GET("/:page", supportHandler.Page)
	}
}
