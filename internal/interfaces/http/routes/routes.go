// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/catalog"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/enrollment"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/interfaces/http/handlers"
)

// Services bundles the domain services the routes depend on
type Services struct {
	Carts      *cart.Manager
	Sessions   *session.Manager
	Checkout   *checkout.Service
	Catalog    *catalog.Service
	Enrollment *enrollment.Service
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, svc *Services) {
	setupAuthRoutes(rg, svc)
	setupCartRoutes(rg, svc)
	setupCatalogRoutes(rg, svc)
	setupCheckoutRoutes(rg, svc)
}

// setupAuthRoutes sets up authentication and enrollment routes
func setupAuthRoutes(rg *gin.RouterGroup, svc *Services) {
	authHandler := handlers.NewAuthHandler(svc.Sessions, svc.Enrollment)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", authHandler.GetProfile)
		auth.GET("/credentials", authHandler.GetSavedCredentials)
		auth.GET("/countries", authHandler.GetCountries)
	}
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, svc *Services) {
	cartHandler := handlers.NewCartHandler(svc.Carts)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.DELETE("/items", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// setupCatalogRoutes sets up course catalog routes
func setupCatalogRoutes(rg *gin.RouterGroup, svc *Services) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	courses := rg.Group("/courses")
	{
		courses.GET("", catalogHandler.GetCourses)
		courses.GET("/:id", catalogHandler.GetCourseContent)
	}

	quizzes := rg.Group("/quizzes")
	{
		quizzes.GET("", catalogHandler.GetQuizzes)
		quizzes.POST("/submit", catalogHandler.SubmitQuiz)
		quizzes.GET("/:id/download", catalogHandler.GetQuizDownload)
	}

	rg.GET("/blogs", catalogHandler.GetBlogs)
}

// setupCheckoutRoutes sets up checkout routes
func setupCheckoutRoutes(rg *gin.RouterGroup, svc *Services) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, svc.Carts)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.GET("", checkoutHandler.CanCheckout)
		checkoutGroup.POST("", checkoutHandler.Submit)
	}
}
