package server

import (
	"github.com/labstack/echo/v4"

	"example.com/travlapes/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	destinationHandler *handlers.DestinationHandler,
	placesHandler *handlers.PlacesHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	placesRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth", authRateLimiter)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	destinations := api.Group("/destinations")
	destinations.GET("", destinationHandler.List)
	destinations.POST("", destinationHandler.Create, authMiddleware)
	destinations.POST("/search", destinationHandler.Search)

	// Scheduling hits the external weather API, so the places group gets
	// its own limiter.
	places := api.Group("/places", authMiddleware, placesRateLimiter)
	places.POST("/recommend", placesHandler.Recommend)
	places.POST("/finalize", placesHandler.Finalize)
	places.POST("/plan", placesHandler.Plan)
}
