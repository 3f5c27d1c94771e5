package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cartera-app/cartera-gateway/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, sessionAuth *middleware.SessionAuth, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, recordHandler *RecordHandler, budgetHandler *BudgetHandler, detailHandler *DetailHandler, requestHandler *RequestHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/users", authHandler.Register)

	// Everything below requires a session
	protected := api.Group("")
	protected.Use(sessionAuth.Authenticate())
	protected.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)

	// User routes
	protected.GET("/users/:username", authHandler.GetUser)
	protected.PUT("/users/me", authHandler.UpdateUser)

	// Preference routes
	protected.GET("/preferences", authHandler.GetPreferences)
	protected.PUT("/preferences", authHandler.UpdatePreferences)

	// Record routes
	protected.GET("/records", recordHandler.ListRecords)
	protected.GET("/records/:id", recordHandler.GetRecord)
	protected.POST("/records", recordHandler.CreateRecord)
	protected.PUT("/records/:id", recordHandler.UpdateRecord)
	protected.DELETE("/records/:id", recordHandler.DeleteRecord)

	// Budget routes
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.GET("/budgets/:id", budgetHandler.GetBudget)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	// Detail routes
	protected.POST("/details", detailHandler.CreateDetail)
	protected.PUT("/details/:id", detailHandler.UpdateDetail)
	protected.DELETE("/details/:id", detailHandler.DeleteDetail)

	// Share request routes
	protected.GET("/requests", requestHandler.ListRequests)
	protected.POST("/requests", requestHandler.CreateRequest)
	protected.PATCH("/requests/:id", requestHandler.ResolveRequest)
}
