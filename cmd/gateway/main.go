package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cartera-app/cartera-gateway/internal/config"
	"github.com/cartera-app/cartera-gateway/internal/handler"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
	"github.com/cartera-app/cartera-gateway/internal/session"
	"github.com/cartera-app/cartera-gateway/internal/upstream"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open session store
	sessions, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer sessions.Close()
	log.Info().Str("path", cfg.SessionDBPath).Msg("Session store ready")

	// Initialize upstream gateways
	client := upstream.NewClient(cfg.UpstreamBaseURL)
	recordGateway := upstream.NewRecordGateway(client)
	budgetGateway := upstream.NewBudgetGateway(client)
	detailGateway := upstream.NewDetailGateway(client)
	userGateway := upstream.NewUserGateway(client)
	requestGateway := upstream.NewRequestGateway(client)
	groupGateway := upstream.NewGroupGateway(client)

	// Initialize services
	authService := service.NewAuthService(userGateway, sessions)
	recordService := service.NewRecordService(recordGateway, budgetGateway, detailGateway)
	budgetService := service.NewBudgetService(budgetGateway, recordGateway, groupGateway)
	detailService := service.NewDetailService(detailGateway)
	requestService := service.NewRequestService(requestGateway, budgetGateway, userGateway)

	// Initialize middleware
	sessionAuth := middleware.NewSessionAuth(sessions)
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	recordHandler := handler.NewRecordHandler(recordService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	detailHandler := handler.NewDetailHandler(detailService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, sessionAuth, rateLimiter, authHandler, recordHandler, budgetHandler, detailHandler, requestHandler)

	// Purge expired sessions periodically
	purgeDone := make(chan struct{})
	go purgeSessions(sessions, purgeDone)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.UpstreamBaseURL).Msg("Starting gateway")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gateway...")
	close(purgeDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Gateway exited")
}

// purgeSessions removes expired sessions every hour until done is closed
func purgeSessions(sessions *session.Store, done <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := sessions.PurgeExpired(context.Background(), time.Now())
			if err != nil {
				log.Warn().Err(err).Msg("Session purge failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("purged", n).Msg("Removed expired sessions")
			}
		case <-done:
			return
		}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
