package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	automationapp "github.com/crm/backend/internal/application/automation"
	crmapp "github.com/crm/backend/internal/application/crm"
	identityapp "github.com/crm/backend/internal/application/identity"
	webhookapp "github.com/crm/backend/internal/application/webhook"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Redis backs the token blacklist and rate limit counters when
	// enabled; otherwise both fall back to in-memory implementations.
	var (
		blacklist    auth.TokenBlacklist
		counterStore ratelimit.CounterStore
	)
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist

		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		counterStore = ratelimit.NewRedisStore(redisClient)
		log.Info("Redis connected, using Redis-backed blacklist and rate limits")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		counterStore = ratelimit.NewMemoryStore()
		log.Info("Redis disabled, using in-memory blacklist and rate limits")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	conversationRepo := persistence.NewGormConversationRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	automationLogRepo := persistence.NewGormAutomationLogRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	eventLogger := automationapp.NewEventLogger(automationLogRepo)

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, clientRepo)
	clientService := crmapp.NewClientService(clientRepo, eventLogger)
	leadService := crmapp.NewLeadService(leadRepo, clientRepo, conversationRepo, eventLogger)
	paymentService := crmapp.NewPaymentService(paymentRepo, clientRepo, eventLogger)
	serviceService := crmapp.NewServiceService(serviceRepo, clientRepo, eventLogger)
	dashboardService := crmapp.NewDashboardService(clientRepo, leadRepo, paymentRepo)
	logService := automationapp.NewLogService(automationLogRepo)
	ingestService := webhookapp.NewIngestService(clientRepo, leadRepo, eventLogger, cfg.Webhook.DedupeWindow)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService, serviceService)
	leadHandler := handler.NewLeadHandler(leadService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	serviceHandler := handler.NewServiceHandler(serviceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	automationLogHandler := handler.NewAutomationLogHandler(logService)
	portalHandler := handler.NewPortalHandler(leadService, paymentService, serviceService)
	webhookHandler := handler.NewWebhookHandler(ingestService)

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		apiLimiter := ratelimit.NewLimiter(counterStore, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: apiLimiter,
			KeyFunc: middleware.KeyByClientIP(),
			Logger:  log,
		}))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	jwtAuth := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public auth routes, throttled separately against credential stuffing
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := ratelimit.NewLimiter(counterStore, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: authLimiter,
			KeyFunc: middleware.KeyByClientIP(),
			Logger:  log,
		}))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/logout", authHandler.Logout)

	// Inbound lead webhook, authenticated by shared secret per platform.
	// The key gate runs first so unauthenticated calls never reach the
	// rate limit counters.
	webhookLimiter := ratelimit.NewLimiter(counterStore, cfg.Webhook.RateLimitRequests, cfg.Webhook.RateLimitWindow)
	webhookRoutes := router.NewDomainGroup("webhook", "/leads/webhook")
	webhookRoutes.Use(middleware.APIKeyAuth(middleware.APIKeyAuthConfig{
		Key:    cfg.Webhook.APIKey,
		Logger: log,
	}))
	webhookRoutes.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Limiter: webhookLimiter,
		KeyFunc: middleware.KeyByHeader(middleware.APIKeyHeader),
		Logger:  log,
	}))
	webhookRoutes.POST("", webhookHandler.IngestLead)

	// Agency staff routes
	crmRoutes := router.NewDomainGroup("crm", "")
	crmRoutes.Use(jwtAuth)

	crmRoutes.GET("/auth/me", authHandler.Me)

	crmRoutes.POST("/clients", clientHandler.Create)
	crmRoutes.GET("/clients", clientHandler.List)
	crmRoutes.GET("/clients/:id", clientHandler.Get)
	crmRoutes.PUT("/clients/:id", clientHandler.Update)
	crmRoutes.DELETE("/clients/:id", clientHandler.Delete)
	crmRoutes.GET("/clients/:id/services", clientHandler.Services)

	crmRoutes.POST("/leads", leadHandler.Create)
	crmRoutes.GET("/leads", leadHandler.List)
	crmRoutes.GET("/leads/board", leadHandler.Board)
	crmRoutes.GET("/leads/:id", leadHandler.Get)
	crmRoutes.PUT("/leads/:id", leadHandler.Update)
	crmRoutes.DELETE("/leads/:id", leadHandler.Delete)
	crmRoutes.POST("/leads/:id/conversations", leadHandler.AddConversation)
	crmRoutes.GET("/leads/:id/conversations", leadHandler.Conversations)
	crmRoutes.GET("/leads/:id/automation-logs", automationLogHandler.ForLead)

	crmRoutes.POST("/payments", paymentHandler.Create)
	crmRoutes.GET("/payments", paymentHandler.List)
	crmRoutes.GET("/payments/:id", paymentHandler.Get)
	crmRoutes.PUT("/payments/:id", paymentHandler.Update)
	crmRoutes.DELETE("/payments/:id", paymentHandler.Delete)

	crmRoutes.POST("/services", serviceHandler.Create)
	crmRoutes.GET("/services", serviceHandler.List)
	crmRoutes.GET("/services/:id", serviceHandler.Get)
	crmRoutes.PUT("/services/:id", serviceHandler.Update)
	crmRoutes.DELETE("/services/:id", serviceHandler.Delete)

	crmRoutes.GET("/dashboard/stats", dashboardHandler.Stats)
	crmRoutes.GET("/automation-logs", automationLogHandler.List)

	crmRoutes.POST("/users", userHandler.Create)
	crmRoutes.GET("/users", userHandler.List)
	crmRoutes.PUT("/users/:id/role", userHandler.ChangeRole)
	crmRoutes.DELETE("/users/:id", userHandler.Delete)

	// Client portal routes
	portalRoutes := router.NewDomainGroup("portal", "/portal")
	portalRoutes.Use(jwtAuth, middleware.RequirePortal())
	portalRoutes.GET("/leads", portalHandler.Leads)
	portalRoutes.GET("/leads/board", portalHandler.Board)
	portalRoutes.GET("/leads/export", portalHandler.ExportLeads)
	portalRoutes.GET("/payments", portalHandler.Payments)
	portalRoutes.GET("/services", portalHandler.Services)

	r.Register(authRoutes).
		Register(webhookRoutes).
		Register(crmRoutes).
		Register(portalRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

var _ = identity.RoleClient
