package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/middleware"
	"github.com/bivex/school-access/internal/application/query"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/config"
	"github.com/bivex/school-access/internal/infrastructure/logging"
	"github.com/bivex/school-access/internal/infrastructure/metrics"
	"github.com/bivex/school-access/internal/infrastructure/persistence/pool"
	"github.com/bivex/school-access/internal/infrastructure/persistence/repository"
	app_handler "github.com/bivex/school-access/internal/interfaces/http/handlers"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting School Access API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.Sentry.Environment),
	)

	// Initialize database connection
	ctx := context.Background()
	dbPool, err := pool.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close(dbPool)

	if err := pool.Ping(ctx, dbPool); err != nil {
		logging.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Initialize Redis
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	opts.PoolSize = cfg.Redis.PoolSize
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	// Initialize repositories
	schoolRepo := repository.NewSchoolRepository(dbPool)
	subscriptionRepo := repository.NewSubscriptionRepository(dbPool)
	codeRepo := repository.NewAccessCodeRepository(dbPool)
	teacherRepo := repository.NewTeacherRepository(dbPool)
	requestRepo := repository.NewProfileRequestRepository(dbPool)

	statusCache := cache.NewStatusCache(redisClient, logging.Logger)

	// Initialize middleware
	jwtMiddleware := middleware.NewJWTMiddleware(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		redisClient,
		cfg.JWT.AccessTTL,
	)
	rateLimiter := middleware.NewRateLimiter(redisClient, true) // fail open
	accessGate := middleware.NewAccessGate(subscriptionRepo, time.Now)

	// Initialize commands
	registerCmd := command.NewRegisterSchoolCommand(schoolRepo, jwtMiddleware)
	loginCmd := command.NewLoginCommand(schoolRepo, jwtMiddleware)
	redeemCmd := command.NewRedeemAccessCodeCommand(codeRepo, subscriptionRepo, statusCache, time.Now)
	cancelCmd := command.NewCancelSubscriptionCommand(subscriptionRepo, statusCache, time.Now)
	grantCmd := command.NewGrantSubscriptionCommand(subscriptionRepo, schoolRepo, statusCache, time.Now)
	issueCodeCmd := command.NewIssueAccessCodeCommand(codeRepo)
	revokeCodeCmd := command.NewRevokeAccessCodeCommand(codeRepo, statusCache, time.Now)
	deleteCodeCmd := command.NewDeleteAccessCodeCommand(codeRepo)
	teacherCmd := command.NewManageTeacherCommand(teacherRepo)
	requestCmd := command.NewRequestProfileCommand(requestRepo, teacherRepo)
	resolveCmd := command.NewResolveProfileRequestCommand(requestRepo, time.Now)

	// Initialize queries
	subscriptionQuery := query.NewSubscriptionQuery(subscriptionRepo, statusCache, time.Now)
	teacherQuery := query.NewTeacherQuery(teacherRepo)
	codeQuery := query.NewAccessCodeQuery(codeRepo, time.Now)
	requestQuery := query.NewProfileRequestQuery(requestRepo)
	dashboardQuery := query.NewDashboardQuery(schoolRepo, teacherRepo, requestRepo, subscriptionRepo)

	// Initialize handlers
	authHandler := app_handler.NewAuthHandler(registerCmd, loginCmd, redeemCmd, schoolRepo)
	subscriptionHandler := app_handler.NewSubscriptionHandler(subscriptionQuery, cancelCmd)
	teacherHandler := app_handler.NewTeacherHandler(teacherQuery, requestQuery, requestCmd)
	adminHandler := app_handler.NewAdminHandler(
		issueCodeCmd,
		revokeCodeCmd,
		deleteCodeCmd,
		grantCmd,
		teacherCmd,
		resolveCmd,
		codeQuery,
		teacherQuery,
		requestQuery,
		dashboardQuery,
	)

	// Setup Gin router
	if cfg.Sentry.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logging.RequestMiddleware(logging.Logger),
		metrics.RequestMiddleware(),
	)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register",
				rateLimiter.Middleware(middleware.ByIP, middleware.AuthConfig),
				authHandler.Register,
			)
			auth.POST("/login",
				rateLimiter.Middleware(middleware.ByIP, middleware.AuthConfig),
				authHandler.Login,
			)
		}

		// Protected routes (require JWT)
		protected := v1.Group("")
		protected.Use(jwtMiddleware.Authenticate())
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/use-access-code",
				rateLimiter.Middleware(middleware.BySchoolID, middleware.RedeemConfig),
				authHandler.RedeemAccessCode,
			)

			// Subscription routes
			subs := protected.Group("/subscription")
			subs.GET("/status",
				rateLimiter.Middleware(middleware.BySchoolID, middleware.PollingConfig),
				subscriptionHandler.GetStatus,
			)
			subs.GET("/access",
				rateLimiter.Middleware(middleware.BySchoolID, middleware.PollingConfig),
				subscriptionHandler.CheckAccess,
			)
			subs.POST("/cancel", subscriptionHandler.Cancel)

			// Marketplace routes (subscription gated)
			teachers := protected.Group("/teachers")
			teachers.Use(accessGate.RequireAccess())
			{
				teachers.GET("", teacherHandler.List)
				teachers.GET("/requests", teacherHandler.ListRequests)
				teachers.GET("/:id", teacherHandler.Get)
				teachers.POST("/:id/request", teacherHandler.RequestProfile)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(jwtMiddleware.Authenticate())
		admin.Use(middleware.AdminMiddleware(schoolRepo))
		{
			admin.POST("/access-codes", adminHandler.IssueAccessCode)
			admin.GET("/access-codes", adminHandler.ListAccessCodes)
			admin.POST("/access-codes/:id/revoke", adminHandler.RevokeAccessCode)
			admin.DELETE("/access-codes/:id", adminHandler.DeleteAccessCode)
			admin.POST("/schools/:id/grant", adminHandler.GrantSubscription)
			admin.POST("/teachers", adminHandler.CreateTeacher)
			admin.GET("/teachers", adminHandler.ListTeachers)
			admin.PUT("/teachers/:id", adminHandler.UpdateTeacher)
			admin.DELETE("/teachers/:id", adminHandler.DeleteTeacher)
			admin.GET("/requests", adminHandler.ListProfileRequests)
			admin.PATCH("/requests/:id", adminHandler.ResolveProfileRequest)
			admin.GET("/dashboard/metrics", adminHandler.DashboardMetrics)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exited")
}
