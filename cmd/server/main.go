package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	approvalapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/approval"
	catalogapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/catalog"
	identityapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/identity"
	partnerapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/partner"
	recordapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/record"
	schemaapp "github.com/Scaleupapp-nirpeksh/projectX/internal/application/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/approval"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/formula"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/auth"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/config"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/event"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/logger"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/persistence"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/telemetry"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/interfaces/http/handler"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/interfaces/http/middleware"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting projectX backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db := openDatabase(cfg, log)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	tracerProvider := setupTelemetry(cfg, db, log)
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	blacklist := setupTokenBlacklist(cfg, log)
	jwtService := auth.NewJWTService(cfg.JWT)

	engine := newEngine(cfg, log)
	engine.GET("/health", healthHandler(db))

	registerAPIRoutes(engine, cfg, db, jwtService, blacklist, log)

	serve(engine, cfg, log)
}

// openDatabase connects GORM through the zap-backed query logger
func openDatabase(cfg *config.Config, log *zap.Logger) *persistence.Database {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")
	return db
}

// setupTelemetry installs the tracer provider and, when configured, the
// otelgorm query tracing plugin
func setupTelemetry(cfg *config.Config, db *persistence.Database, log *zap.Logger) *telemetry.TracerProvider {
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
		log.Info("Database tracing enabled",
			zap.Duration("slow_query_threshold", cfg.Telemetry.DBSlowQueryThresh))
	}

	return tracerProvider
}

// setupTokenBlacklist prefers Redis and falls back to the in-memory
// implementation outside production
func setupTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("Redis token blacklist connected")
	return redisBlacklist
}

// newEngine builds the gin engine with the shared middleware stack. The
// order matters: request IDs before logging, tracing before enrichment,
// body limits before any handler reads the body.
func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
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
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TraceEnrichment())

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	return engine
}

// registerAPIRoutes wires repositories, services, and handlers onto the
// versioned API router
func registerAPIRoutes(engine *gin.Engine, cfg *config.Config, db *persistence.Database, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) {
	fieldDefRepo := persistence.NewGormFieldDefinitionRepository(db.DB)
	recordRepo := persistence.NewGormFinanceRecordRepository(db.DB)
	ruleRepo := persistence.NewGormApprovalRuleRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	organizationRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	evaluator := formula.NewEvaluator()
	approvalEngine := approval.NewEngine()
	validator := record.NewValidator(
		catalogapp.NewCategoryLookup(categoryRepo),
		partnerapp.NewPartnerLookup(partnerRepo),
	)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))

	authService := identityapp.NewAuthService(organizationRepo, userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	fieldDefService := schemaapp.NewFieldDefinitionService(fieldDefRepo, recordRepo)
	recordService := recordapp.NewRecordService(recordRepo, fieldDefRepo, ruleRepo, validator, evaluator, approvalEngine)
	recordService.SetEventPublisher(eventBus)
	ruleService := approvalapp.NewApprovalRuleService(ruleRepo, recordRepo, approvalEngine)
	categoryService := catalogapp.NewCategoryService(categoryRepo, recordRepo)
	partnerService := partnerapp.NewPartnerService(partnerRepo, recordRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	fieldDefHandler := handler.NewFieldDefinitionHandler(fieldDefService)
	recordHandler := handler.NewRecordHandler(recordService)
	ruleHandler := handler.NewApprovalRuleHandler(ruleService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	partnerHandler := handler.NewPartnerHandler(partnerService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	// register/login/refresh are public, the rest require a token
	authRoutes := router.NewGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	userRoutes := router.NewGroup("/users")
	userRoutes.Use(middleware.RequireAdmin())
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id/role", userHandler.SetRole)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)

	fieldDefRoutes := router.NewGroup("/field-definitions")
	fieldDefRoutes.POST("", fieldDefHandler.Create)
	fieldDefRoutes.GET("", fieldDefHandler.List)
	fieldDefRoutes.GET("/:id", fieldDefHandler.GetByID)
	fieldDefRoutes.PUT("/:id", fieldDefHandler.Update)
	fieldDefRoutes.DELETE("/:id", fieldDefHandler.Delete)

	recordRoutes := router.NewGroup("/records")
	recordRoutes.POST("", recordHandler.Create)
	recordRoutes.GET("", recordHandler.List)
	recordRoutes.GET("/:id", recordHandler.GetByID)
	recordRoutes.PUT("/:id", recordHandler.Update)
	recordRoutes.POST("/:id/transition", recordHandler.Transition)
	recordRoutes.POST("/:id/approve", recordHandler.Approve)
	recordRoutes.DELETE("/:id", recordHandler.Delete)

	ruleRoutes := router.NewGroup("/approval-rules")
	ruleRoutes.POST("", ruleHandler.Create)
	ruleRoutes.GET("", ruleHandler.List)
	ruleRoutes.GET("/:id", ruleHandler.GetByID)
	ruleRoutes.PUT("/:id", ruleHandler.Update)
	ruleRoutes.DELETE("/:id", ruleHandler.Delete)

	categoryRoutes := router.NewGroup("/categories")
	categoryRoutes.POST("", categoryHandler.Create)
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.GET("/:id", categoryHandler.GetByID)
	categoryRoutes.PUT("/:id", categoryHandler.Update)
	categoryRoutes.POST("/:id/activate", categoryHandler.Activate)
	categoryRoutes.POST("/:id/deactivate", categoryHandler.Deactivate)
	categoryRoutes.DELETE("/:id", categoryHandler.Delete)

	partnerRoutes := router.NewGroup("/partners")
	partnerRoutes.POST("", partnerHandler.Create)
	partnerRoutes.GET("", partnerHandler.List)
	partnerRoutes.GET("/:id", partnerHandler.GetByID)
	partnerRoutes.PUT("/:id", partnerHandler.Update)
	partnerRoutes.POST("/:id/activate", partnerHandler.Activate)
	partnerRoutes.POST("/:id/deactivate", partnerHandler.Deactivate)
	partnerRoutes.DELETE("/:id", partnerHandler.Delete)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(fieldDefRoutes).
		Register(recordRoutes).
		Register(ruleRoutes).
		Register(categoryRoutes).
		Register(partnerRoutes)

	r.Setup()
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains it
func serve(engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

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
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["db_pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}
