// FaithConnect backend API server.
//
// Serves the member portal, branch administration, and platform
// administration sections of the church management platform under
// /api/v1, with session resolution and scope guards enforced per
// route section.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	appengagement "github.com/faithconnect/backend/internal/application/engagement"
	appidentity "github.com/faithconnect/backend/internal/application/identity"
	appnotification "github.com/faithconnect/backend/internal/application/notification"
	apporg "github.com/faithconnect/backend/internal/application/organization"
	appstreaming "github.com/faithconnect/backend/internal/application/streaming"
	apptransfer "github.com/faithconnect/backend/internal/application/transfer"
	"github.com/faithconnect/backend/internal/domain/authz"
	"github.com/faithconnect/backend/internal/domain/streaming"
	"github.com/faithconnect/backend/internal/infrastructure/auth"
	"github.com/faithconnect/backend/internal/infrastructure/cache"
	"github.com/faithconnect/backend/internal/infrastructure/config"
	"github.com/faithconnect/backend/internal/infrastructure/event"
	"github.com/faithconnect/backend/internal/infrastructure/logger"
	"github.com/faithconnect/backend/internal/infrastructure/persistence"
	"github.com/faithconnect/backend/internal/infrastructure/storage"
	"github.com/faithconnect/backend/internal/interfaces/http/handler"
	"github.com/faithconnect/backend/internal/interfaces/http/middleware"
	"github.com/faithconnect/backend/internal/interfaces/http/router"
)

// version is overridden at build time via -ldflags "-X main.version=..."
var version = "dev"

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

	log.Info("Starting FaithConnect backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and live viewer counters when
	// available. Both fall back to in-memory implementations so a
	// single-node deployment runs without Redis.
	var (
		blacklist auth.TokenBlacklist
		viewers   streaming.ViewerCounter
	)
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist and viewer counters", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		viewers = cache.NewInMemoryViewerCounter()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		viewers = cache.NewRedisViewerCounter(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Playback storage for archived streams
	var playback appstreaming.PlaybackStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3PlaybackStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiry(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to initialize playback storage", zap.Error(err))
		}
		playback = s3Storage
		log.Info("Playback storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		playback = storage.NewStubPlaybackStorage()
	}

	// Repositories
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	streamRepo := persistence.NewGormStreamRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)

	// Event bus for cross-context domain events
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	recorder := appaudit.NewRecorder(auditRepo, log)
	auditQueryService := appaudit.NewQueryService(auditRepo, log)

	authService := appidentity.NewAuthService(profileRepo, jwtService, blacklist, appidentity.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	profileService := appidentity.NewProfileService(profileRepo, cfg.Auth.SessionResolveTimeout, log)
	userAdminService := appidentity.NewUserAdminService(profileRepo, recorder, log)

	transferService := apptransfer.NewService(transferRepo, memberRepo, branchRepo, notificationRepo, recorder, eventBus, log)
	branchService := apporg.NewBranchService(branchRepo, memberRepo, recorder, eventBus, log)
	memberService := apporg.NewMemberService(memberRepo, branchRepo, recorder, log)
	unitService := apporg.NewUnitService(departmentRepo, groupRepo, log)
	statsService := apporg.NewStatsService(branchRepo, memberRepo, profileRepo, transferRepo, log)
	streamingService := appstreaming.NewService(streamRepo, viewers, playback, recorder, log)
	notificationService := appnotification.NewService(notificationRepo, profileRepo, log)
	engagementService := appengagement.NewService(eventRepo, attendanceRepo, log)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(db.DB, version)
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	transferHandler := handler.NewTransferHandler(transferService)
	branchHandler := handler.NewBranchHandler(branchService, statsService)
	memberHandler := handler.NewMemberHandler(memberService)
	unitHandler := handler.NewUnitHandler(unitService)
	userHandler := handler.NewUserHandler(userAdminService)
	auditHandler := handler.NewAuditHandler(auditQueryService)
	streamHandler := handler.NewStreamHandler(streamingService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	engagementHandler := handler.NewEngagementHandler(engagementService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Session(jwtService, blacklist, log),
	)

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Login and refresh get a tighter, IP-keyed limit to slow down
	// credential stuffing.
	registerAuthRoutes := func(rg *gin.RouterGroup) {
		authHandler.RegisterRoutes(rg)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		registerAuthRoutes = func(rg *gin.RouterGroup) {
			limited := rg.Group("", middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
				return c.ClientIP()
			}))
			authHandler.RegisterRoutes(limited)
		}
	}

	r := router.NewRouter(engine, router.SectionGuards{
		Portal:     middleware.RequireScope(authz.ScopeAny, profileService, log),
		Admin:      middleware.RequireScope(authz.ScopeAdmin, profileService, log),
		SuperAdmin: middleware.RequireScope(authz.ScopeSuperAdmin, profileService, log),
	})

	// Logout and password changes carry their own session checks, so
	// they stay outside the scoped sections.
	r.Public(
		systemHandler,
		router.RegistrarFunc(registerAuthRoutes),
		router.RegistrarFunc(authHandler.RegisterSessionRoutes),
	)
	r.Portal(
		profileHandler,
		router.RegistrarFunc(transferHandler.RegisterPortalRoutes),
		router.RegistrarFunc(branchHandler.RegisterPortalRoutes),
		router.RegistrarFunc(memberHandler.RegisterPortalRoutes),
		router.RegistrarFunc(unitHandler.RegisterPortalRoutes),
		router.RegistrarFunc(streamHandler.RegisterPortalRoutes),
		router.RegistrarFunc(notificationHandler.RegisterPortalRoutes),
		router.RegistrarFunc(engagementHandler.RegisterPortalRoutes),
	)
	r.Admin(
		router.RegistrarFunc(transferHandler.RegisterAdminRoutes),
		router.RegistrarFunc(branchHandler.RegisterAdminRoutes),
		router.RegistrarFunc(memberHandler.RegisterAdminRoutes),
		router.RegistrarFunc(unitHandler.RegisterAdminRoutes),
		router.RegistrarFunc(streamHandler.RegisterAdminRoutes),
		router.RegistrarFunc(notificationHandler.RegisterAdminRoutes),
		router.RegistrarFunc(engagementHandler.RegisterAdminRoutes),
	)
	r.SuperAdmin(
		router.RegistrarFunc(branchHandler.RegisterSuperAdminRoutes),
		userHandler,
		auditHandler,
	)
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
