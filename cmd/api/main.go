package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/geospatial-academy/training-hub-api/api/swagger"
	"github.com/geospatial-academy/training-hub-api/internal/handler"
	"github.com/geospatial-academy/training-hub-api/internal/middleware"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
	"github.com/geospatial-academy/training-hub-api/internal/service"
	"github.com/geospatial-academy/training-hub-api/pkg/cache"
	"github.com/geospatial-academy/training-hub-api/pkg/config"
	"github.com/geospatial-academy/training-hub-api/pkg/database"
	"github.com/geospatial-academy/training-hub-api/pkg/logger"
	"github.com/geospatial-academy/training-hub-api/pkg/mailer"
	corsmiddleware "github.com/geospatial-academy/training-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/geospatial-academy/training-hub-api/pkg/middleware/requestid"
)

// @title Geospatial Training Hub API
// @version 1.0.0
// @description Course catalog, public registrations and admin dashboard
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// userStore is the union of what the auth service needs from a user backend.
// Both the Postgres repositories and the in-memory store satisfy these.
type userStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
}

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, activeOnly bool) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	IncrementEnrollment(ctx context.Context, id string, delta int) (bool, error)
	CountActive(ctx context.Context) (int, error)
}

type registrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id int64) (*models.Registration, error)
	List(ctx context.Context) ([]models.Registration, error)
	ListSince(ctx context.Context, from time.Time) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error)
	Count(ctx context.Context, filter models.StatsFilter) (int, error)
}

type contactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type bannerStore interface {
	Create(ctx context.Context, banner *models.Banner) error
	FindByID(ctx context.Context, id int64) (*models.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type settingStore interface {
	List(ctx context.Context) ([]models.WebsiteSetting, error)
	FindByKey(ctx context.Context, key string) (*models.WebsiteSetting, error)
	Upsert(ctx context.Context, setting *models.WebsiteSetting) error
	UpdateValue(ctx context.Context, key, value string) (bool, error)
}

type stores struct {
	users         userStore
	courses       courseStore
	registrations registrationStore
	contacts      contactStore
	banners       bannerStore
	settings      settingStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	st, closeStores, err := buildStores(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("storage init failed", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeStores()

	metricsSvc := service.NewMetricsService()

	// Redis is optional. Without it the dashboard recomputes on every request.
	var cacheSvc *service.CacheService
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		defer client.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(client, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	notifier, stopNotifier := buildNotifier(ctx, cfg, logr)
	defer stopNotifier()

	validate := validator.New()

	authSvc := service.NewAuthService(st.users, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "training-hub-api",
	})
	courseSvc := service.NewCourseService(st.courses, cacheSvc, validate, logr)
	regSvc := service.NewRegistrationService(st.registrations, st.courses, notifier, cacheSvc, validate, logr)
	contactSvc := service.NewContactService(st.contacts, notifier, validate, logr)
	bannerSvc := service.NewBannerService(st.banners, validate, logr)
	settingSvc := service.NewSettingService(st.settings, validate, logr)
	dashSvc := service.NewDashboardService(st.registrations, st.courses, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(st.registrations, st.courses, logr)

	if err := authSvc.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		logr.Sugar().Fatalw("admin seed failed", "error", err)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	regHandler := handler.NewRegistrationHandler(regSvc, exportSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	bannerHandler := handler.NewBannerHandler(bannerSvc)
	settingHandler := handler.NewSettingHandler(settingSvc)
	dashHandler := handler.NewDashboardHandler(dashSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/registrations", regHandler.Create)
	api.POST("/contact", contactHandler.Create)
	api.GET("/courses", middleware.OptionalJWT(authSvc), courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/banners", middleware.OptionalJWT(authSvc), bannerHandler.List)
	api.GET("/banners/:id", bannerHandler.Get)
	api.GET("/website-settings", settingHandler.List)
	api.GET("/website-settings/:key", settingHandler.Get)
	api.POST("/admin/login", authHandler.Login)
	api.POST("/admin/refresh", authHandler.Refresh)

	admin := api.Group("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/registrations", regHandler.List)
	admin.GET("/registrations/export", regHandler.Export)
	admin.GET("/registrations/:id", regHandler.Get)
	admin.PATCH("/registrations/:id/status", regHandler.UpdateStatus)
	admin.GET("/contact", contactHandler.List)
	admin.POST("/courses", courseHandler.Create)
	admin.PATCH("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)
	admin.POST("/banners", bannerHandler.Create)
	admin.PATCH("/banners/:id", bannerHandler.Update)
	admin.DELETE("/banners/:id", bannerHandler.Delete)
	admin.POST("/website-settings", settingHandler.Upsert)
	admin.PATCH("/website-settings/:key", settingHandler.UpdateValue)
	admin.POST("/admin/logout", authHandler.Logout)
	admin.GET("/admin/me", authHandler.Me)
	admin.GET("/dashboard/stats", dashHandler.Stats)
	admin.GET("/dashboard/system", dashHandler.System)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// buildStores wires the configured storage driver. The memory driver exists
// for demos and local development and seeds a starter catalog.
func buildStores(cfg *config.Config, logr *zap.Logger) (stores, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		store.SeedSampleCourses()
		return stores{
			users:         store.Users(),
			courses:       store.Courses(),
			registrations: store.Registrations(),
			contacts:      store.Contacts(),
			banners:       store.Banners(),
			settings:      store.Settings(),
		}, func() {}, nil
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			users:         repository.NewUserRepository(db),
			courses:       repository.NewCourseRepository(db),
			registrations: repository.NewRegistrationRepository(db),
			contacts:      repository.NewContactRepository(db),
			banners:       repository.NewBannerRepository(db),
			settings:      repository.NewSettingRepository(db),
		}, func() { _ = db.Close() }, nil
	default:
		return stores{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// buildNotifier returns a nop notifier when notifications are disabled or
// SMTP credentials are missing.
func buildNotifier(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.Notifier, func()) {
	if !cfg.Notifications.Enabled {
		return service.NopNotifier{}, func() {}
	}

	smtp, err := mailer.NewSMTP(cfg.SMTP)
	if err != nil {
		logr.Warn("email notifications disabled", zap.Error(err))
		return service.NopNotifier{}, func() {}
	}

	notifier := service.NewEmailNotifier(smtp, logr, service.EmailNotifierConfig{
		AdminEmail: cfg.SMTP.AdminEmail,
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.MaxRetries,
	})
	notifier.Start(ctx)
	return notifier, notifier.Stop
}
