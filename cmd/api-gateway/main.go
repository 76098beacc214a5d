package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/k12-registration-api/api/swagger"
	"github.com/noah-isme/k12-registration-api/internal/catalog"
	"github.com/noah-isme/k12-registration-api/internal/handler"
	"github.com/noah-isme/k12-registration-api/internal/middleware"
	"github.com/noah-isme/k12-registration-api/internal/models"
	"github.com/noah-isme/k12-registration-api/internal/repository"
	"github.com/noah-isme/k12-registration-api/internal/service"
	"github.com/noah-isme/k12-registration-api/internal/validation"
	"github.com/noah-isme/k12-registration-api/pkg/cache"
	"github.com/noah-isme/k12-registration-api/pkg/config"
	"github.com/noah-isme/k12-registration-api/pkg/database"
	"github.com/noah-isme/k12-registration-api/pkg/export"
	"github.com/noah-isme/k12-registration-api/pkg/jobs"
	"github.com/noah-isme/k12-registration-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/k12-registration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/k12-registration-api/pkg/middleware/requestid"
	"github.com/noah-isme/k12-registration-api/pkg/storage"
)

// @title K-12 Registration API
// @version 1.0.0
// @description Student registration with live field validation, grade reference data and confirmation letters.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{}

	store, closeStore, err := openRegistrationStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open registration store", zap.Error(err))
	}
	defer closeStore()
	checks["database"] = store

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
	}
	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, "k12")
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		checks["cache"] = cacheRepo
	}

	grades := catalog.Default()
	registrationSvc := service.NewRegistrationService(store, metrics, logr)
	formSvc := service.NewFormSessionService(registrationSvc, metrics, logr, service.FormSessionConfig{
		TTL:           cfg.Forms.SessionTTL,
		SweepInterval: cfg.Forms.SweepInterval,
		MaxSessions:   cfg.Forms.MaxSessions,
	})
	formSvc.StartSweeper(ctx)
	dashboardSvc := service.NewDashboardService(registrationSvc, grades, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	rosterSvc := service.NewRosterService(registrationSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	adminAuth := service.NewAdminAuthService(service.AdminAuthConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	letterHandler := handler.NewLetterHandler(nil)
	if cfg.Letters.Enabled {
		letterSvc, queue, err := buildLetters(ctx, cfg, registrationSvc, grades, metrics, logr)
		if err != nil {
			logr.Fatal("failed to start letter pipeline", zap.Error(err))
		}
		defer queue.Stop()
		letterHandler = handler.NewLetterHandler(letterSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	catalogHandler := handler.NewCatalogHandler(grades)
	api.GET("/catalog/grades", catalogHandler.Grades)
	api.GET("/catalog/grades/:grade", catalogHandler.Grade)

	validationHandler := handler.NewValidationHandler(registrationSvc.Clock(), metrics)
	api.POST("/validate/:field", validationHandler.Validate)

	formHandler := handler.NewFormHandler(formSvc)
	forms := api.Group("/forms")
	forms.POST("", formHandler.Open)
	forms.GET("/:id", formHandler.Get)
	forms.PATCH("/:id/fields/:field", formHandler.Change)
	forms.POST("/:id/fields/:field/blur", formHandler.Blur)
	forms.POST("/:id/submit", formHandler.Submit)

	registrationHandler := handler.NewRegistrationHandler(registrationSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	registrations := api.Group("/registrations")
	registrations.POST("", registrationHandler.Create)
	registrations.GET("/:id", registrationHandler.Get)
	registrations.GET("/:id/dashboard", dashboardHandler.Get)
	registrations.POST("/:id/letter", letterHandler.Request)

	api.GET("/letters/download", letterHandler.Download)
	api.GET("/letters/:jobId", letterHandler.Status)

	adminHandler := handler.NewAdminHandler(registrationSvc, rosterSvc, validation.NewStructValidator())
	admin := api.Group("/admin", middleware.JWT(adminAuth), middleware.RequireRoles(models.RoleAdmin, models.RoleRegistrar))
	admin.GET("/registrations", adminHandler.List)
	admin.GET("/registrations/export", adminHandler.Export)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// openRegistrationStore selects PostgreSQL when enabled and the in-memory
// store otherwise.
func openRegistrationStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.RegistrationStore, func(), error) {
	if !cfg.Database.Enabled {
		logr.Info("database disabled, registrations kept in memory")
		return repository.NewMemoryRegistrationRepository(), func() {}, nil
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repository.NewRegistrationRepository(db), func() { _ = db.Close() }, nil
}

// buildLetters wires storage, signer, worker and queue for confirmation letters.
func buildLetters(ctx context.Context, cfg *config.Config, registrations *service.RegistrationService, grades *catalog.Catalog, metrics *service.MetricsService, logr *zap.Logger) (*service.LetterService, *jobs.Queue, error) {
	files, err := storage.NewLocalStorage(cfg.Letters.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Letters.SignedURLSecret, cfg.Letters.SignedURLTTL)
	jobRepo := repository.NewLetterJobRepository()

	worker := service.NewLetterWorker(jobRepo, registrations, grades, export.NewPDFExporter(), files, signer, metrics, logr, service.LetterWorkerConfig{
		SchoolName:   cfg.Letters.SchoolName,
		DownloadPath: cfg.APIPrefix + "/letters/download",
	})
	queue := jobs.NewQueue("letters", worker.Handle, jobs.QueueConfig{
		Workers:     cfg.Letters.WorkerConcurrency,
		MaxRetries:  cfg.Letters.WorkerRetries,
		OnExhausted: worker.MarkFailed,
		Logger:      logr,
	})
	queue.Start(ctx)

	letters := service.NewLetterService(registrations, jobRepo, queue, files, signer, metrics, logr, service.LetterServiceConfig{
		CleanupInterval: cfg.Letters.CleanupInterval,
	})
	letters.StartCleanup(ctx)
	return letters, queue, nil
}
