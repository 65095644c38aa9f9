package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/silay-drrmo/drrmo-api/api/swagger"
	"github.com/silay-drrmo/drrmo-api/internal/handler"
	"github.com/silay-drrmo/drrmo-api/internal/middleware"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/repository"
	"github.com/silay-drrmo/drrmo-api/internal/service"
	"github.com/silay-drrmo/drrmo-api/pkg/cache"
	"github.com/silay-drrmo/drrmo-api/pkg/config"
	"github.com/silay-drrmo/drrmo-api/pkg/database"
	"github.com/silay-drrmo/drrmo-api/pkg/export"
	"github.com/silay-drrmo/drrmo-api/pkg/logger"
	corsmiddleware "github.com/silay-drrmo/drrmo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/silay-drrmo/drrmo-api/pkg/middleware/requestid"
)

// @title DRRMO Records API
// @version 1.0.0
// @description Silay City DRRMO flood-risk record keeping and archival
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The dashboard cache is optional; everything else works without it.
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetrics()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	floodActivityRepo := repository.NewFloodActivityRepository(db)
	userLogRepo := repository.NewUserLogRepository(db)
	archivalRepo := repository.NewArchivalRepository(db)

	// Services.
	authSvc := service.NewAuthService(userRepo, userLogRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
	})
	assessmentSvc := service.NewAssessmentService(assessmentRepo, userRepo, validate, logr)
	reportSvc := service.NewReportService(reportRepo, userRepo, validate, logr)
	certificateSvc := service.NewCertificateService(certificateRepo, userRepo,
		export.NewCertificatePDF(cfg.Exports.CityName, cfg.Exports.Office), validate, logr)
	floodActivitySvc := service.NewFloodActivityService(floodActivityRepo, validate, logr)
	userLogSvc := service.NewUserLogService(userLogRepo, logr)
	archivalSvc := service.NewArchivalService(archivalRepo, userRepo, logr)
	dashboardSvc := service.NewDashboardService(archivalRepo, floodActivityRepo, redisClient, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(cfg.Exports, assessmentRepo, reportRepo, floodActivityRepo,
		export.NewCSVExporter(), export.NewPDFExporter(), logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	certificateHandler := handler.NewCertificateHandler(certificateSvc)
	floodActivityHandler := handler.NewFloodActivityHandler(floodActivitySvc)
	userLogHandler := handler.NewUserLogHandler(userLogSvc)
	archivalHandler := handler.NewArchivalHandler(archivalSvc, dashboardSvc, metrics)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleStaff)
	admin := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)

	records := api.Group("", middleware.JWT(authSvc))
	{
		records.GET("/assessments", staff, assessmentHandler.List)
		records.POST("/assessments", staff, assessmentHandler.Create)
		records.GET("/assessments/:id", staff, assessmentHandler.Get)

		records.GET("/reports", staff, reportHandler.List)
		records.POST("/reports", staff, reportHandler.Create)
		records.GET("/reports/:id", staff, reportHandler.Get)

		records.GET("/certificates", staff, certificateHandler.List)
		records.POST("/certificates", staff, certificateHandler.Create)
		records.GET("/certificates/:id", staff, certificateHandler.Get)
		records.GET("/certificates/:id/pdf", staff, certificateHandler.Download)

		records.GET("/flood-activities", staff, floodActivityHandler.List)
		records.POST("/flood-activities", staff, floodActivityHandler.Create)

		records.GET("/user-logs", admin, userLogHandler.List)

		archive := records.Group("/records", admin)
		archive.POST("/archive", middleware.Audit(userRepo, models.AuditActionArchiveRun, "records"), archivalHandler.Archive)
		archive.POST("/restore", middleware.Audit(userRepo, models.AuditActionRestoreRun, "records"), archivalHandler.Restore)

		if cfg.Dashboard.Enabled {
			records.GET("/dashboard", admin, dashboardHandler.Stats)
		}
		if cfg.Exports.Enabled {
			records.GET("/exports/:dataset", admin, exportHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
