package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/szlg-ftv/ftv-api/api/swagger"
	"github.com/szlg-ftv/ftv-api/internal/handler"
	internalmiddleware "github.com/szlg-ftv/ftv-api/internal/middleware"
	"github.com/szlg-ftv/ftv-api/internal/service"
	"github.com/szlg-ftv/ftv-api/pkg/config"
	"github.com/szlg-ftv/ftv-api/pkg/logger"
	corsmiddleware "github.com/szlg-ftv/ftv-api/pkg/middleware/cors"
	reqidmiddleware "github.com/szlg-ftv/ftv-api/pkg/middleware/requestid"
)

// @title FTV User Import API
// @version 1.0.0
// @description CSV user import preview for the FTV media club dashboard
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	rowValidator, err := service.NewRowValidator(validator.New())
	if err != nil {
		logr.Fatal("failed to init validator", zap.Error(err))
	}
	importSvc, err := service.NewUserImportService(rowValidator, metricsSvc, nil, nil, logr, service.UserImportConfig{
		MaxRows:      cfg.Import.MaxRows,
		AllowPartial: cfg.Import.AllowPartial,
	})
	if err != nil {
		logr.Fatal("failed to init import service", zap.Error(err))
	}

	importHandler := handler.NewUserImportHandler(importSvc, cfg.Import.MaxFileSizeBytes, logr)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Import.MaxFileSizeBytes
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Recovery(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)

	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
		r.GET("/metrics/summary", metricsHandler.Summary)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	users := api.Group("/users", internalmiddleware.RequireAuthorization())
	users.POST("/import-csv-preview", importHandler.PreviewCSV)
	users.POST("/import-csv-report", importHandler.Report)
	users.GET("/import-csv-template", importHandler.Template)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}
