package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/classtrack/classtrack-api/api/swagger"
	"github.com/classtrack/classtrack-api/internal/handler"
	"github.com/classtrack/classtrack-api/internal/middleware"
	"github.com/classtrack/classtrack-api/internal/repository"
	"github.com/classtrack/classtrack-api/internal/service"
	"github.com/classtrack/classtrack-api/pkg/cache"
	"github.com/classtrack/classtrack-api/pkg/config"
	"github.com/classtrack/classtrack-api/pkg/database"
	"github.com/classtrack/classtrack-api/pkg/logger"
	corsmiddleware "github.com/classtrack/classtrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classtrack/classtrack-api/pkg/middleware/requestid"
	"github.com/classtrack/classtrack-api/pkg/response"
)

// @title ClassTrack API
// @version 1.0.0
// @description Academic task tracking backend: courses, assignments, statistics
// @BasePath /api
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

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to initialise schema", "error", err)
	}
	logr.Sugar().Infow("database ready", "path", cfg.Database.Path)

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	validate := service.NewValidator()

	courseSvc := service.NewCourseService(repository.NewCourseRepository(db), validate, cacheSvc, logr)
	assignmentSvc := service.NewAssignmentService(repository.NewAssignmentRepository(db), validate, cacheSvc, metricsSvc, logr)
	statsSvc := service.NewStatsService(repository.NewStatsRepository(db), cacheSvc, metricsSvc, logr)
	seedSvc := service.NewSeedService(repository.NewSeedRepository(db), cacheSvc, logr)

	if cfg.Seed.OnStartup {
		if _, err := seedSvc.Run(ctx); err != nil {
			logr.Sugar().Fatalw("startup seed failed", "error", err)
		}
	}

	courseHandler := handler.NewCourseHandler(courseSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	seedHandler := handler.NewSeedHandler(seedSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logr.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope{Success: false, Error: "internal server error"})
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.NoRoute(response.NotFoundRoute)

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.Get)
		api.POST("/courses", courseHandler.Create)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.GET("/assignments", assignmentHandler.List)
		api.GET("/assignments/week", assignmentHandler.Week)
		api.GET("/assignments/:id", assignmentHandler.Get)
		api.POST("/assignments", assignmentHandler.Create)
		api.PUT("/assignments/:id", assignmentHandler.Update)
		api.PATCH("/assignments/:id/complete", assignmentHandler.ToggleComplete)
		api.DELETE("/assignments/:id", assignmentHandler.Delete)

		api.GET("/stats", statsHandler.Overview)
		api.POST("/seed", seedHandler.Seed)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
