package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusforge/timetable/api/swagger"
	"github.com/campusforge/timetable/internal/csp"
	internalhandler "github.com/campusforge/timetable/internal/handler"
	internalmiddleware "github.com/campusforge/timetable/internal/middleware"
	"github.com/campusforge/timetable/internal/normalizer"
	"github.com/campusforge/timetable/pkg/cache"
	"github.com/campusforge/timetable/pkg/config"
	"github.com/campusforge/timetable/pkg/database"
	"github.com/campusforge/timetable/pkg/logger"
	"github.com/campusforge/timetable/pkg/metrics"
	corsmiddleware "github.com/campusforge/timetable/pkg/middleware/cors"
	reqidmiddleware "github.com/campusforge/timetable/pkg/middleware/requestid"
)

// @title Timetable Solver API
// @version 0.1.0
// @description CSP-based university timetabling solver
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

	rec := metrics.NewRecorder()

	db, err := database.NewSQLite(cfg.Database.Path)
	if err != nil {
		logr.Sugar().Fatalw("failed to open sqlite export file", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("solve cache disabled", "error", err)
	} else {
		defer redisClient.Close()
	}

	solverCfg := toSolverConfig(cfg.Solver)
	normCfg := normalizer.Config{
		RoomPromotionN:     cfg.Solver.RoomPromotionN,
		OrphanCourses:      cfg.Solver.OrphanCourses,
		InstructorPrefixes: cfg.Solver.InstructorPrefixes,
	}

	last := internalhandler.NewLastSolved()
	solveHandler := internalhandler.NewSolveHandler(solverCfg, normCfg, cfg.Solver.CacheTTL, logr, redisClient, rec, last)
	exportHandler := internalhandler.NewExportHandler(last, db)
	metricsHandler := internalhandler.NewMetricsHandler(rec)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(rec))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(cfg.JWT.Secret))

	secured.POST("/solve", solveHandler.Solve)
	secured.GET("/export/csv", exportHandler.CSV)
	secured.GET("/export/pdf", exportHandler.PDF)
	secured.POST("/export/sqlite", exportHandler.SQLite)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// toSolverConfig adapts the flat SolverConfig from pkg/config into the
// csp.Config shape the Search Engine accepts, converting the lab-course
// slice into the set csp.Config.IsLabCourse expects.
func toSolverConfig(sc config.SolverConfig) csp.Config {
	labCourses := make(map[string]bool, len(sc.LabCourses))
	for _, id := range sc.LabCourses {
		labCourses[id] = true
	}
	return csp.Config{
		MaxBacktracks:      sc.MaxBacktracks,
		MaxAttempts:        sc.MaxAttempts,
		PrintInterval:      sc.PrintInterval,
		DayCap:             sc.DayCap,
		LabCourses:         labCourses,
		OrphanCourses:      sc.OrphanCourses,
		InstructorPrefixes: sc.InstructorPrefixes,
		RoomPromotionN:     sc.RoomPromotionN,
		Seed:               sc.Seed,
	}
}
