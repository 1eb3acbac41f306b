package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Ha-Xuan-Hau/FAPCL-sub000/api/swagger"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/handler"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/middleware"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/repository"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/service"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/cache"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/config"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/database"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/jobs"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/logger"
	corsmiddleware "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/middleware/requestid"
)

// @title FAPCL Exam Scheduling API
// @version 0.1.0
// @description Exam scheduling engine with greedy timetable planning and proctor assignment
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Redis only backs the read-side cache. Run without it.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	examRepo := repository.NewExamRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	tokens := service.NewTokenService(cfg.JWT.Secret)

	var scheduler *service.ExamScheduleService

	warmQueue := jobs.NewQueue("exam-detail-warm", func(ctx context.Context, job jobs.Job) error {
		examID, ok := job.Payload.(int)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		scheduler.GetScheduleDetails(ctx, examID)
		return nil
	}, jobs.QueueConfig{
		Workers: cfg.Scheduling.CacheWarmWorkers,
		Logger:  logr,
	})

	scheduler = service.NewExamScheduleService(
		courseRepo,
		enrollmentRepo,
		slotRepo,
		roomRepo,
		teacherRepo,
		examRepo,
		db,
		cacheRepo,
		metrics,
		warmQueue,
		nil,
		logr,
		service.ExamScheduleConfig{
			MaxCourses:     cfg.Scheduling.MaxCoursesPerRequest,
			MaxWindowDays:  cfg.Scheduling.MaxWindowDays,
			GroupSize:      cfg.Scheduling.GroupSize,
			DetailCacheTTL: cfg.Scheduling.DetailCacheTTL,
		},
	)

	var exporter *service.ExportService
	if cfg.Exports.Enabled {
		exporter = service.NewExportService(scheduler, logr)
	}

	examHandler := handler.NewExamScheduleHandler(scheduler, exporter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	warmQueue.Start(ctx)
	defer warmQueue.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	exams := api.Group("/exams")
	exams.Use(middleware.JWT(tokens))
	exams.POST("/schedule", middleware.RequireRoles(models.RoleAdmin), examHandler.Schedule)
	exams.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), examHandler.ListSession)
	exams.GET("/export", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), examHandler.Export)
	exams.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleStudent), examHandler.Detail)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
