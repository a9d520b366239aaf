package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/configwatcher"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	instructor *repository.InstructorRepository
	follow     *repository.FollowRepository
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	curriculum *repository.CurriculumRepository
	lesson     *repository.LessonRepository
	enrollment *repository.EnrollmentRepository
	completion *repository.CompletionRepository
	bookmark   *repository.BookmarkRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	media          *service.MediaService
	catalog        *service.CatalogService
	course         *service.CourseService
	curriculum     *service.CurriculumService
	instructor     *service.InstructorService
	enrollment     *service.EnrollmentService
	progress       *service.ProgressService
	bookmark       *service.BookmarkService
	ai             *service.AIService
	recommendation *service.RecommendationService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	catalog    *controller.CatalogController
	course     *controller.CourseController
	instructor *controller.InstructorController
	enrollment *controller.EnrollmentController
	progress   *controller.ProgressController
	bookmark   *controller.BookmarkController
	ai         *controller.AIController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		instructor: repository.NewInstructorRepository(db),
		follow:     repository.NewFollowRepository(db),
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		curriculum: repository.NewCurriculumRepository(db),
		lesson:     repository.NewLessonRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		completion: repository.NewCompletionRepository(db),
		bookmark:   repository.NewBookmarkRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.media = service.NewMediaService(s.storage, repos.course, repos.lesson, repos.curriculum, repos.instructor, cfg)
	s.catalog = service.NewCatalogService(repos.course, repos.category, repos.instructor)
	s.course = service.NewCourseService(repos.course, repos.category, repos.instructor, repos.curriculum)
	s.curriculum = service.NewCurriculumService(repos.curriculum, repos.course, repos.instructor)
	s.instructor = service.NewInstructorService(repos.instructor, repos.user, repos.follow, repos.course)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.user, repos.instructor, cfg)
	s.progress = service.NewProgressService(repos.completion, repos.course, repos.lesson, repos.enrollment)
	s.bookmark = service.NewBookmarkService(repos.bookmark, repos.course)
	s.ai = service.NewAIService(cfg.AI)
	s.recommendation = service.NewRecommendationService(s.ai, repos.course, repos.enrollment, repos.completion, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		catalog:    controller.NewCatalogController(s.catalog),
		course:     controller.NewCourseController(s.course, s.curriculum, s.media),
		instructor: controller.NewInstructorController(s.instructor, s.catalog),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		progress:   controller.NewProgressController(s.progress),
		bookmark:   controller.NewBookmarkController(s.bookmark),
		ai:         controller.NewAIController(s.recommendation),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// AI caching degrades gracefully without Redis.
		logger.Log.Warn("Redis unavailable, AI response caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded",
			zap.Strings("allowedOrigins", newCfg.CORS.AllowedOrigins))
		app.Config.CORS = newCfg.CORS
		app.Config.RateLimit = newCfg.RateLimit
		app.Config.AI = newCfg.AI
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
