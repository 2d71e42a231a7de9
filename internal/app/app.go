package app

import (
	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/controller"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"
	"calm_learning_hub/pkg/database"
	"calm_learning_hub/pkg/logger"
	"calm_learning_hub/pkg/monitoring"
	"calm_learning_hub/pkg/security"
	"calm_learning_hub/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	roster        *repository.RosterRepository
	lesson        *repository.LessonRepository
	assignment    *repository.AssignmentRepository
	help          *repository.HelpRepository
	encouragement *repository.EncouragementRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	storage       *service.StorageService
	ai            *service.AIService
	roster        *service.RosterService
	lesson        *service.LessonService
	assignment    *service.AssignmentService
	help          *service.HelpService
	helpHub       *service.HelpHub
	report        *service.ReportService
	encouragement *service.EncouragementService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	roster        *controller.RosterController
	lesson        *controller.LessonController
	learner       *controller.LearnerController
	progress      *controller.ProgressController
	help          *controller.HelpController
	encouragement *controller.EncouragementController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps in a freshly loaded config and notifies registered
// callbacks. Listeners, middleware chains and open connections keep their
// original settings; callbacks pick up what can change at runtime.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	logger.Log.Info("Configuration reloaded")
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		roster:        repository.NewRosterRepository(db),
		lesson:        repository.NewLessonRepository(db),
		assignment:    repository.NewAssignmentRepository(db),
		help:          repository.NewHelpRepository(db),
		encouragement: repository.NewEncouragementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.roster = service.NewRosterService(repos.roster, repos.user)
	s.lesson = service.NewLessonService(repos.lesson, repos.assignment, repos.roster, s.ai, s.storage, db)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.roster)
	s.report = service.NewReportService(repos.assignment, repos.roster)
	s.encouragement = service.NewEncouragementService(repos.encouragement)

	s.helpHub = service.NewHelpHub(rdb)
	go s.helpHub.Run()

	s.help = service.NewHelpService(repos.help, repos.roster, s.helpHub)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth, s.user),
		user:          controller.NewUserController(s.user, s.storage),
		roster:        controller.NewRosterController(s.roster, s.helpHub),
		lesson:        controller.NewLessonController(s.lesson, s.user),
		learner:       controller.NewLearnerController(s.assignment),
		progress:      controller.NewProgressController(s.assignment, s.report),
		help:          controller.NewHelpController(s.help, s.helpHub),
		encouragement: controller.NewEncouragementController(s.encouragement),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("calm-learning-hub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		services.ai.UpdateConfig(c.AI)
	})

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	// Close help sockets and clear Redis presence before the listener stops.
	if a.services != nil && a.services.helpHub != nil {
		a.services.helpHub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
