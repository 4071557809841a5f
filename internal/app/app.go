package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/controller"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/service"
	"school_exam_backend/pkg/configwatcher"
	"school_exam_backend/pkg/database"
	"school_exam_backend/pkg/logger"
	"school_exam_backend/pkg/monitoring"
	"school_exam_backend/pkg/security"
	"school_exam_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	policy         *config.TestPolicy
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	class      *repository.ClassRepository
	competency *repository.CompetencyRepository
	question   *repository.QuestionRepository
	answer     *repository.AnswerRepository
	key        *repository.KeyRepository
	attempt    *repository.AttemptRepository
	result     *repository.ResultRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	user       *service.UserService
	class      *service.ClassService
	competency *service.CompetencyService
	question   *service.QuestionService
	exam       *service.ExamService
	export     *service.ExportService
}

type controllers struct {
	auth       *controller.AuthController
	teacher    *controller.TeacherController
	student    *controller.StudentController
	class      *controller.ClassController
	competency *controller.CompetencyController
	question   *controller.QuestionController
	answer     *controller.AnswerController
	key        *controller.KeyController
	exam       *controller.ExamController
	result     *controller.ResultController
	profile    *controller.ProfileController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		class:      repository.NewClassRepository(db),
		competency: repository.NewCompetencyRepository(db),
		question:   repository.NewQuestionRepository(db),
		answer:     repository.NewAnswerRepository(db),
		key:        repository.NewKeyRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		result:     repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.class = service.NewClassService(repos.class)
	s.competency = service.NewCompetencyService(repos.competency, rdb)
	s.question = service.NewQuestionService(repos.competency, repos.question, repos.answer, repos.key, rdb)
	s.exam = service.NewExamService(repos.competency, repos.attempt, repos.result, rdb, a.policy)
	s.export = service.NewExportService()

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		teacher:    controller.NewTeacherController(s.user),
		student:    controller.NewStudentController(s.user, s.class),
		class:      controller.NewClassController(s.class),
		competency: controller.NewCompetencyController(s.competency),
		question:   controller.NewQuestionController(s.question),
		answer:     controller.NewAnswerController(s.question),
		key:        controller.NewKeyController(s.question),
		exam:       controller.NewExamController(s.exam),
		result:     controller.NewResultController(s.exam, s.competency, s.export),
		profile:    controller.NewProfileController(s.user, s.storage),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig picks up attempt-policy edits without a restart. Only
// the policy knobs are hot; everything else needs a restart anyway.
// Request handlers read the knobs concurrently, so the swap goes
// through the atomic TestPolicy snapshot, never through a.Config.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		a.policy.Replace(newCfg.Test)
		logger.Log.Info("test policy reloaded",
			zap.Bool("allow_retake", newCfg.Test.AllowRetake),
			zap.Bool("require_all_answered", newCfg.Test.RequireAllAnswered),
		)
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

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
		policy: config.NewTestPolicy(cfg.Test),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("school-exam", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
