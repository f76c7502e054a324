package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quizdom_backend/internal/config"
	"quizdom_backend/internal/controller"
	"quizdom_backend/internal/job"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/service"
	"quizdom_backend/pkg/database"
	"quizdom_backend/pkg/logger"
	"quizdom_backend/pkg/mailer"
	"quizdom_backend/pkg/monitoring"
	"quizdom_backend/pkg/security"
	"quizdom_backend/pkg/tracing"
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
	scheduler       *job.Scheduler
	workerCancel    context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	subject  *repository.SubjectRepository
	chapter  *repository.ChapterRepository
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	score    *repository.ScoreRepository
}

type services struct {
	auth     *service.AuthService
	attempt  *service.AttemptService
	subject  *service.SubjectService
	chapter  *service.ChapterService
	quiz     *service.QuizService
	question *service.QuestionService
	score    *service.ScoreService
	stats    *service.StatsService
	user     *service.UserService
	export   *service.ExportService
	storage  service.Storage
}

type controllers struct {
	auth     *controller.AuthController
	attempt  *controller.AttemptController
	subject  *controller.SubjectController
	chapter  *controller.ChapterController
	quiz     *controller.QuizController
	question *controller.QuestionController
	score    *controller.ScoreController
	stats    *controller.StatsController
	user     *controller.UserController
	export   *controller.ExportController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新回调入口，由 configwatcher 触发。
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		subject:  repository.NewSubjectRepository(db),
		chapter:  repository.NewChapterRepository(db),
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		score:    repository.NewScoreRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{
		auth:     service.NewAuthService(repos.user, cfg.JWT),
		attempt:  service.NewAttemptService(repos.quiz, repos.question, repos.score, repos.chapter, repos.user),
		subject:  service.NewSubjectService(repos.subject),
		chapter:  service.NewChapterService(repos.chapter, repos.subject),
		quiz:     service.NewQuizService(repos.quiz, repos.question, repos.chapter, repos.score),
		question: service.NewQuestionService(repos.question, repos.quiz),
		score:    service.NewScoreService(repos.score),
		stats:    service.NewStatsService(repos.score),
		user:     service.NewUserService(repos.user),
		export:   service.NewExportService(rdb, cfg.Jobs.ExportQueue),
		storage:  storage,
	}
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		attempt:  controller.NewAttemptController(s.attempt),
		subject:  controller.NewSubjectController(s.subject),
		chapter:  controller.NewChapterController(s.chapter),
		quiz:     controller.NewQuizController(s.quiz),
		question: controller.NewQuestionController(s.question),
		score:    controller.NewScoreController(s.score),
		stats:    controller.NewStatsController(s.stats),
		user:     controller.NewUserController(s.user),
		export:   controller.NewExportController(s.export),
		health:   controller.NewHealthController(db, rdb),
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

// startBackgroundTasks 启动 cron 调度与导出 worker。
func (a *App) startBackgroundTasks(repos *repositories, s *services, cfg *config.Config, rdb *redis.Client) {
	mail := mailer.New(cfg.Mail)

	reminder := job.NewReminderJob(repos.user, repos.quiz, repos.score, mail)
	report := job.NewReportJob(repos.user, repos.score, mail)

	a.scheduler = job.NewScheduler(cfg.Jobs, reminder, report)
	if err := a.scheduler.Start(); err != nil {
		logger.Log.Fatal("Failed to start job scheduler", zap.Error(err))
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	a.workerCancel = cancel

	worker := job.NewExportWorker(rdb, cfg.Jobs.ExportQueue, repos.user, repos.score, s.storage, mail)
	worker.Start(workerCtx)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式默认不动表结构，除非显式要求迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
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
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizdom-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if !cfg.MigrateOnly {
		app.startBackgroundTasks(repos, services, cfg, rdb)
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

	if a.workerCancel != nil {
		a.workerCancel()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
