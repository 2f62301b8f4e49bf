package app

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/controller"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/repository"
	"calibration_quiz/internal/service"
	"calibration_quiz/pkg/configwatcher"
	"calibration_quiz/pkg/database"
	"calibration_quiz/pkg/logger"
	"calibration_quiz/pkg/monitoring"
	"calibration_quiz/pkg/security"
	"calibration_quiz/pkg/tracing"
	"calibration_quiz/web"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	tracer   *sdktrace.TracerProvider

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user    *repository.UserRepository
	score   *repository.ScoreRepository
	session repository.SessionRepository
}

type services struct {
	auth    *service.AuthService
	user    *service.UserService
	score   *service.ScoreService
	quiz    *service.QuizService
	storage *service.StorageService
}

type controllers struct {
	auth   *controller.AuthController
	user   *controller.UserController
	score  *controller.ScoreController
	quiz   *controller.QuizController
	page   *controller.PageController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		score:   repository.NewScoreRepository(db),
		session: repository.NewSessionRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, bank *quiz.Bank, storage *service.StorageService) *services {
	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, repos.session, cfg)
	s.user = service.NewUserService(repos.user)
	s.score = service.NewScoreService(repos.user, repos.score)
	s.quiz = service.NewQuizService(bank, s.score, storage, &cfg.Quiz)
	return s
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	auth := controller.NewAuthController(s.auth, cfg.Session)
	return &controllers{
		auth:   auth,
		user:   controller.NewUserController(s.user, auth),
		score:  controller.NewScoreController(s.score),
		quiz:   controller.NewQuizController(s.quiz),
		page:   controller.NewPageController(cfg.Quiz.ImprintContact),
		health: controller.NewHealthController(a.DB, a.Redis, func() int { return s.quiz.Bank().Len() }),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(security.NewLimiter(cfg.RateLimit.MaxRequests, window)))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around already opened stores. rdb may be nil, in which
// case sessions are kept in memory. storage may be nil when the bank is not
// reloadable.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, bank *quiz.Bank, storage *service.StorageService) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	app.services = app.initServices(repos, cfg, bank, storage)
	controllers := app.initControllers(app.services, cfg)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)
	return app, nil
}

// Bootstrap opens every store named by cfg, loads the question bank and
// builds the App.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, migrate)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	storage, err := service.NewStorageService(&cfg.Quiz)
	if err != nil {
		return nil, err
	}
	bank, err := storage.LoadBank(ctx)
	if err != nil {
		return nil, err
	}
	if bank.Len() < cfg.Quiz.SampleSize {
		return nil, fmt.Errorf("%w: have %d, need %d", quiz.ErrInsufficientBank, bank.Len(), cfg.Quiz.SampleSize)
	}
	logger.Log.Info("Question bank loaded",
		zap.String("source", cfg.Quiz.Source),
		zap.String("path", cfg.Quiz.Path),
		zap.Int("questions", bank.Len()),
	)

	app, err := New(cfg, db, rdb, bank, storage)
	if err != nil {
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}
	return app, nil
}

// Run serves until SIGINT or SIGTERM. SIGHUP reloads the question bank.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.Config.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.File, a.applyConfig); err != nil {
				logger.Log.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err := <-errCh:
			return err
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				if err := a.services.quiz.ReloadBank(ctx); err != nil {
					logger.Log.Error("question bank reload failed", zap.Error(err))
				}
				continue
			}
			return a.shutdown(srv)
		}
	}
}

func (a *App) shutdown(srv *http.Server) error {
	logger.Log.Info("Shutting down server...")

	// 等待请求结束（5秒超时）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	return nil
}
