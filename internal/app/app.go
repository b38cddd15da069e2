package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"smartexam_backend/internal/config"
	"smartexam_backend/internal/controller"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/service"
	"smartexam_backend/pkg/configwatcher"
	"smartexam_backend/pkg/database"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/logger"
	"smartexam_backend/pkg/monitoring"
	"smartexam_backend/pkg/security"
	"smartexam_backend/pkg/tracing"

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
	Store  docstore.Store

	memorySessions  *repository.MemoryAttemptSessionRepository
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	closeOnce       sync.Once
}

type repositories struct {
	question *repository.QuestionRepository
	result   *repository.ResultRepository
	teacher  *repository.TeacherRepository
	catalog  *repository.CatalogRepository
	sessions repository.AttemptSessionRepository
}

type services struct {
	auth     *service.AuthService
	attempt  *service.AttemptService
	catalog  *service.CatalogService
	question *service.QuestionService
	result   *service.ResultService
	teacher  *service.TeacherService
	exports  *service.ExportStorage
}

type controllers struct {
	auth    *controller.AuthController
	catalog *controller.CatalogController
	exam    *controller.ExamController
	teacher *controller.TeacherController
	admin   *controller.AdminController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) redisClient() (*redis.Client, error) {
	if a.Redis != nil {
		return a.Redis, nil
	}
	rdb, err := database.InitRedis(&a.Config.Redis)
	if err != nil {
		return nil, err
	}
	a.Redis = rdb
	return rdb, nil
}

// initStore opens the backend named by store.driver and wraps it with
// timeouts, tracing and metrics.
func (a *App) initStore(ctx context.Context) (docstore.Store, error) {
	cfg := a.Config
	var (
		store docstore.Store
		err   error
	)
	switch cfg.Store.Driver {
	case "memory":
		store = docstore.NewMemoryStore()
	case "redis":
		rdb, rerr := a.redisClient()
		if rerr != nil {
			return nil, rerr
		}
		store = docstore.NewRedisStore(rdb, cfg.Store.RedisPrefix)
	case "mysql", "postgres", "sqlite":
		db, derr := database.InitDB(cfg.Store.Driver, &cfg.Database, cfg.Server.Mode == "debug")
		if derr != nil {
			return nil, derr
		}
		a.DB = db
		store, err = docstore.NewSQLStore(db)
	case "firebase":
		store, err = docstore.NewFirebaseStore(ctx, cfg.Store.FirebaseURL, cfg.Store.FirebaseCredentials)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	return docstore.Instrument(store, cfg.Store.Driver, cfg.Store.Timeout), nil
}

func (a *App) initSessions() (repository.AttemptSessionRepository, error) {
	cfg := a.Config
	if cfg.Session.Driver == "redis" {
		rdb, err := a.redisClient()
		if err != nil {
			return nil, err
		}
		return repository.NewRedisAttemptSessionRepository(rdb, cfg.Store.RedisPrefix, cfg.Session.TTL), nil
	}

	sessions := repository.NewMemoryAttemptSessionRepository(cfg.Session.TTL)
	if err := sessions.StartSweeper(); err != nil {
		return nil, err
	}
	a.memorySessions = sessions
	return sessions, nil
}

func (a *App) initRepositories(store docstore.Store, sessions repository.AttemptSessionRepository) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(store),
		result:   repository.NewResultRepository(store),
		teacher:  repository.NewTeacherRepository(store),
		catalog:  repository.NewCatalogRepository(store),
		sessions: sessions,
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.exports = service.NewExportStorage(&cfg.Export)
	s.auth = service.NewAuthService(repos.teacher, cfg)
	s.catalog = service.NewCatalogService(repos.catalog, repos.question, repos.result)
	s.question = service.NewQuestionService(repos.question, s.catalog)
	s.result = service.NewResultService(repos.result, s.catalog, s.exports)
	s.teacher = service.NewTeacherService(repos.teacher)
	s.attempt = service.NewAttemptService(repos.question, repos.result, repos.sessions)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		catalog: controller.NewCatalogController(s.catalog),
		exam:    controller.NewExamController(s.attempt),
		teacher: controller.NewTeacherController(s.catalog, s.question, s.result),
		admin:   controller.NewAdminController(s.teacher, s.catalog),
		health:  controller.NewHealthController(a.Store, a.Config.Store.Driver),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.rateLimiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{Config: cfg}
	ctx := context.Background()

	store, err := app.initStore(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("init document store: %w", err)
	}
	app.Store = store

	sessions, err := app.initSessions()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("init attempt sessions: %w", err)
	}

	repos := app.initRepositories(store, sessions)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.Reload)
	app.RegisterConfigCallback(func(c *config.Config) {
		app.rateLimiter.SetLimit(c.RateLimit.MaxRequests, time.Duration(c.RateLimit.WindowMinutes)*time.Minute)
	})

	logger.Log.Info("Application initialized",
		zap.String("store", cfg.Store.Driver),
		zap.String("sessions", cfg.Session.Driver),
		zap.String("exports", cfg.Export.Type))
	return app, nil
}

// Close releases background workers and connections. It is safe on a
// partially built App and on repeated calls.
func (a *App) Close() {
	a.closeOnce.Do(a.close)
}

func (a *App) close() {
	if a.memorySessions != nil {
		a.memorySessions.StopSweeper()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.DB != nil {
		database.CloseDB(a.DB)
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.File != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.File, func(cfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(cfg)
				}
			})
			if err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.Close()
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
