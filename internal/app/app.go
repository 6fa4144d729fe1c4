package app

import (
	"career_assess_backend/internal/config"
	"career_assess_backend/internal/controller"
	"career_assess_backend/internal/middleware"
	"career_assess_backend/internal/repository"
	"career_assess_backend/internal/service"
	"career_assess_backend/internal/util"
	"career_assess_backend/pkg/configwatcher"
	"career_assess_backend/pkg/database"
	"career_assess_backend/pkg/logger"
	"career_assess_backend/pkg/monitoring"
	"career_assess_backend/pkg/security"
	"career_assess_backend/pkg/tracing"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	ctx             context.Context // 后台协程的生命周期，Close 时取消
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	sessions repository.SessionStore
	tracker  repository.RecentQuestionTracker
	records  *repository.AssessmentRecordRepository
}

type services struct {
	storage     *service.StorageService
	archive     *service.ResultArchiveService
	recorder    *service.AsyncRecorder
	source      service.QuestionSource
	testSession *service.TestSessionService
	reaper      *service.SessionReaper
}

type controllers struct {
	testSession *controller.TestSessionController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		sessions: repository.NewMemorySessionStore(),
	}

	if rdb != nil {
		repos.tracker = repository.NewRedisRecentQuestionTracker(rdb, cfg.QuestionSource.Cooldown())
	} else {
		repos.tracker = repository.NewMemoryRecentQuestionTracker(cfg.QuestionSource.Cooldown())
	}

	if db != nil {
		repos.records = repository.NewAssessmentRecordRepository(db)
	}
	return repos
}

func newQuestionSource(cfg *config.QuestionSourceConfig, tracker repository.RecentQuestionTracker) service.QuestionSource {
	if cfg.Type == util.QuestionSourceCommand {
		return service.NewCommandQuestionSource(cfg.Command, cfg.Args)
	}
	return service.NewFileQuestionSource(cfg.BankDir, cfg.Files, tracker)
}

func sessionLimits(cfg *config.Config) service.SessionLimits {
	return service.SessionLimits{
		DefaultTimeLimit: cfg.Assessment.DefaultTimeLimit,
		MaxQuestionCount: cfg.Assessment.MaxQuestionCount,
		SourceTimeout:    cfg.QuestionSource.Timeout(),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.archive = service.NewResultArchiveService(s.storage)
	s.recorder = service.NewAsyncRecorder(cfg.Persistence.Workers, cfg.Persistence.QueueSize, cfg.Persistence.Timeout())
	s.source = newQuestionSource(&cfg.QuestionSource, repos.tracker)

	// 未启用数据库时保持接口为 nil
	var records service.RecordStore
	if repos.records != nil {
		records = repos.records
	}

	s.testSession = service.NewTestSessionService(repos.sessions, s.source, records, s.archive, s.recorder, sessionLimits(cfg))
	s.reaper = service.NewSessionReaper(repos.sessions, cfg.Assessment.SessionTTL(), cfg.Assessment.SweepInterval())

	return s
}

func (a *App) initControllers(repos *repositories, s *services) *controllers {
	// 未启用数据库时保持接口为 nil
	var records controller.Pinger
	if repos.records != nil {
		records = repos.records
	}
	return &controllers{
		testSession: controller.NewTestSessionController(s.testSession),
		health:      controller.NewHealthController(records, a.Redis, s.testSession),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, "/metrics", "/api/health"))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders 配置热更新只影响限制、题源超时和会话回收
func (a *App) registerReloaders(s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.testSession.UpdateLimits(sessionLimits(cfg))
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.reaper.Update(cfg.Assessment.SessionTTL(), cfg.Assessment.SweepInterval())
	})
}

func (a *App) startBackgroundTasks(s *services) {
	s.reaper.Start()

	if !a.Config.Server.WatchConfig || a.Config.ConfigPath == "" {
		return
	}

	go configwatcher.WatchConfig(a.ctx, a.Config.ConfigPath, func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	app := &App{Config: cfg}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	// 数据库与 Redis 为可选依赖，连接失败时降级运行
	if cfg.Database.Enabled {
		db, err := database.InitDB(app.ctx, &cfg.Database)
		if err != nil {
			logger.Log.Error("Failed to initialize database, results will not be persisted", zap.Error(err))
		} else {
			app.DB = db
		}
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(app.ctx, &cfg.Redis)
		if err != nil {
			logger.Log.Error("Failed to initialize redis, using in-memory question cooldown", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(cfg, app.DB, app.Redis)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(repos, services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.registerReloaders(services)
	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 停止后台任务并排空持久化队列
func (a *App) Close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.services != nil {
		a.services.reaper.Stop()
		if err := a.services.recorder.Close(ctx); err != nil {
			logger.Log.Warn("Persistence queue not fully drained", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
