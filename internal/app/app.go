package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/controller"
	"skill_matrix_backend/internal/middleware"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/pkg/configwatcher"
	"skill_matrix_backend/pkg/database"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/security"
	"skill_matrix_backend/pkg/tracing"

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
	Runtime         *service.Runtime
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	// 中间件后台任务随 Close 退出
	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	employee   *repository.EmployeeRepository
	skill      *repository.SkillRepository
	competency *repository.CompetencyMapRepository
	question   *repository.QuestionRepository
	submission *repository.SubmissionRepository
	scoreLog   *repository.ScoreLogRepository
}

type services struct {
	employee       *service.EmployeeService
	skill          *service.SkillService
	competency     *service.CompetencyService
	quiz           *service.QuizService
	retest         *service.RetestService
	performance    *service.PerformanceService
	questionImport *service.QuestionImportService
}

type controllers struct {
	employee    *controller.EmployeeController
	skill       *controller.SkillController
	competency  *controller.CompetencyController
	mcq         *controller.MCQController
	retest      *controller.RetestController
	performance *controller.PerformanceController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		employee:   repository.NewEmployeeRepository(db),
		skill:      repository.NewSkillRepository(db),
		competency: repository.NewCompetencyMapRepository(db),
		question:   repository.NewQuestionRepository(db),
		submission: repository.NewSubmissionRepository(db),
		scoreLog:   repository.NewScoreLogRepository(db),
	}
}

const lockTTLMargin = 5 * time.Second

// lockTTL 锁需覆盖整个请求超时
func lockTTL(cfg *config.Config) time.Duration {
	return cfg.Server.RequestTimeout() + lockTTLMargin
}

// newLocker 多副本部署时通过 Redis 加锁
func newLocker(rdb *redis.Client, ttl time.Duration) lock.Locker {
	if rdb != nil {
		return lock.NewRedisLocker(rdb, ttl)
	}
	return lock.NewLocalLocker()
}

func initServices(repos *repositories, db *gorm.DB, locker lock.Locker, rt *service.Runtime) *services {
	s := &services{}

	s.skill = service.NewSkillService(repos.skill, rt)
	s.employee = service.NewEmployeeService(repos.employee, repos.competency, rt)
	s.competency = service.NewCompetencyService(repos.competency, rt)
	s.quiz = service.NewQuizService(db, repos.question, repos.submission, repos.scoreLog, s.skill, locker, rt)
	s.retest = service.NewRetestService(repos.submission, s.skill, locker, rt)
	s.performance = service.NewPerformanceService(repos.scoreLog, s.employee, s.skill, rt)
	s.questionImport = service.NewQuestionImportService(repos.question, rt)

	return s
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		employee:    controller.NewEmployeeController(s.employee),
		skill:       controller.NewSkillController(s.skill),
		competency:  controller.NewCompetencyController(s.competency),
		mcq:         controller.NewMCQController(s.quiz, s.questionImport),
		retest:      controller.NewRetestController(s.retest),
		performance: controller.NewPerformanceController(s.performance),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	router.Use(middleware.RequestLogger())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout()))
}

// NewApp 组装数据库、服务和路由。数据库迁移在这里执行
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, db, rdb)
}

func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Runtime: service.NewRuntime(cfg),
	}
	app.RegisterConfigCallback(app.Runtime.Apply)

	repos := initRepositories(db)
	svcs := initServices(repos, db, newLocker(rdb, lockTTL(cfg)), app.Runtime)
	ctrls := initControllers(svcs, db, rdb)

	// 监控初始化
	monitoring.Init()
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	router := gin.New()
	app.Router = router
	app.ctx, app.cancel = context.WithCancel(context.Background())

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls)

	return app, nil
}

// watchConfig 配置文件变化时更新重试策略和出题参数
func (a *App) watchConfig(ctx context.Context) {
	if a.Config.ConfigFile == "" {
		return
	}
	go func() {
		if err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	a.watchConfig(ctx)

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放追踪、Redis 和数据库连接
func (a *App) Close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
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
}
