package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyshare_backend/internal/config"
	"studyshare_backend/internal/controller"
	"studyshare_backend/internal/repository"
	"studyshare_backend/internal/service"
	"studyshare_backend/pkg/database"
	"studyshare_backend/pkg/logger"
	"studyshare_backend/pkg/monitoring"
	"studyshare_backend/pkg/security"
	"studyshare_backend/pkg/tracing"

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
	user       *repository.UserRepository
	tenant     *repository.TenantRepository
	lecture    *repository.LectureRepository
	content    *repository.ContentRepository
	problemSet *repository.ProblemSetRepository
	attempt    *repository.ExamAttemptRepository
	rating     *repository.RatingRepository
}

type services struct {
	tenant     *service.TenantService
	auth       *service.AuthService
	lecture    *service.LectureService
	problemSet *service.ProblemSetService
	content    *service.ContentService
	exam       *service.ExamService
	rating     *service.RatingService
	storage    *service.StorageService
	examKeys   *service.RedisExamKeyStore
}

type controllers struct {
	auth       *controller.AuthController
	content    *controller.ContentController
	problemSet *controller.ProblemSetController
	exam       *controller.ExamController
	rating     *controller.RatingController
	lecture    *controller.LectureController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口
func (a *App) ReloadConfig(newCfg interface{}) {
	cfg, ok := newCfg.(*config.Config)
	if !ok {
		return
	}
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		tenant:     repository.NewTenantRepository(db),
		lecture:    repository.NewLectureRepository(db),
		content:    repository.NewContentRepository(db),
		problemSet: repository.NewProblemSetRepository(db),
		attempt:    repository.NewExamAttemptRepository(db),
		rating:     repository.NewRatingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.tenant = service.NewTenantService(repos.tenant)
	s.auth = service.NewAuthService(repos.user, s.tenant, cfg)
	s.lecture = service.NewLectureService(repos.lecture)
	s.problemSet = service.NewProblemSetService(repos.problemSet, db)
	s.content = service.NewContentService(repos.content, repos.problemSet, repos.lecture, repos.user, s.problemSet, db)

	keyTTL := time.Duration(cfg.Exam.KeyTTLMinutes) * time.Minute
	s.examKeys = service.NewRedisExamKeyStore(rdb, keyTTL)
	s.exam = service.NewExamService(repos.content, repos.problemSet, repos.attempt, s.problemSet, s.examKeys, db)

	s.rating = service.NewRatingService(repos.rating, repos.content, repos.attempt)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		content:    controller.NewContentController(s.content),
		problemSet: controller.NewProblemSetController(s.content),
		exam:       controller.NewExamController(s.exam),
		rating:     controller.NewRatingController(s.rating),
		lecture:    controller.NewLectureController(s.lecture),
		upload:     controller.NewUploadController(s.storage),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
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

	// release 模式下默认跳过迁移，需要 -migrate 显式开启
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
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("studyshare-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		services.examKeys.TTL = time.Duration(c.Exam.KeyTTLMinutes) * time.Minute
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
