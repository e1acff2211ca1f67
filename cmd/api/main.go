package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vidshare-go/internal/api/handler"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/router"
	"vidshare-go/internal/config"
	"vidshare-go/internal/infra/database"
	infraES "vidshare-go/internal/infra/elasticsearch"
	infraKafka "vidshare-go/internal/infra/kafka"
	infraMinio "vidshare-go/internal/infra/minio"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/repository"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"

	_ "vidshare-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../api/openapi --outputTypes go --packageName openapi

// @title VidShare API
// @version 1.0
// @description 视频上传、处理与社交平台发布 API 服务

// @host 127.0.0.1:8000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认读取 VIDSHARE_CONFIG 或 configs/config.yaml）")
	reindex := flag.Bool("reindex", false, "启动时把公开视频全量同步到 Elasticsearch")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 迁移表结构并写入默认平台
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			defer infraES.Close()
			if err := infraES.InitIndexes(); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
		}
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	tagRepo := repository.NewTagRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	taskRepo := repository.NewProcessingTaskRepository(db)
	downloadRepo := repository.NewYouTubeDownloadRepository(db)
	platformRepo := repository.NewSocialPlatformRepository(db)
	uploadRepo := repository.NewSocialUploadRepository(db)

	authService := service.NewAuthService(userRepo)
	accountService := service.NewSocialAccountService(accountRepo)
	tagService := service.NewTagService(tagRepo)
	videoService := service.NewVideoService(videoRepo, taskRepo, tagService)
	downloadService := service.NewDownloadService(downloadRepo)
	searchService := service.NewSearchService(videoRepo)
	socialService := service.NewSocialService(platformRepo, uploadRepo, videoRepo)
	aiService := service.NewAIService(videoRepo, taskRepo)

	if *reindex && infraES.Enabled() {
		go func() {
			success, failed, err := searchService.SyncVideosToES()
			if err != nil {
				logger.Error("Reindex videos failed", zap.Error(err))
				return
			}
			logger.Info("Reindex videos finished", zap.Int("success", success), zap.Int("failed", failed))
		}()
	}

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, accountService),
		Video:    handler.NewVideoHandler(videoService, tagService),
		Download: handler.NewDownloadHandler(downloadService),
		Search:   handler.NewSearchHandler(searchService),
		Social:   handler.NewSocialHandler(socialService),
		AI:       handler.NewAIHandler(aiService),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.Strings("kafka", cfg.Kafka.Brokers),
		zap.Bool("elasticsearch", infraES.Enabled()),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"timestamp":     time.Now().Format(time.RFC3339),
		"service":       cfg.App.Name,
		"version":       cfg.App.Version,
		"mode":          cfg.App.Mode,
		"elasticsearch": infraES.Enabled(),
	})
}
