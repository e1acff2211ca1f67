package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidshare-go/internal/config"
	"vidshare-go/internal/infra/database"
	infraES "vidshare-go/internal/infra/elasticsearch"
	infraKafka "vidshare-go/internal/infra/kafka"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/repository"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

// consumer 消费处理管线回报的状态事件，落库并同步搜索索引
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认读取 VIDSHARE_CONFIG 或 configs/config.yaml）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 事件去重依赖 Redis，不可用时仍继续处理
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, event dedup disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
	}

	// 下载完成后需要派发处理作业
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search index will not be synced", zap.Error(err))
		} else {
			defer infraES.Close()
		}
	}

	db := database.Get()
	pipelineService := service.NewPipelineService(
		repository.NewVideoRepository(db),
		repository.NewProcessingTaskRepository(db),
		repository.NewYouTubeDownloadRepository(db),
		repository.NewSocialUploadRepository(db),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	infraKafka.StartPipelineEventConsumer(
		ctx,
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic("events"),
		cfg.Kafka.ConsumerGroup,
		pipelineService.HandleEvent,
	)
}
