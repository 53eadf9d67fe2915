package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anilpotu/aws-s3-service/internal/app/bootstrap"
	"github.com/anilpotu/aws-s3-service/internal/app/config"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/awsx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/worker"
)

var configPath = flag.String("config", "config/config.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 1. 加载配置（只需要队列相关配置，不做完整校验）
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Starting queue consumer...", "provider", cfg.Queue.Provider)

	ctx := context.Background()

	// 3. 初始化队列
	awsCfg, err := awsx.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		appLogger.Error("Failed to load aws config", "error", err)
		os.Exit(1)
	}
	queue, queueCleanup, err := bootstrap.NewQueue(cfg.Queue, awsCfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to init queue", "error", err)
		os.Exit(1)
	}
	defer queueCleanup()

	queueConsumer, cleanup, err := bootstrap.NewConsumer(ctx, cfg, queue, appLogger)
	if err != nil {
		appLogger.Error("Failed to init consumer", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// 4. 启动消费者
	manager := worker.NewManager(appLogger, queueConsumer)
	if err := manager.Start(ctx); err != nil {
		appLogger.Error("Failed to start consumer", "error", err)
		os.Exit(1)
	}

	// 5. 等待退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	appLogger.Info("Received shutdown signal, stopping consumer...", "signal", sig.String())

	if err := manager.Shutdown(cfg.Consumer.ShutdownTimeout); err != nil {
		appLogger.Error("Consumer shutdown error", "error", err)
	}
	appLogger.Info("Consumer stopped")
}
