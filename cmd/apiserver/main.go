package main

// @title           AWS S3 Service API
// @version         1.0
// @description     用户数据服务：S3 JSON 文件、SNS 通知、用户信息 CRUD 以及队列投递

// @host      localhost:8080
// @BasePath  /

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/config"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/worker"
)

var configPath = flag.String("config", "config/config.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 初始化应用（包含 HTTP Server 和 Consumer）
	app, cleanup, err := InitializeApp(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// 4. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. 启动后台任务
	manager := worker.NewManager(appLogger, app.Runners...)
	if err := manager.Start(context.Background()); err != nil {
		appLogger.Error("Failed to start workers", "error", err)
		os.Exit(1)
	}

	// 6. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 7. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		appLogger.Info("Received shutdown signal, gracefully shutting down...", "signal", sig.String())
	case err := <-serverErrChan:
		appLogger.Error("HTTP server error", "error", err)
		exitCode = 1
	}

	if err := gracefulShutdown(server, manager, cfg, appLogger); err != nil {
		exitCode = 1
	}

	appLogger.Info("Application stopped")
	if exitCode != 0 {
		cleanup()
		_ = appLogger.Sync()
		os.Exit(exitCode)
	}
}

// gracefulShutdown 优雅停机
// 先停止消费者（等待当前批次处理完成），再停止 HTTP Server
func gracefulShutdown(server *http.Server, manager *worker.Manager, cfg *config.Config, log logger.Logger) error {
	var errs []error

	log.Info("Stopping workers...")
	if err := manager.Shutdown(cfg.Consumer.ShutdownTimeout); err != nil {
		log.Error("Worker shutdown error", "error", err)
		errs = append(errs, err)
	}

	log.Info("Stopping HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		errs = append(errs, err)
	} else {
		log.Info("HTTP server stopped gracefully")
	}

	return errors.Join(errs...)
}
