package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/bootstrap"
	"github.com/anilpotu/aws-s3-service/internal/app/config"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/modules/mduser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/repo/rpuser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svdispatch"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svnotify"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svstorage"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svuser"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/awsx"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/notify/sns"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/persistence/database"
	"github.com/anilpotu/aws-s3-service/internal/app/infra/storage/s3"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/producer"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/notify"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/storage"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/user"
	"github.com/anilpotu/aws-s3-service/internal/app/server/routers"
	"github.com/anilpotu/aws-s3-service/internal/app/worker"
)

// App 应用实例
type App struct {
	Engine  *gin.Engine
	Runners []worker.Runner
}

// InitializeApp 按依赖顺序组装应用
// infra -> repo -> module -> service -> handler -> router
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*App, func(), error) {
		cleanup()
		return nil, nil, err
	}

	// 1. 数据库
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, func() {
		if err := database.Close(db); err != nil {
			log.Warn("Close database failed", "error", err)
		}
	})
	log.Info("Database connected", "driver", cfg.Database.Driver)

	// 2. AWS 客户端
	awsCfg, err := awsx.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return fail(err)
	}
	store := s3.NewFromConfig(awsCfg, cfg.S3.Bucket, awsx.UsesCustomEndpoint(awsCfg))
	notifier := sns.NewFromConfig(awsCfg, cfg.SNS.TopicARN)

	queue, queueCleanup, err := bootstrap.NewQueue(cfg.Queue, awsCfg, log)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, queueCleanup)
	log.Info("Queue configured", "provider", cfg.Queue.Provider, "fifo", cfg.Queue.IsFIFOQueue())

	// 3. 领域服务
	userModule := mduser.NewUserModule(rpuser.NewUserRepository(db))
	userService := svuser.NewUserService(userModule, log)
	storageService := svstorage.NewStorageService(store, notifier, log)
	notifyService := svnotify.NewNotifyService(notifier, log)
	dispatchService := svdispatch.NewDispatchService(userModule, producer.NewProducer(queue), log)

	// 4. HTTP 路由
	engine := routers.SetupRoutes(log, routers.Handlers{
		Storage: storage.NewStorageHandler(storageService),
		Notify:  notify.NewNotifyHandler(notifyService),
		User:    user.NewUserHandler(userService, storageService, dispatchService),
	})

	// 5. 后台消费者
	app := &App{Engine: engine}
	if cfg.Consumer.Enabled {
		queueConsumer, consumerCleanup, err := bootstrap.NewConsumer(ctx, cfg, queue, log)
		if err != nil {
			return fail(fmt.Errorf("init consumer failed: %w", err))
		}
		cleanups = append(cleanups, consumerCleanup)
		app.Runners = append(app.Runners, queueConsumer)
	}

	return app, cleanup, nil
}
