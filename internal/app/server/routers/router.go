package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/health"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/notify"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/storage"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/user"
	"github.com/anilpotu/aws-s3-service/internal/app/server/middlewares"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Storage *storage.StorageHandler
	Notify  *notify.NotifyHandler
	User    *user.UserHandler
}

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(log logger.Logger, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", health.Check)

	s3 := r.Group("/s3")
	{
		s3.POST("/upload", h.Storage.Upload)
		s3.GET("/*key", h.Storage.Read)
		s3.PUT("/*key", h.Storage.Update)
	}

	sns := r.Group("/sns")
	{
		sns.POST("/publish", h.Notify.Publish)
	}

	users := r.Group("/users")
	{
		users.POST("/sqs/send", h.User.SendToQueue)

		users.POST("/personal", h.User.CreatePersonal)
		users.GET("/:user_id/personal", h.User.GetPersonal)
		users.PATCH("/:user_id/personal", h.User.UpdatePersonal)
		users.DELETE("/:user_id/personal", h.User.DeletePersonal)

		users.POST("/financial", h.User.CreateFinancial)
		users.GET("/:user_id/financial", h.User.GetFinancial)
		users.PATCH("/:user_id/financial", h.User.UpdateFinancial)
		users.DELETE("/:user_id/financial", h.User.DeleteFinancial)

		users.POST("/health", h.User.CreateHealth)
		users.GET("/:user_id/health", h.User.GetHealth)
		users.PATCH("/:user_id/health", h.User.UpdateHealth)
		users.DELETE("/:user_id/health", h.User.DeleteHealth)

		users.GET("/:user_id/s3/:data_type", h.User.ReadS3File)
		users.GET("/:user_id", h.User.GetFullRecord)
	}

	return r
}
