package user

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svdispatch"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svstorage"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
)

// UserHandler 用户数据 HTTP 处理器
type UserHandler struct {
	userService     *svuser.UserService
	storageService  *svstorage.StorageService
	dispatchService *svdispatch.DispatchService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(
	userService *svuser.UserService,
	storageService *svstorage.StorageService,
	dispatchService *svdispatch.DispatchService,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		storageService:  storageService,
		dispatchService: dispatchService,
	}
}

// userID 读取路径参数 user_id
func userID(c *gin.Context) (string, bool) {
	id := c.Param("user_id")
	if id == "" {
		ginx.BadRequest(c, "user_id required")
		return "", false
	}
	return id, true
}

// createFailed 新增失败：重复返回 409，其余交给 ErrorHandler
func createFailed(c *gin.Context, label, userID string, err error) {
	if errors.Is(err, errorx.ErrRecordExists) {
		ginx.Conflict(c, fmt.Sprintf("%s info already exists for user %s", label, userID))
		return
	}
	_ = c.Error(err)
}

func notFound(c *gin.Context, label, userID string) {
	ginx.NotFound(c, fmt.Sprintf("%s info not found for user %s", label, userID))
}
