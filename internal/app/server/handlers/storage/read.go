package storage

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// Read godoc
// @Summary      读取 JSON 文件
// @Tags         s3
// @Produce      json
// @Param        key path string true "对象 Key，可包含 /"
// @Success      200 {object} ginx.Response{data=response.S3FileResponse} "查询成功"
// @Failure      404 {object} ginx.Response "文件不存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /s3/{key} [get]
func (h *StorageHandler) Read(c *gin.Context) {
	key, ok := objectKey(c)
	if !ok {
		return
	}

	content, status, err := h.storageService.ReadFile(c.Request.Context(), key)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		ginx.NotFound(c, "File not found: "+key)
		return
	}

	ginx.Success(c, response.S3FileResponse{Key: key, Content: content})
}

// objectKey 从通配路由 /*key 中取出对象 Key
func objectKey(c *gin.Context) (string, bool) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		ginx.BadRequest(c, "key required")
		return "", false
	}
	return key, true
}
