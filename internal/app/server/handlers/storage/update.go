package storage

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// Update 合并更新 JSON 文件并发布 SNS 通知
// PUT /s3/{key}
func (h *StorageHandler) Update(c *gin.Context) {
	key, ok := objectKey(c)
	if !ok {
		return
	}

	var req request.S3UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	merged, status, err := h.storageService.UpdateFile(c.Request.Context(), key, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		ginx.NotFound(c, "File not found: "+key)
		return
	}

	ginx.Success(c, response.S3FileResponse{Key: key, Content: merged})
}
