package storage

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
)

// Upload 上传 JSON 文件并发布 SNS 通知
// POST /s3/upload
func (h *StorageHandler) Upload(c *gin.Context) {
	var req request.S3UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	if err := h.storageService.UploadFile(c.Request.Context(), req.Key, req.Content); err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.MessageResponse{Message: "Uploaded " + req.Key})
}
