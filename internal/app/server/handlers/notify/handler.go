package notify

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svnotify"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
)

// NotifyHandler SNS 通知 HTTP 处理器
type NotifyHandler struct {
	notifyService *svnotify.NotifyService
}

// NewNotifyHandler 创建通知处理器实例
func NewNotifyHandler(notifyService *svnotify.NotifyService) *NotifyHandler {
	return &NotifyHandler{
		notifyService: notifyService,
	}
}

// Publish godoc
// @Summary      发布自定义通知
// @Tags         sns
// @Accept       json
// @Produce      json
// @Param        request body request.SNSPublishRequest true "通知内容"
// @Success      200 {object} ginx.Response{data=response.SNSPublishResponse} "发布成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /sns/publish [post]
func (h *NotifyHandler) Publish(c *gin.Context) {
	var req request.SNSPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	var subject string
	if req.Subject != nil {
		subject = *req.Subject
	}

	messageID, err := h.notifyService.Publish(c.Request.Context(), req.Message, subject)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.SNSPublishResponse{MessageID: messageID})
}
