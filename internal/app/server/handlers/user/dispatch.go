package user

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
)

// SendToQueue godoc
// @Summary      发送用户数据到队列
// @Description  data_type 为 personal / financial / health / all；FIFO 队列才会使用 message_group_id 和 message_deduplication_id
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body request.SQSSendRequest true "发送参数"
// @Success      200 {object} ginx.Response{data=response.SQSSendResponse} "发送成功"
// @Failure      404 {object} ginx.Response "用户数据不存在"
// @Failure      422 {object} ginx.Response "data_type 非法"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /users/sqs/send [post]
func (h *UserHandler) SendToQueue(c *gin.Context) {
	var req request.SQSSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	var groupID, dedupID string
	if req.MessageGroupID != nil {
		groupID = *req.MessageGroupID
	}
	if req.MessageDeduplicationID != nil {
		dedupID = *req.MessageDeduplicationID
	}

	messageID, err := h.dispatchService.SendUserData(c.Request.Context(), req.UserID, req.DataType, groupID, dedupID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.SQSSendResponse{
		MessageID: messageID,
		UserID:    req.UserID,
		DataType:  req.DataType,
	})
}
