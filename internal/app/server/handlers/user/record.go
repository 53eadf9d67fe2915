package user

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/entity/etuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/errorx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// GetFullRecord godoc
// @Summary      查询用户全部信息
// @Description  并发查询个人、财务、健康信息，缺失的部分为 null，三者都不存在时返回 404
// @Tags         users
// @Produce      json
// @Param        user_id path string true "用户 ID"
// @Success      200 {object} ginx.Response{data=response.UserFullRecord} "查询成功"
// @Failure      404 {object} ginx.Response "用户不存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /users/{user_id} [get]
func (h *UserHandler) GetFullRecord(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	record, status, err := h.userService.GetFullRecord(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		ginx.NotFound(c, "No records found for user "+id)
		return
	}

	ginx.Success(c, response.FromFullRecord(record))
}

// ReadS3File 读取用户在 S3 中的数据文件
// GET /users/{user_id}/s3/{data_type}，data_type 为 personal / financial / health / all
func (h *UserHandler) ReadS3File(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	raw := c.Param("data_type")
	dataType, ok := etuser.ParseDataType(raw)
	if !ok {
		ginx.Unprocessable(c, fmt.Sprintf("Invalid data_type '%s'. Must be one of: personal, financial, health, all", raw))
		return
	}

	content, status, err := h.storageService.ReadUserFile(c.Request.Context(), id, dataType)
	if err != nil {
		if errors.Is(err, errorx.ErrInvalidDataType) {
			ginx.Unprocessable(c, err.Error())
			return
		}
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		ginx.NotFound(c, s3NotFoundMessage(dataType, id))
		return
	}

	ginx.Success(c, content)
}

func s3NotFoundMessage(dataType etuser.DataType, userID string) string {
	switch dataType {
	case etuser.DataTypePersonal:
		return "Personal info not found in S3 for user " + userID
	case etuser.DataTypeFinancial:
		return "Financial info not found in S3 for user " + userID
	case etuser.DataTypeHealth:
		return "Health info not found in S3 for user " + userID
	default:
		return "User info incomplete in S3 for user " + userID
	}
}
