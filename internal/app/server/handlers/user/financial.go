package user

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// CreateFinancial 新增财务信息
// POST /users/financial
func (h *UserHandler) CreateFinancial(c *gin.Context) {
	var req request.CreateFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	financial := req.ToEntity()
	if err := h.userService.CreateFinancial(c.Request.Context(), financial); err != nil {
		createFailed(c, "Financial", req.UserID, err)
		return
	}

	ginx.Created(c, response.FromFinancialEntity(financial))
}

// GetFinancial 查询财务信息
// GET /users/{user_id}/financial
func (h *UserHandler) GetFinancial(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	financial, status, err := h.userService.GetFinancial(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Financial", id)
		return
	}

	ginx.Success(c, response.FromFinancialEntity(financial))
}

// UpdateFinancial 更新财务信息
// PATCH /users/{user_id}/financial
func (h *UserHandler) UpdateFinancial(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req request.UpdateFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	financial, status, err := h.userService.UpdateFinancial(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Financial", id)
		return
	}

	ginx.Success(c, response.FromFinancialEntity(financial))
}

// DeleteFinancial 删除财务信息
// DELETE /users/{user_id}/financial
func (h *UserHandler) DeleteFinancial(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	status, err := h.userService.DeleteFinancial(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Financial", id)
		return
	}

	ginx.Success(c, response.MessageResponse{Message: fmt.Sprintf("Financial info deleted for user %s", id)})
}
