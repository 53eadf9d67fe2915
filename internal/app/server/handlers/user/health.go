package user

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// CreateHealth 新增健康信息
// POST /users/health
func (h *UserHandler) CreateHealth(c *gin.Context) {
	var req request.CreateHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	health := req.ToEntity()
	if err := h.userService.CreateHealth(c.Request.Context(), health); err != nil {
		createFailed(c, "Health", req.UserID, err)
		return
	}

	ginx.Created(c, response.FromHealthEntity(health))
}

// GetHealth 查询健康信息
// GET /users/{user_id}/health
func (h *UserHandler) GetHealth(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	health, status, err := h.userService.GetHealth(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Health", id)
		return
	}

	ginx.Success(c, response.FromHealthEntity(health))
}

// UpdateHealth 更新健康信息
// PATCH /users/{user_id}/health
func (h *UserHandler) UpdateHealth(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req request.UpdateHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	health, status, err := h.userService.UpdateHealth(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Health", id)
		return
	}

	ginx.Success(c, response.FromHealthEntity(health))
}

// DeleteHealth 删除健康信息
// DELETE /users/{user_id}/health
func (h *UserHandler) DeleteHealth(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	status, err := h.userService.DeleteHealth(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Health", id)
		return
	}

	ginx.Success(c, response.MessageResponse{Message: fmt.Sprintf("Health info deleted for user %s", id)})
}
