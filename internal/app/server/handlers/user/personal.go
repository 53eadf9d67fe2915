package user

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/request"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// CreatePersonal godoc
// @Summary      新增个人信息
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body request.CreatePersonalRequest true "个人信息"
// @Success      201 {object} ginx.Response{data=response.PersonalRecord} "创建成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      409 {object} ginx.Response "记录已存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /users/personal [post]
func (h *UserHandler) CreatePersonal(c *gin.Context) {
	var req request.CreatePersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	personal, err := req.ToEntity()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.CreatePersonal(c.Request.Context(), personal); err != nil {
		createFailed(c, "Personal", req.UserID, err)
		return
	}

	ginx.Created(c, response.FromPersonalEntity(personal))
}

// GetPersonal 查询个人信息
// GET /users/{user_id}/personal
func (h *UserHandler) GetPersonal(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	personal, status, err := h.userService.GetPersonal(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Personal", id)
		return
	}

	ginx.Success(c, response.FromPersonalEntity(personal))
}

// UpdatePersonal 更新个人信息，只修改请求中提供的字段
// PATCH /users/{user_id}/personal
func (h *UserHandler) UpdatePersonal(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req request.UpdatePersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		ginx.BadRequest(c, err.Error())
		return
	}

	personal, status, err := h.userService.UpdatePersonal(c.Request.Context(), id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Personal", id)
		return
	}

	ginx.Success(c, response.FromPersonalEntity(personal))
}

// DeletePersonal 删除个人信息
// DELETE /users/{user_id}/personal
func (h *UserHandler) DeletePersonal(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	status, err := h.userService.DeletePersonal(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if status == outcome.NotFound {
		notFound(c, "Personal", id)
		return
	}

	ginx.Success(c, response.MessageResponse{Message: fmt.Sprintf("Personal info deleted for user %s", id)})
}
