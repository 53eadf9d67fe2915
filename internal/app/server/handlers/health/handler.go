package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/apimodel/response"
)

// Check 健康检查
// GET /health
func Check(c *gin.Context) {
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
