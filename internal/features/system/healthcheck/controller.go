package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/healthcheck", c.GetHealthStatus)
}

// GetHealthStatus
// @Summary Get service health
// @Description Returns service status and host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatusResponse
// @Failure 503 {object} HealthStatusResponse
// @Router /system/healthcheck [get]
func (c *HealthcheckController) GetHealthStatus(ctx *gin.Context) {
	status := c.healthcheckService.GetStatus()

	httpStatus := http.StatusOK
	if status.Status == HealthStatusDegraded {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, status)
}
