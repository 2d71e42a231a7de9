package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check godoc
// @Summary Service health
// @Description Reports service and database status
// @Tags health
// @Produce  json
// @Success 200 {object} object "Healthy"
// @Failure 503 {object} object "Database unreachable"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	dbStatus := "up"

	sqlDB, err := c.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = http.StatusServiceUnavailable
		overall = "degraded"
		dbStatus = "down"
	}

	ctx.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"time":     time.Now().Format(time.RFC3339),
	})
}
