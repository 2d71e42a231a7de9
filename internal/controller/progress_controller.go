package controller

import (
	"fmt"
	"net/http"
	"time"

	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	AssignmentService *service.AssignmentService
	ReportService     *service.ReportService
}

func NewProgressController(assignmentService *service.AssignmentService, reportService *service.ReportService) *ProgressController {
	return &ProgressController{
		AssignmentService: assignmentService,
		ReportService:     reportService,
	}
}

// Overview godoc
// @Summary Progress of every linked learner
// @Description One row per assignment across the caller's linked learners
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.ProgressRow} "Success"
// @Router /api/progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.AssignmentService.ProgressOverview(claims.UserID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Export godoc
// @Summary Download the progress overview as a spreadsheet
// @Tags progress
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary "XLSX file"
// @Router /api/progress/export [get]
func (c *ProgressController) Export(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	buf, err := c.ReportService.ProgressWorkbook(claims.UserID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("progress_%s.xlsx", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
