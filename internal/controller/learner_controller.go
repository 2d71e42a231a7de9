package controller

import (
	"errors"

	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

// LearnerController serves the learner side of the reading flow.
type LearnerController struct {
	AssignmentService *service.AssignmentService
}

func NewLearnerController(assignmentService *service.AssignmentService) *LearnerController {
	return &LearnerController{AssignmentService: assignmentService}
}

// ListAssigned godoc
// @Summary The learner's reading list
// @Description Assignments newest-first, each with its derived steps and
// @Description the learner's clamped current step
// @Tags learner
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AssignedLesson} "Success"
// @Router /api/my-lessons [get]
func (c *LearnerController) ListAssigned(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessons, err := c.AssignmentService.ListForLearner(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// swagger:model StepRequest
type StepRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next back"`
}

// Step godoc
// @Summary Move one step forward or back in an assignment
// @Description Steps never move past the first or last step
// @Tags learner
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body StepRequest true "Direction"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 403 {object} util.Response "Not the learner's assignment"
// @Failure 404 {object} util.Response "Assignment not found"
// @Router /api/my-lessons/{id}/step [post]
func (c *LearnerController) Step(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID := util.MustParseUint(ctx.Param("id"))
	if assignmentID == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	var req StepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	step, err := c.AssignmentService.Step(claims.UserID, assignmentID, req.Direction == "next")
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"currentStep": step})
}

// Complete godoc
// @Summary Mark an assignment as completed
// @Description Idempotent, completing twice keeps the first completion time
// @Tags learner
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the learner's assignment"
// @Failure 404 {object} util.Response "Assignment not found"
// @Router /api/my-lessons/{id}/complete [post]
func (c *LearnerController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID := util.MustParseUint(ctx.Param("id"))
	if assignmentID == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	if err := c.AssignmentService.Complete(claims.UserID, assignmentID); err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
