package controller

import (
	"errors"

	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type RosterController struct {
	RosterService *service.RosterService
	Hub           *service.HelpHub
}

func NewRosterController(rosterService *service.RosterService, hub *service.HelpHub) *RosterController {
	return &RosterController{
		RosterService: rosterService,
		Hub:           hub,
	}
}

// SearchLearners godoc
// @Summary Search learners by name or email
// @Tags roster
// @Produce  json
// @Security ApiKeyAuth
// @Param   q query string true "Search text"
// @Success 200 {object} util.Response{data=[]model.User} "Success"
// @Failure 400 {object} util.Response "Missing query"
// @Router /api/learners/search [get]
func (c *RosterController) SearchLearners(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "query parameter q is required")
		return
	}

	learners, err := c.RosterService.SearchLearners(query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sanitizeUsers(learners))
}

// swagger:model AddLearnerRequest
type AddLearnerRequest struct {
	LearnerID uint `json:"learnerId" binding:"required"`
}

// AddLearner godoc
// @Summary Link a learner to the current teacher or parent
// @Tags roster
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddLearnerRequest true "Learner to link"
// @Success 200 {object} util.Response "Success"
// @Failure 400 {object} util.Response "Not a learner account"
// @Failure 409 {object} util.Response "Already linked"
// @Router /api/my-learners [post]
func (c *RosterController) AddLearner(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddLearnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.RosterService.AddLearner(claims, req.LearnerID); err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotALearner):
			util.BadRequest(ctx, "the selected account is not a learner")
		case errors.Is(err, util.ErrAlreadyLinked):
			util.Error(ctx, 409, "this learner is already linked to you")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListLearners godoc
// @Summary Learners linked to the current teacher or parent
// @Tags roster
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User} "Success"
// @Router /api/my-learners [get]
func (c *RosterController) ListLearners(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	learners, err := c.RosterService.Learners(claims.UserID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sanitizeUsers(learners))
}

// GrownUp is a linked teacher or parent with their help-socket presence.
type GrownUp struct {
	PublicUser
	Online bool `json:"online"`
}

// ListGrownUps godoc
// @Summary Teachers and parents linked to the current learner
// @Description Used by the learner client to pick a help recipient; the
// @Description online flag reflects the recipient's help-socket presence
// @Tags roster
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]GrownUp} "Success"
// @Router /api/my-grown-ups [get]
func (c *RosterController) ListGrownUps(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	grownUps, err := c.RosterService.GrownUpsForLearner(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	out := make([]GrownUp, 0, len(grownUps))
	for _, u := range sanitizeUsers(grownUps) {
		online := false
		if c.Hub != nil {
			online = c.Hub.IsUserOnline(u.ID)
		}
		out = append(out, GrownUp{PublicUser: u, Online: online})
	}
	util.Success(ctx, out)
}
