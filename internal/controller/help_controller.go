package controller

import (
	"errors"

	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type HelpController struct {
	HelpService *service.HelpService
	Hub         *service.HelpHub
}

func NewHelpController(helpService *service.HelpService, hub *service.HelpHub) *HelpController {
	return &HelpController{
		HelpService: helpService,
		Hub:         hub,
	}
}

// swagger:model CreateHelpRequest
type CreateHelpRequest struct {
	ToUserID uint   `json:"toUserId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// Create godoc
// @Summary Ask a linked teacher or parent for help
// @Description The request is stored and pushed to the recipient over the
// @Description help socket when they are online
// @Tags help
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateHelpRequest true "Recipient and message"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Empty message"
// @Failure 403 {object} util.Response "Recipient not linked"
// @Router /api/help-requests [post]
func (c *HelpController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateHelpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	helpRequest, err := c.HelpService.Create(claims.UserID, req.ToUserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyMessage):
			util.BadRequest(ctx, "message must not be empty")
		case errors.Is(err, util.ErrNotLinked):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": helpRequest.ID})
}

// List godoc
// @Summary Help requests addressed to the current user
// @Tags help
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.HelpRequestView} "Success"
// @Router /api/help-requests [get]
func (c *HelpController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	requests, err := c.HelpService.ListForRecipient(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

// Resolve godoc
// @Summary Mark a help request as resolved
// @Description Only the recipient may resolve; resolving twice is a no-op
// @Tags help
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Help request ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the recipient"
// @Failure 404 {object} util.Response "Request not found"
// @Router /api/help-requests/{id}/resolve [post]
func (c *HelpController) Resolve(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	requestID := util.MustParseUint(ctx.Param("id"))
	if requestID == 0 {
		util.BadRequest(ctx, "invalid request id")
		return
	}

	if err := c.HelpService.Resolve(claims.UserID, requestID); err != nil {
		switch {
		case errors.Is(err, util.ErrHelpNotFound):
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

// HandleWS godoc
// @Summary Help notification socket
// @Description Upgrades to a websocket that delivers new help requests and
// @Description resolution events for the authenticated user
// @Tags help
// @Security ApiKeyAuth
// @Router /api/help/ws [get]
func (c *HelpController) HandleWS(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeWs(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
