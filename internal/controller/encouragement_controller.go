package controller

import (
	"errors"

	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type EncouragementController struct {
	EncouragementService *service.EncouragementService
}

func NewEncouragementController(encouragementService *service.EncouragementService) *EncouragementController {
	return &EncouragementController{EncouragementService: encouragementService}
}

// GetCurrent godoc
// @Summary Today's encouragement phrase
// @Description Rotates among the enabled calm phrases every 12 hours
// @Tags encouragement
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/encouragement [get]
func (c *EncouragementController) GetCurrent(ctx *gin.Context) {
	phrase, err := c.EncouragementService.GetCurrent()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"phrase": phrase})
}

// ListAll godoc
// @Summary All encouragement phrases
// @Tags encouragement
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Encouragement} "Success"
// @Router /api/admin/encouragements [get]
func (c *EncouragementController) ListAll(ctx *gin.Context) {
	phrases, err := c.EncouragementService.GetAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, phrases)
}

// swagger:model CreatePhraseRequest
type CreatePhraseRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create godoc
// @Summary Add an encouragement phrase
// @Tags encouragement
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreatePhraseRequest true "Phrase"
// @Success 201 {object} util.Response{data=model.Encouragement} "Created"
// @Router /api/admin/encouragements [post]
func (c *EncouragementController) Create(ctx *gin.Context) {
	var req CreatePhraseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	phrase, err := c.EncouragementService.Create(req.Content)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, phrase)
}

// swagger:model UpdatePhraseRequest
type UpdatePhraseRequest struct {
	Content string `json:"content" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// Update godoc
// @Summary Edit or enable/disable an encouragement phrase
// @Tags encouragement
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Phrase ID"
// @Param   body body UpdatePhraseRequest true "Phrase fields"
// @Success 200 {object} util.Response{data=model.Encouragement} "Success"
// @Failure 400 {object} util.Response "Last enabled phrase"
// @Failure 404 {object} util.Response "Phrase not found"
// @Router /api/admin/encouragements/{id} [put]
func (c *EncouragementController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid phrase id")
		return
	}

	var req UpdatePhraseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	phrase, err := c.EncouragementService.Update(id, req.Content, *req.Enabled)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLastEnabledPhrase):
			util.BadRequest(ctx, "at least one phrase must stay enabled")
		case errors.Is(err, util.ErrPhraseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, phrase)
}

// Delete godoc
// @Summary Remove an encouragement phrase
// @Tags encouragement
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Phrase ID"
// @Success 200 {object} util.Response "Success"
// @Failure 400 {object} util.Response "Last enabled phrase"
// @Failure 404 {object} util.Response "Phrase not found"
// @Router /api/admin/encouragements/{id} [delete]
func (c *EncouragementController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid phrase id")
		return
	}

	if err := c.EncouragementService.Delete(id); err != nil {
		switch {
		case errors.Is(err, util.ErrLastEnabledPhrase):
			util.BadRequest(ctx, "at least one phrase must stay enabled")
		case errors.Is(err, util.ErrPhraseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
