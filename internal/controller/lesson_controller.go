package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/service"
	"calm_learning_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	UserService   *service.UserService
}

func NewLessonController(lessonService *service.LessonService, userService *service.UserService) *LessonController {
	return &LessonController{
		LessonService: lessonService,
		UserService:   userService,
	}
}

// swagger:model PreviewLessonRequest
type PreviewLessonRequest struct {
	Title        string `json:"title"`
	Kind         string `json:"kind" binding:"required,oneof=chapter story"`
	OriginalText string `json:"originalText" binding:"required"`
	UseAI        bool   `json:"useAi"`
}

// Preview godoc
// @Summary Generate a gentle preview of pasted material
// @Description Rewrites the text into short numbered steps and, when AI is
// @Description enabled, generates a calm illustration. An AI failure falls
// @Description back to a local splitter instead of failing the request.
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PreviewLessonRequest true "Original material"
// @Success 200 {object} util.Response{data=service.LessonPreview} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Router /api/lessons/preview [post]
func (c *LessonController) Preview(ctx *gin.Context) {
	var req PreviewLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	preview, err := c.LessonService.Preview(ctx.Request.Context(), req.Title, model.LessonKind(req.Kind), req.OriginalText, req.UseAI)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, preview)
}

// swagger:model CreateLessonRequest
type CreateLessonRequest struct {
	Title        string `json:"title" binding:"required"`
	Kind         string `json:"kind" binding:"required,oneof=chapter story"`
	OriginalText string `json:"originalText" binding:"required"`
	FriendlyText string `json:"friendlyText" binding:"required"`
	ImageURL     string `json:"imageUrl"`
	LearnerIDs   []uint `json:"learnerIds" binding:"required,min=1"`
}

// Create godoc
// @Summary Save a lesson and assign it to learners
// @Description Stores the previewed lesson and creates one assignment per
// @Description learner in a single transaction
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateLessonRequest true "Lesson and target learners"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 403 {object} util.Response "Learner not linked"
// @Router /api/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	owner, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	lesson := &model.Lesson{
		Title:        req.Title,
		Kind:         model.LessonKind(req.Kind),
		OriginalText: req.OriginalText,
		FriendlyText: req.FriendlyText,
		ImageURL:     req.ImageURL,
	}

	if err := c.LessonService.CreateAndAssign(owner, lesson, req.LearnerIDs); err != nil {
		if errors.Is(err, util.ErrNotLinked) {
			util.Forbidden(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, gin.H{"id": lesson.ID})
}

// List godoc
// @Summary Lessons created by the current user
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Lesson} "Success"
// @Router /api/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessons, err := c.LessonService.ListByOwner(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

var allowedVideoExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".m4v":  true,
}

// UploadVideo godoc
// @Summary Attach a calm video to a lesson
// @Description Probes the upload, extracts a poster frame and stores both
// @Tags lessons
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Param   video formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Lesson} "Success"
// @Failure 400 {object} util.Response "Invalid file"
// @Failure 403 {object} util.Response "Not the lesson owner"
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("id"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		util.BadRequest(ctx, "unsupported video type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	// Sniffing cannot classify every container; octet-stream is let through
	// and the ffprobe pass rejects anything that is not a real video.
	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeHLS, util.MimeOctetStream})
	src.Close()
	if err != nil || (mimeType != util.MimeOctetStream && !util.IsVideo(mimeType)) {
		util.BadRequest(ctx, "file content is not a video")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("lesson_%d_%d%s", lessonID, time.Now().UnixNano(), ext))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	lesson, err := c.LessonService.AttachVideo(ctx.Request.Context(), claims.UserID, lessonID, tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}
