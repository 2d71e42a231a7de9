package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"
	"calm_learning_hub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Two sentences per step keeps the fallback lesson pacing close to what the
// AI rewrite produces.
const fallbackSentencesPerStep = 2

type LessonService struct {
	LessonRepo     *repository.LessonRepository
	AssignmentRepo *repository.AssignmentRepository
	RosterRepo     *repository.RosterRepository
	AI             *AIService
	Storage        *StorageService
	DB             *gorm.DB
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	assignmentRepo *repository.AssignmentRepository,
	rosterRepo *repository.RosterRepository,
	ai *AIService,
	storage *StorageService,
	db *gorm.DB,
) *LessonService {
	return &LessonService{
		LessonRepo:     lessonRepo,
		AssignmentRepo: assignmentRepo,
		RosterRepo:     rosterRepo,
		AI:             ai,
		Storage:        storage,
		DB:             db,
	}
}

// LessonPreview is the generated material before the author saves it.
type LessonPreview struct {
	FriendlyText string `json:"friendlyText"`
	ImageURL     string `json:"imageUrl"`
	UsedFallback bool   `json:"usedFallback"`
}

// Preview produces the gentle version of the pasted text. With AI enabled
// the rewrite and illustration come from the AI service; an AI failure
// never fails the preview, it falls back to the local sentence splitter.
func (s *LessonService) Preview(ctx context.Context, title string, kind model.LessonKind, original string, useAI bool) (*LessonPreview, error) {
	if original == "" {
		return &LessonPreview{}, nil
	}

	preview := &LessonPreview{}

	if useAI {
		friendly, err := s.AI.GentleRewrite(original, kind)
		if err != nil {
			logger.Log.Error("AI text generation failed, using local splitter", zap.Error(err))
			preview.FriendlyText = util.NumberSteps(util.SplitIntoSteps(original, fallbackSentencesPerStep))
			preview.UsedFallback = true
		} else {
			preview.FriendlyText = friendly
		}

		if title == "" {
			title = "Lesson"
		}
		if url, err := s.generateIllustration(ctx, title); err != nil {
			logger.Log.Error("AI image generation failed", zap.Error(err))
		} else {
			preview.ImageURL = url
		}
	} else {
		preview.FriendlyText = util.NumberSteps(util.SplitIntoSteps(original, fallbackSentencesPerStep))
		preview.UsedFallback = true
	}

	return preview, nil
}

func (s *LessonService) generateIllustration(ctx context.Context, title string) (string, error) {
	b64, err := s.AI.GenerateIllustration(title)
	if err != nil {
		return "", err
	}

	imgBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("failed to decode illustration: %w", err)
	}

	filename := fmt.Sprintf("lessons/illustrations/%s.png", model.GenerateUUID())
	return s.Storage.Upload(ctx, filename, bytes.NewReader(imgBytes), int64(len(imgBytes)), "image/png")
}

// CreateAndAssign saves the lesson and fans it out to the given learners in
// one transaction. Every learner must be linked to the owner.
func (s *LessonService) CreateAndAssign(owner *model.User, lesson *model.Lesson, learnerIDs []uint) error {
	if lesson.Title == "" || lesson.OriginalText == "" || lesson.FriendlyText == "" {
		return fmt.Errorf("title, text and generated lesson are required")
	}
	if !owner.IsGrownUp() {
		return util.ErrPermissionDenied
	}

	for _, learnerID := range learnerIDs {
		linked, err := s.RosterRepo.IsLinkedGrownUp(owner.ID, learnerID)
		if err != nil {
			return err
		}
		if !linked && owner.Role != model.Admin {
			return util.ErrNotLinked
		}
	}

	lesson.OwnerID = owner.ID
	lesson.OwnerRole = owner.Role

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
		for _, learnerID := range learnerIDs {
			assignment := &model.LessonAssignment{
				LessonID:     lesson.ID,
				LearnerID:    learnerID,
				Status:       model.AssignmentAssigned,
				ProgressStep: 0,
			}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *LessonService) ListByOwner(ownerID uint) ([]model.Lesson, error) {
	return s.LessonRepo.FindByOwner(ownerID)
}

// AttachVideo stores an optional calm video for a lesson: the file is
// probed, a poster frame extracted, and both are moved to storage.
func (s *LessonService) AttachVideo(ctx context.Context, ownerID uint, lessonID uint, localPath string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if lesson.OwnerID != ownerID {
		return nil, util.ErrPermissionDenied
	}

	info, err := util.GetVideoInfo(localPath)
	if err != nil {
		return nil, err
	}

	posterPath := localPath + ".poster.jpg"
	posterURL := ""
	if err := util.GeneratePoster(localPath, posterPath, "0.5"); err != nil {
		logger.Log.Error("poster extraction failed", zap.Error(err), zap.Uint("lessonId", lessonID))
	} else {
		defer os.Remove(posterPath)
		name := fmt.Sprintf("lessons/posters/%s.jpg", model.GenerateUUID())
		if url, err := s.Storage.UploadFile(ctx, name, posterPath, "image/jpeg"); err == nil {
			posterURL = url
		}
	}

	ext := filepath.Ext(localPath)
	videoName := fmt.Sprintf("lessons/videos/%s%s", model.GenerateUUID(), ext)
	videoURL, err := s.Storage.UploadFile(ctx, videoName, localPath, videoMIME(info.Format))
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = videoURL
	lesson.VideoPoster = posterURL
	lesson.VideoDuration = info.Duration
	lesson.UpdatedAt = time.Now()

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// videoMIME maps ffprobe's first container token to a real content type.
// The ISO family probes as "mov,mp4,m4a,..." so its first token is "mov".
func videoMIME(format string) string {
	switch format {
	case "mov":
		return "video/quicktime"
	case "matroska", "webm":
		return "video/webm"
	case "avi":
		return "video/x-msvideo"
	case "mpegts":
		return "video/mp2t"
	case "", "unknown":
		return "video/mp4"
	default:
		return "video/" + format
	}
}
