package service

import (
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	RosterRepo     *repository.RosterRepository
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, rosterRepo *repository.RosterRepository) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		RosterRepo:     rosterRepo,
	}
}

// AssignedLesson is one entry of a learner's reading list.
type AssignedLesson struct {
	AssignmentID uint                   `json:"assignmentId"`
	LessonID     uint                   `json:"lessonId"`
	Title        string                 `json:"title"`
	OwnerName    string                 `json:"ownerName"`
	OwnerRole    model.UserRole         `json:"ownerRole"`
	FriendlyText string                 `json:"friendlyText"`
	ImageURL     string                 `json:"imageUrl"`
	VideoURL     string                 `json:"videoUrl"`
	VideoPoster  string                 `json:"videoPoster"`
	Status       model.AssignmentStatus `json:"status"`
	Steps        []string               `json:"steps"`
	CurrentStep  int                    `json:"currentStep"`
	TotalSteps   int                    `json:"totalSteps"`
	CompletedAt  *time.Time             `json:"completedAt"`
}

// ListForLearner returns the learner's assignments newest-first, with the
// steps derived from the friendly text and the current step clamped.
func (s *AssignmentService) ListForLearner(learnerID uint) ([]AssignedLesson, error) {
	assignments, err := s.AssignmentRepo.FindByLearner(learnerID)
	if err != nil {
		return nil, err
	}

	lessons := make([]AssignedLesson, 0, len(assignments))
	for _, a := range assignments {
		steps := util.LessonSteps(a.Lesson.FriendlyText)
		lessons = append(lessons, AssignedLesson{
			AssignmentID: a.ID,
			LessonID:     a.LessonID,
			Title:        a.Lesson.Title,
			OwnerName:    a.Lesson.Owner.Name,
			OwnerRole:    a.Lesson.OwnerRole,
			FriendlyText: a.Lesson.FriendlyText,
			ImageURL:     a.Lesson.ImageURL,
			VideoURL:     a.Lesson.VideoURL,
			VideoPoster:  a.Lesson.VideoPoster,
			Status:       a.Status,
			Steps:        steps,
			CurrentStep:  util.ClampStep(a.ProgressStep, len(steps)),
			TotalSteps:   len(steps),
			CompletedAt:  a.CompletedAt,
		})
	}
	return lessons, nil
}

// Step moves the learner one step forward or back. At either edge the step
// stays put.
func (s *AssignmentService) Step(learnerID, assignmentID uint, forward bool) (int, error) {
	a, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return 0, util.ErrAssignmentNotFound
	}
	if a.LearnerID != learnerID {
		return 0, util.ErrPermissionDenied
	}

	total := len(util.LessonSteps(a.Lesson.FriendlyText))
	current := util.ClampStep(a.ProgressStep, total)

	next := current
	if forward && current < total-1 {
		next = current + 1
	}
	if !forward && current > 0 {
		next = current - 1
	}

	if next != a.ProgressStep {
		if err := s.AssignmentRepo.UpdateProgress(a.ID, next); err != nil {
			return 0, err
		}
	}
	return next, nil
}

// Complete marks the assignment finished, parking the step on the last one.
// Completing twice is a no-op.
func (s *AssignmentService) Complete(learnerID, assignmentID uint) error {
	a, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return util.ErrAssignmentNotFound
	}
	if a.LearnerID != learnerID {
		return util.ErrPermissionDenied
	}
	if a.Status == model.AssignmentCompleted {
		return nil
	}

	total := len(util.LessonSteps(a.Lesson.FriendlyText))
	finalStep := 0
	if total > 0 {
		finalStep = total - 1
	}

	return s.AssignmentRepo.MarkCompleted(a.ID, finalStep, time.Now())
}

// ProgressOverview lists the progress of every learner linked to the
// grown-up.
func (s *AssignmentService) ProgressOverview(userID uint, role model.UserRole) ([]repository.ProgressRow, error) {
	learnerIDs, err := s.RosterRepo.LinkedLearnerIDs(userID, role)
	if err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ProgressForLearners(learnerIDs)
}
