package repository

import (
	"time"

	"calm_learning_hub/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.LessonAssignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.LessonAssignment, error) {
	var a model.LessonAssignment
	err := r.DB.Preload("Lesson").First(&a, id).Error
	return &a, err
}

// FindByLearner lists a learner's assignments newest-first with the lesson
// and its owner preloaded.
func (r *AssignmentRepository) FindByLearner(learnerID uint) ([]model.LessonAssignment, error) {
	var assignments []model.LessonAssignment
	err := r.DB.
		Preload("Lesson").
		Preload("Lesson.Owner").
		Where("learner_id = ?", learnerID).
		Order("id DESC").
		Find(&assignments).Error
	return assignments, err
}

// ProgressRow is one line of a grown-up's progress overview.
type ProgressRow struct {
	AssignmentID uint                   `json:"assignmentId"`
	LearnerID    uint                   `json:"learnerId"`
	LearnerName  string                 `json:"learnerName"`
	LessonID     uint                   `json:"lessonId"`
	LessonTitle  string                 `json:"lessonTitle"`
	Status       model.AssignmentStatus `json:"status"`
	ProgressStep int                    `json:"progressStep"`
	CompletedAt  *time.Time             `json:"completedAt"`
}

// ProgressForLearners joins assignments with lesson titles and learner
// names for a set of learners.
func (r *AssignmentRepository) ProgressForLearners(learnerIDs []uint) ([]ProgressRow, error) {
	if len(learnerIDs) == 0 {
		return nil, nil
	}

	var rows []ProgressRow
	err := r.DB.Model(&model.LessonAssignment{}).
		Select(`lesson_assignments.id AS assignment_id,
			lesson_assignments.learner_id,
			users.name AS learner_name,
			lessons.id AS lesson_id,
			lessons.title AS lesson_title,
			lesson_assignments.status,
			lesson_assignments.progress_step,
			lesson_assignments.completed_at`).
		Joins("JOIN lessons ON lessons.id = lesson_assignments.lesson_id").
		Joins("JOIN users ON users.id = lesson_assignments.learner_id").
		Where("lesson_assignments.learner_id IN ?", learnerIDs).
		Order("lesson_assignments.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) UpdateProgress(id uint, step int) error {
	return r.DB.Model(&model.LessonAssignment{}).
		Where("id = ?", id).
		Update("progress_step", step).
		Error
}

func (r *AssignmentRepository) MarkCompleted(id uint, finalStep int, completedAt time.Time) error {
	return r.DB.Model(&model.LessonAssignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        model.AssignmentCompleted,
			"progress_step": finalStep,
			"completed_at":  completedAt,
		}).Error
}
