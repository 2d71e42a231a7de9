package model

import "time"

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentCompleted AssignmentStatus = "completed"
)

// LessonAssignment tracks one learner's progress through one lesson.
// ProgressStep is the index of the step the learner is currently reading
// and always stays within the lesson's derived step range.
// swagger:model LessonAssignment
type LessonAssignment struct {
	BaseModel
	LessonID     uint             `gorm:"index;not null" json:"lessonId"`
	LearnerID    uint             `gorm:"index;not null" json:"learnerId"`
	Status       AssignmentStatus `gorm:"size:20;default:'assigned'" json:"status"`
	ProgressStep int              `gorm:"default:0" json:"progressStep"`
	CompletedAt  *time.Time       `json:"completedAt"`

	Lesson  Lesson `gorm:"foreignKey:LessonID" json:"-"`
	Learner User   `gorm:"foreignKey:LearnerID" json:"-"`
}

func (LessonAssignment) TableName() string {
	return "lesson_assignments"
}
