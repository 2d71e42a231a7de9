package model

// TeacherLearner links a teacher account to one of their learners.
type TeacherLearner struct {
	BaseModel
	TeacherID uint `gorm:"index:idx_teacher_learner,unique" json:"teacherId"`
	LearnerID uint `gorm:"index:idx_teacher_learner,unique" json:"learnerId"`
}

func (TeacherLearner) TableName() string {
	return "teacher_learners"
}

// ParentChild links a parent account to a child's learner account.
type ParentChild struct {
	BaseModel
	ParentID  uint `gorm:"index:idx_parent_child,unique" json:"parentId"`
	LearnerID uint `gorm:"index:idx_parent_child,unique" json:"learnerId"`
}

func (ParentChild) TableName() string {
	return "parent_children"
}
