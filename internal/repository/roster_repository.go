package repository

import (
	"calm_learning_hub/internal/model"

	"gorm.io/gorm"
)

// RosterRepository manages the teacher↔learner and parent↔child links.
type RosterRepository struct {
	DB *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{DB: db}
}

func (r *RosterRepository) LinkTeacherLearner(teacherID, learnerID uint) error {
	return r.DB.Create(&model.TeacherLearner{TeacherID: teacherID, LearnerID: learnerID}).Error
}

func (r *RosterRepository) IsTeacherLinked(teacherID, learnerID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TeacherLearner{}).
		Where("teacher_id = ? AND learner_id = ?", teacherID, learnerID).
		Count(&count).Error
	return count > 0, err
}

func (r *RosterRepository) TeacherLearners(teacherID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.
		Joins("JOIN teacher_learners tl ON tl.learner_id = users.id").
		Where("tl.teacher_id = ? AND tl.deleted_at IS NULL", teacherID).
		Order("users.name").
		Find(&users).Error
	return users, err
}

func (r *RosterRepository) LinkParentChild(parentID, learnerID uint) error {
	return r.DB.Create(&model.ParentChild{ParentID: parentID, LearnerID: learnerID}).Error
}

func (r *RosterRepository) IsParentLinked(parentID, learnerID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ParentChild{}).
		Where("parent_id = ? AND learner_id = ?", parentID, learnerID).
		Count(&count).Error
	return count > 0, err
}

func (r *RosterRepository) ParentChildren(parentID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.
		Joins("JOIN parent_children pc ON pc.learner_id = users.id").
		Where("pc.parent_id = ? AND pc.deleted_at IS NULL", parentID).
		Order("users.name").
		Find(&users).Error
	return users, err
}

// LinkedLearnerIDs returns the learners a grown-up is linked to, from
// whichever side the role uses.
func (r *RosterRepository) LinkedLearnerIDs(userID uint, role model.UserRole) ([]uint, error) {
	var ids []uint
	var err error

	switch role {
	case model.Parent:
		err = r.DB.Model(&model.ParentChild{}).
			Where("parent_id = ?", userID).
			Pluck("learner_id", &ids).Error
	default:
		err = r.DB.Model(&model.TeacherLearner{}).
			Where("teacher_id = ?", userID).
			Pluck("learner_id", &ids).Error
	}
	return ids, err
}

// LinkedGrownUps returns the distinct teachers and parents linked to a
// learner.
func (r *RosterRepository) LinkedGrownUps(learnerID uint) ([]model.User, error) {
	var teacherIDs []uint
	if err := r.DB.Model(&model.TeacherLearner{}).
		Where("learner_id = ?", learnerID).
		Pluck("teacher_id", &teacherIDs).Error; err != nil {
		return nil, err
	}

	var parentIDs []uint
	if err := r.DB.Model(&model.ParentChild{}).
		Where("learner_id = ?", learnerID).
		Pluck("parent_id", &parentIDs).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(teacherIDs)+len(parentIDs))
	var ids []uint
	for _, id := range append(teacherIDs, parentIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	var users []model.User
	err := r.DB.Where("id IN ?", ids).Order("name").Find(&users).Error
	return users, err
}

// IsLinkedGrownUp reports whether the grown-up is linked to the learner on
// either side.
func (r *RosterRepository) IsLinkedGrownUp(grownUpID, learnerID uint) (bool, error) {
	linked, err := r.IsTeacherLinked(grownUpID, learnerID)
	if err != nil || linked {
		return linked, err
	}
	return r.IsParentLinked(grownUpID, learnerID)
}
