package repository

import (
	"calm_learning_hub/internal/model"

	"gorm.io/gorm"
)

type HelpRepository struct {
	DB *gorm.DB
}

func NewHelpRepository(db *gorm.DB) *HelpRepository {
	return &HelpRepository{DB: db}
}

func (r *HelpRepository) Create(req *model.HelpRequest) error {
	return r.DB.Create(req).Error
}

func (r *HelpRepository) FindByID(id uint) (*model.HelpRequest, error) {
	var req model.HelpRequest
	err := r.DB.First(&req, id).Error
	return &req, err
}

// FindByRecipient lists help requests addressed to a grown-up with the
// learner preloaded, newest-first.
func (r *HelpRepository) FindByRecipient(userID uint) ([]model.HelpRequest, error) {
	var requests []model.HelpRequest
	err := r.DB.
		Preload("Learner").
		Where("to_user_id = ?", userID).
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

func (r *HelpRepository) MarkResolved(id uint) error {
	return r.DB.Model(&model.HelpRequest{}).
		Where("id = ?", id).
		Update("resolved", true).
		Error
}
