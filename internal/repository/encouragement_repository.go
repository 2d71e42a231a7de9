package repository

import (
	"time"

	"calm_learning_hub/internal/model"

	"gorm.io/gorm"
)

type EncouragementRepository struct {
	DB *gorm.DB
}

func NewEncouragementRepository(db *gorm.DB) *EncouragementRepository {
	return &EncouragementRepository{DB: db}
}

func (r *EncouragementRepository) GetAll() ([]*model.Encouragement, error) {
	var phrases []*model.Encouragement
	err := r.DB.Find(&phrases).Error
	return phrases, err
}

func (r *EncouragementRepository) GetEnabled() ([]*model.Encouragement, error) {
	var phrases []*model.Encouragement
	err := r.DB.Where("is_enabled = ?", true).Find(&phrases).Error
	return phrases, err
}

func (r *EncouragementRepository) FindByID(id uint) (*model.Encouragement, error) {
	var phrase model.Encouragement
	err := r.DB.First(&phrase, id).Error
	return &phrase, err
}

func (r *EncouragementRepository) CountEnabled() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Encouragement{}).Where("is_enabled = ?", true).Count(&count).Error
	return count, err
}

func (r *EncouragementRepository) GetCurrent() (*model.Encouragement, error) {
	var phrase model.Encouragement
	err := r.DB.Where("is_currently_used = ?", true).First(&phrase).Error
	return &phrase, err
}

func (r *EncouragementRepository) Create(phrase *model.Encouragement) error {
	return r.DB.Create(phrase).Error
}

func (r *EncouragementRepository) Update(phrase *model.Encouragement) error {
	return r.DB.Save(phrase).Error
}

func (r *EncouragementRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Encouragement{}, id).Error
}

// SetCurrent flips the currently-used flag to the given phrase.
func (r *EncouragementRepository) SetCurrent(id uint) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(&model.Encouragement{}).Where("is_currently_used = ?", true).Update("is_currently_used", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&model.Encouragement{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_currently_used": true,
		"last_used_at":      time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
