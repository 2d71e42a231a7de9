package service

import (
	"math/rand"
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"
)

type EncouragementService struct {
	EncouragementRepo *repository.EncouragementRepository
}

func NewEncouragementService(repo *repository.EncouragementRepository) *EncouragementService {
	return &EncouragementService{EncouragementRepo: repo}
}

func (s *EncouragementService) GetAll() ([]*model.Encouragement, error) {
	return s.EncouragementRepo.GetAll()
}

func (s *EncouragementService) Create(content string) (*model.Encouragement, error) {
	phrase := &model.Encouragement{
		Content:   content,
		IsEnabled: true,
	}
	if err := s.EncouragementRepo.Create(phrase); err != nil {
		return nil, err
	}
	return phrase, nil
}

func (s *EncouragementService) Update(id uint, content string, enabled bool) (*model.Encouragement, error) {
	phrase, err := s.EncouragementRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrPhraseNotFound
	}

	// The learner space always has a phrase to show; the pool never loses
	// its last enabled entry.
	if phrase.IsEnabled && !enabled {
		count, err := s.EncouragementRepo.CountEnabled()
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, util.ErrLastEnabledPhrase
		}
	}

	phrase.Content = content
	phrase.IsEnabled = enabled
	if err := s.EncouragementRepo.Update(phrase); err != nil {
		return nil, err
	}
	return phrase, nil
}

func (s *EncouragementService) Delete(id uint) error {
	phrase, err := s.EncouragementRepo.FindByID(id)
	if err != nil {
		return util.ErrPhraseNotFound
	}

	if phrase.IsEnabled {
		count, err := s.EncouragementRepo.CountEnabled()
		if err != nil {
			return err
		}
		if count <= 1 {
			return util.ErrLastEnabledPhrase
		}
	}

	return s.EncouragementRepo.Delete(id)
}

// GetCurrent returns the phrase shown in the learner space, rotating to a
// different enabled phrase every 12 hours.
func (s *EncouragementService) GetCurrent() (string, error) {
	current, err := s.EncouragementRepo.GetCurrent()
	if err != nil {
		enabled, err := s.EncouragementRepo.GetEnabled()
		if err != nil || len(enabled) == 0 {
			return "", err
		}
		s.EncouragementRepo.SetCurrent(enabled[0].ID)
		return enabled[0].Content, nil
	}

	now := time.Now()
	elapsed := now.Sub(current.LastUsedAt)
	enabled, err := s.EncouragementRepo.GetEnabled()

	// With a single enabled phrase there is nothing to rotate to.
	if err == nil && len(enabled) > 1 && elapsed.Hours() >= 12 {
		var candidates []*model.Encouragement
		for _, e := range enabled {
			if e.ID != current.ID {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) > 0 {
			next := candidates[rand.Intn(len(candidates))]
			s.EncouragementRepo.SetCurrent(next.ID)
			return next.Content, nil
		}
	}

	return current.Content, nil
}
