package service

import (
	"errors"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"gorm.io/gorm"
)

type RosterService struct {
	RosterRepo *repository.RosterRepository
	UserRepo   *repository.UserRepository
}

func NewRosterService(rosterRepo *repository.RosterRepository, userRepo *repository.UserRepository) *RosterService {
	return &RosterService{
		RosterRepo: rosterRepo,
		UserRepo:   userRepo,
	}
}

func (s *RosterService) SearchLearners(query string) ([]model.User, error) {
	if query == "" {
		return nil, nil
	}
	return s.UserRepo.SearchLearners(query)
}

// AddLearner links a learner to a teacher or parent account, skipping
// duplicates and refusing non-learner targets.
func (s *RosterService) AddLearner(grownUp *util.Claims, learnerID uint) error {
	learner, err := s.UserRepo.FindByID(learnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if learner.Role != model.Learner {
		return util.ErrNotALearner
	}

	switch grownUp.Role {
	case model.Parent:
		linked, err := s.RosterRepo.IsParentLinked(grownUp.UserID, learnerID)
		if err != nil {
			return err
		}
		if linked {
			return util.ErrAlreadyLinked
		}
		return s.RosterRepo.LinkParentChild(grownUp.UserID, learnerID)
	default:
		linked, err := s.RosterRepo.IsTeacherLinked(grownUp.UserID, learnerID)
		if err != nil {
			return err
		}
		if linked {
			return util.ErrAlreadyLinked
		}
		return s.RosterRepo.LinkTeacherLearner(grownUp.UserID, learnerID)
	}
}

func (s *RosterService) Learners(userID uint, role model.UserRole) ([]model.User, error) {
	if role == model.Parent {
		return s.RosterRepo.ParentChildren(userID)
	}
	return s.RosterRepo.TeacherLearners(userID)
}

func (s *RosterService) GrownUpsForLearner(learnerID uint) ([]model.User, error) {
	return s.RosterRepo.LinkedGrownUps(learnerID)
}
