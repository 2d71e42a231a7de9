package service

import (
	"strings"
	"time"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"
)

type HelpService struct {
	HelpRepo   *repository.HelpRepository
	RosterRepo *repository.RosterRepository
	Hub        *HelpHub
}

func NewHelpService(helpRepo *repository.HelpRepository, rosterRepo *repository.RosterRepository, hub *HelpHub) *HelpService {
	return &HelpService{
		HelpRepo:   helpRepo,
		RosterRepo: rosterRepo,
		Hub:        hub,
	}
}

// Create sends a help request from a learner to one of their linked
// grown-ups and pushes it over the websocket when the recipient is online.
func (s *HelpService) Create(learnerID, toUserID uint, message string) (*model.HelpRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, util.ErrEmptyMessage
	}

	linked, err := s.RosterRepo.IsLinkedGrownUp(toUserID, learnerID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, util.ErrNotLinked
	}

	req := &model.HelpRequest{
		LearnerID: learnerID,
		ToUserID:  toUserID,
		Message:   message,
	}
	if err := s.HelpRepo.Create(req); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.PushToUsers([]uint{toUserID}, WSMessage{
			Type: EventNewHelpRequest,
			Data: map[string]interface{}{
				"id":        req.ID,
				"learnerId": learnerID,
				"message":   message,
				"createdAt": req.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	return req, nil
}

// HelpRequestView is a request with the learner's name resolved.
type HelpRequestView struct {
	ID          uint      `json:"id"`
	LearnerID   uint      `json:"learnerId"`
	LearnerName string    `json:"learnerName"`
	Message     string    `json:"message"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *HelpService) ListForRecipient(userID uint) ([]HelpRequestView, error) {
	requests, err := s.HelpRepo.FindByRecipient(userID)
	if err != nil {
		return nil, err
	}

	views := make([]HelpRequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, HelpRequestView{
			ID:          r.ID,
			LearnerID:   r.LearnerID,
			LearnerName: r.Learner.Name,
			Message:     r.Message,
			Resolved:    r.Resolved,
			CreatedAt:   r.CreatedAt,
		})
	}
	return views, nil
}

// Resolve marks a request handled. Only the recipient may resolve it.
func (s *HelpService) Resolve(userID, requestID uint) error {
	req, err := s.HelpRepo.FindByID(requestID)
	if err != nil {
		return util.ErrHelpNotFound
	}
	if req.ToUserID != userID {
		return util.ErrPermissionDenied
	}
	if req.Resolved {
		return nil
	}

	if err := s.HelpRepo.MarkResolved(requestID); err != nil {
		return err
	}

	if s.Hub != nil {
		s.Hub.PushToUsers([]uint{req.LearnerID}, WSMessage{
			Type: EventHelpResolved,
			Data: map[string]interface{}{
				"id": requestID,
			},
		})
	}
	return nil
}
