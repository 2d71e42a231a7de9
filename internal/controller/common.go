package controller

import "calm_learning_hub/internal/model"

// PublicUser is the safe subset of a user record returned to clients.
type PublicUser struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Avatar string         `json:"avatar"`
	Role   model.UserRole `json:"role"`
}

func sanitizeUsers(users []model.User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, PublicUser{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Avatar: u.Avatar,
			Role:   u.Role,
		})
	}
	return out
}
