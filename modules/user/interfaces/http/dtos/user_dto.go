package dtos

import (
	"time"

	"scribe/server/modules/user/domain/entities"
)

// UpdateUserRequest represents the request to update a user's profile.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
}

// UserResponse represents the response containing user data.
type UserResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Plan       entities.Plan `json:"plan"`
	IsLifetime bool          `json:"is_lifetime"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ToUserResponse converts a User entity to UserResponse DTO.
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:         user.GetID(),
		Name:       user.GetName(),
		Email:      user.GetEmail().String(),
		Plan:       user.Plan,
		IsLifetime: user.IsLifetime,
		CreatedAt:  user.GetCreatedAt(),
		UpdatedAt:  user.GetUpdatedAt(),
	}
}
