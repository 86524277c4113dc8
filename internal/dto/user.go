package dto

import (
	"github.com/google/uuid"
	"github.com/nmaslov/taskcrew/internal/models"
)

// ShowUser represents a user in API responses
type ShowUser struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
}

// UpdatedUserResponse carries the ID of an updated user
type UpdatedUserResponse struct {
	UpdatedUserID uuid.UUID `json:"updated_user_id"`
}

// DeletedUserResponse carries the ID of a soft-deleted user
type DeletedUserResponse struct {
	DeletedUserID uuid.UUID `json:"deleted_user_id"`
}

// TokenResponse is the login endpoint payload
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToShowUser converts a User model to ShowUser
func ToShowUser(user models.User) ShowUser {
	return ShowUser{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
	}
}
