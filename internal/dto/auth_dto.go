package dto

import "github.com/studioclass/review-api/internal/models"

// LoginRequest carries the credential exchange payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account, without the credential hash.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse pairs the signed token with the authenticated identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a User model into its public DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:       model.ID,
		Username: model.Username,
		Role:     model.Role,
	}
}
