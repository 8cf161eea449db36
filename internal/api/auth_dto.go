package api

import (
	"time"

	"github.com/canchapp/canchapp-backend/internal/user"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Name              string `json:"name" binding:"required,max=80"`
	LastName          string `json:"last_name" binding:"required,max=80"`
	IdentificationNum string `json:"identification_num" binding:"required,max=40"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	LastName          string     `json:"last_name"`
	IdentificationNum string     `json:"identification_num"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	User UserResponse `json:"user"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse is the response for GET /v1/users/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		LastName:          u.LastName,
		IdentificationNum: u.IdentificationNum,
		Email:             u.Email,
		Role:              string(u.Role),
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		LastLoginAt:       lastLoginAt,
	}
}
