package dto

import (
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64            `json:"id"`
	Email string            `json:"email"`
	Name  string            `json:"name"`
	Role  models.GlobalRole `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse is the authenticated caller's own view.
type ProfileResponse struct {
	User          UserDTO                   `json:"user"`
	Organizations []OrganizationWithRoleDTO `json:"organizations"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
