package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/upb/wte-dashboard/backend/internal/access"
)

// Profile is a dashboard user's profile. The ID matches the subject of the
// access token issued by the managed auth backend.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewProfile creates a new Profile instance
func NewProfile(id uuid.UUID, email, name string) *Profile {
	now := time.Now()
	return &Profile{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserRoleAssignment binds a profile to one dashboard role
type UserRoleAssignment struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	Role      access.Role `json:"role" db:"role"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// NewUserRoleAssignment creates a new role assignment
func NewUserRoleAssignment(userID uuid.UUID, role access.Role) *UserRoleAssignment {
	return &UserRoleAssignment{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

// ProfileWithRole is a profile joined with its role assignment.
// Role is empty when the user has no assignment.
type ProfileWithRole struct {
	Profile
	Role access.Role `json:"role"`
}
