package models

import (
	"time"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// IsValid reports whether the role is one of the enumerated values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a user with this role passes a check that
// requires the given role. superadmin passes admin-only checks; a
// superadmin-only check requires an exact match.
func (r UserRole) Satisfies(required UserRole) bool {
	if r == required {
		return true
	}
	if required == RoleAdmin && r == RoleSuperAdmin {
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	FullName string   `json:"full_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password string   `json:"-" gorm:"not null;size:255"` // bcrypt hash, never serialized
	Role     UserRole `json:"role" gorm:"not null;default:user;size:20" validate:"omitempty,oneof=user admin superadmin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
