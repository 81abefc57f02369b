package validator

import (
	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// RegisterUserRequest represents the request structure for admin user registration
type RegisterUserRequest struct {
	FullName string          `json:"full_name" validate:"required,min=1,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=user admin superadmin"`
}

// LoginRequest represents the credential login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a partial user update; absent fields are
// left untouched. A blank password means "keep the current one".
type UpdateUserRequest struct {
	FullName *string          `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Password *string          `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *models.UserRole `json:"role" validate:"omitempty,oneof=user admin superadmin"`
}

// CreateStudentRequest represents the request structure for single student registration
type CreateStudentRequest struct {
	FullName         string                   `json:"full_name" validate:"required,min=1,max=100"`
	Email            string                   `json:"email" validate:"required,email"`
	Phone            int64                    `json:"phone" validate:"required"`
	Age              int                      `json:"age" validate:"required,min=17,max=28"`
	Course           string                   `json:"course" validate:"required,oneof='Computer Science' Engineering Business Arts Science Mathematics Literature Medicine"`
	Department       string                   `json:"department" validate:"required,oneof=Tech Non-Tech Design"`
	Hobbies          string                   `json:"hobbies" validate:"required,oneof=Music Dancing Painting Traveling"`
	Gender           string                   `json:"gender" validate:"required,oneof=Male Female Other"`
	Address          string                   `json:"address" validate:"required"`
	Status           models.StudentStatus     `json:"status" validate:"omitempty,oneof=Active Inactive Graduated Dropped"`
	EmergencyContact *models.EmergencyContact `json:"emergency_contact"`
}

// UpdateStudentRequest represents a partial student update; each field
// is independently present or absent and revalidated before merge.
type UpdateStudentRequest struct {
	FullName         *string                  `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email            *string                  `json:"email" validate:"omitempty,email"`
	Phone            *int64                   `json:"phone"`
	Age              *int                     `json:"age" validate:"omitempty,min=17,max=28"`
	Course           *string                  `json:"course" validate:"omitempty,oneof='Computer Science' Engineering Business Arts Science Mathematics Literature Medicine"`
	Department       *string                  `json:"department" validate:"omitempty,oneof=Tech Non-Tech Design"`
	Hobbies          *string                  `json:"hobbies" validate:"omitempty,oneof=Music Dancing Painting Traveling"`
	Gender           *string                  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          *string                  `json:"address" validate:"omitempty"`
	Status           *models.StudentStatus    `json:"status" validate:"omitempty,oneof=Active Inactive Graduated Dropped"`
	EmergencyContact *models.EmergencyContact `json:"emergency_contact"`
}

// ImportStudentsRequest carries rows the caller has already previewed
// and filtered down to the valid ones.
type ImportStudentsRequest struct {
	Students []ImportStudentRow `json:"students" validate:"required,min=1,dive"`
}

// ImportStudentRow is one spreadsheet row as parsed strings. Validation
// happens in the import pipeline, not through struct tags, so that all
// rule violations for a row are reported together.
type ImportStudentRow struct {
	FullName                 string `json:"full_name"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	Age                      string `json:"age"`
	Course                   string `json:"course"`
	Department               string `json:"department"`
	Hobbies                  string `json:"hobbies"`
	Gender                   string `json:"gender"`
	Address                  string `json:"address"`
	Status                   string `json:"status"`
	EmergencyContactName     string `json:"emergency_contact_name"`
	EmergencyContactPhone    string `json:"emergency_contact_phone"`
	EmergencyContactRelation string `json:"emergency_contact_relation"`
}
