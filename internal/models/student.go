package models

import (
	"time"

	"gorm.io/datatypes"
)

type StudentStatus string

const (
	StudentActive    StudentStatus = "Active"
	StudentInactive  StudentStatus = "Inactive"
	StudentGraduated StudentStatus = "Graduated"
	StudentDropped   StudentStatus = "Dropped"
)

// Enumerated field values. The import pipeline and the request
// validators share these sets.
var (
	Courses = []string{
		"Computer Science", "Engineering", "Business", "Arts",
		"Science", "Mathematics", "Literature", "Medicine",
	}
	Departments = []string{"Tech", "Non-Tech", "Design"}
	Hobbies     = []string{"Music", "Dancing", "Painting", "Traveling"}
	Genders     = []string{"Male", "Female", "Other"}
	Statuses    = []string{"Active", "Inactive", "Graduated", "Dropped"}
)

// IsOneOf reports whether value is a member of the allowed set.
func IsOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

const (
	MinStudentAge = 17
	MaxStudentAge = 28
)

// EmergencyContact is an optional sub-record stored as JSONB, matching
// the nested shape the frontend submits.
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

type Student struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	FullName string `json:"full_name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Phone    int64  `json:"phone" gorm:"not null" validate:"required"`
	Age      int    `json:"age" gorm:"not null" validate:"required,min=17,max=28"`

	Course     string `json:"course" gorm:"not null;size:50;index" validate:"required,oneof='Computer Science' Engineering Business Arts Science Mathematics Literature Medicine"`
	Department string `json:"department" gorm:"not null;size:20;index" validate:"required,oneof=Tech Non-Tech Design"`
	Hobbies    string `json:"hobbies" gorm:"not null;size:20" validate:"required,oneof=Music Dancing Painting Traveling"`
	Gender     string `json:"gender" gorm:"not null;size:10" validate:"required,oneof=Male Female Other"`
	Address    string `json:"address" gorm:"not null;type:text" validate:"required"`

	Status           StudentStatus  `json:"status" gorm:"not null;default:Active;size:20;index" validate:"omitempty,oneof=Active Inactive Graduated Dropped"`
	EmergencyContact datatypes.JSON `json:"emergency_contact,omitempty" gorm:"type:jsonb"`
	EnrollmentDate   time.Time      `json:"enrollment_date" gorm:"not null;default:CURRENT_TIMESTAMP"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
