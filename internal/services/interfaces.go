package services

import (
	"context"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterUserRequest = validator.RegisterUserRequest
type LoginRequest = validator.LoginRequest
type UpdateUserRequest = validator.UpdateUserRequest
type CreateStudentRequest = validator.CreateStudentRequest
type UpdateStudentRequest = validator.UpdateStudentRequest
type ImportStudentRow = validator.ImportStudentRow

// Pagination is the standard page block attached to list responses.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination computes the page block for a list of total records
// split into pages of the given size.
func NewPagination(page, size int, total int64) Pagination {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserListResponse struct {
	Users      []*models.User `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination Pagination        `json:"pagination"`
}

// ===== IMPORT/EXPORT DTOs =====

// ImportRow is one annotated row from an uploaded file. Row numbers
// are 1-based and count data rows only (the header row is row 0).
type ImportRow struct {
	RowNumber int              `json:"rowNumber"`
	Student   ImportStudentRow `json:"student"`
	Errors    []string         `json:"errors"`
	IsValid   bool             `json:"isValid"`
}

type ImportPreviewResponse struct {
	Rows    []ImportRow `json:"rows"`
	Total   int         `json:"total"`
	Valid   int         `json:"valid"`
	Invalid int         `json:"invalid"`
}

type DuplicateDetail struct {
	Index int    `json:"index"`
	Email string `json:"email"`
}

type FailureDetail struct {
	Index   int    `json:"index"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ImportSummary struct {
	Processed      int               `json:"processed"`
	Imported       int               `json:"imported"`
	DuplicateCount int               `json:"duplicateCount"`
	FailedCount    int               `json:"failedCount"`
	Duplicates     []DuplicateDetail `json:"duplicates"`
	Failures       []FailureDetail   `json:"failures"`
}

// ExportFilters narrows the exported record set. Empty or "all" means
// no filter for that dimension; filters combine with AND.
type ExportFilters struct {
	Search     string
	Status     string
	Course     string
	Department string
}

type ExportResult struct {
	Filename string
	Data     []byte
}

// ===== REPORT DTOs =====

type ChartItem struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a user account. Only an admin-privileged actor
	// may assign a role other than the default.
	Register(ctx context.Context, req *RegisterUserRequest, actor *models.User) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	// Authorize checks the user's role against the required one.
	Authorize(user *models.User, required models.UserRole) error
}

type UserService interface {
	List(ctx context.Context, page, size int, search string) (*UserListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, req *RegisterUserRequest) (*models.User, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type StudentService interface {
	List(ctx context.Context, page, size int, search string) (*StudentListResponse, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type ImportExportService interface {
	// ValidateRow checks one raw row without side effects.
	ValidateRow(rowNumber int, row map[string]string) ImportRow
	// Preview parses an uploaded XLSX file and validates every row.
	Preview(ctx context.Context, fileData []byte) (*ImportPreviewResponse, error)
	// Import persists rows the caller already validated via Preview.
	Import(ctx context.Context, rows []ImportStudentRow) (*ImportSummary, error)
	// Export renders matching students as an XLSX document.
	Export(ctx context.Context, filters ExportFilters) (*ExportResult, error)
}

type ReportService interface {
	StudentsByDepartment(ctx context.Context) ([]ChartItem, error)
	StudentsByCourse(ctx context.Context) ([]ChartItem, error)
	StudentsByAge(ctx context.Context) ([]ChartItem, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager wires every service over a shared repository.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Student() StudentService
	ImportExport() ImportExportService
	Report() ReportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// toChartItems converts store-level group counts to the API shape.
func toChartItems(counts []repositories.GroupCount) []ChartItem {
	items := make([]ChartItem, 0, len(counts))
	for _, c := range counts {
		items = append(items, ChartItem{Group: c.Group, Count: c.Count})
	}
	return items
}
