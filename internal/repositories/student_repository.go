package repositories

import (
	"context"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// StudentFilters defines filters for student queries. Search is a
// case-insensitive substring match OR-ed over full name, email, course
// and status; the remaining filters are exact-match and AND-combined.
// Empty (or "all") values mean "no filter".
type StudentFilters struct {
	Search     string
	Status     string
	Course     string
	Department string
	Limit      int
	Offset     int
}

// BulkItemError reports one failed record from a bulk insert. Failures
// are per-item: records before and after the failing one stay inserted.
type BulkItemError struct {
	Index   int    `json:"index"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// StudentRepository covers the student record store operations.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns matching students newest-first plus the total count
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	// ListAll returns every matching student newest-first without paging
	ListAll(ctx context.Context, filters StudentFilters) ([]*models.Student, error)

	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error

	// BulkCreate inserts all students it can and reports per-item
	// failures; it returns the number inserted. A non-item-level store
	// failure is returned as the error with inserted == 0.
	BulkCreate(ctx context.Context, students []*models.Student) (inserted int, itemErrors []BulkItemError, err error)
}
