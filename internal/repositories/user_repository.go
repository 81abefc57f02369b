package repositories

import (
	"context"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// UserFilters defines filters for user queries
type UserFilters struct {
	Search string // Case-insensitive substring over name, email, role
	Limit  int    // Page size
	Offset int    // Offset for pagination
}

// UserRepository covers the credential store operations.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns matching users newest-first plus the total count
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}
