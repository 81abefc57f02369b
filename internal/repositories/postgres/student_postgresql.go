package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

type studentRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &studentRepository{db: db, cacheManager: cacheManager}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student

	err := r.cacheManager.Student.CacheOrExecute(ctx, fmt.Sprintf("id:%d", id), &student,
		cache.StudentCacheConfig.TTL, func() (interface{}, error) {
			var s models.Student
			if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
				return nil, err
			}
			return &s, nil
		})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return &student, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	return &student, nil
}

func (r *studentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := r.cacheManager.Exists.CacheOrExecute(ctx, "student:"+email, &exists,
		cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
			var count int64
			if err := r.db.WithContext(ctx).
				Model(&models.Student{}).
				Where("email = ?", email).
				Count(&count).Error; err != nil {
				return nil, err
			}
			return count > 0, nil
		})
	if err != nil {
		return false, fmt.Errorf("failed to check student email: %w", err)
	}

	return exists, nil
}

// applyFilters builds the WHERE clause shared by List and ListAll. The
// free-text search is an OR block; the exact filters AND onto it.
func (r *studentRepository) applyFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"full_name ILIKE ? OR email ILIKE ? OR course ILIKE ? OR status ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filters.Status != "" && !strings.EqualFold(filters.Status, "all") {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Course != "" && !strings.EqualFold(filters.Course, "all") {
		query = query.Where("course = ?", filters.Course)
	}
	if filters.Department != "" && !strings.EqualFold(filters.Department, "all") {
		query = query.Where("department = ?", filters.Department)
	}

	return query
}

func (r *studentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Student{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []*models.Student
	if err := query.
		Order("created_at DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

func (r *studentRepository) ListAll(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Student{}), filters)

	var students []*models.Student
	if err := query.
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, student.ID, student.Email)
	return nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, student.ID, student.Email)
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateStudentCache(ctx, r.cacheManager, id, "")
	return nil
}

// BulkCreate inserts the batch in one statement when it can. If the
// batch insert fails, each record is retried individually so one bad
// row does not discard the rest; row failures are reported per item.
func (r *studentRepository) BulkCreate(ctx context.Context, students []*models.Student) (int, []repositories.BulkItemError, error) {
	if len(students) == 0 {
		return 0, nil, nil
	}

	if err := r.db.WithContext(ctx).CreateInBatches(students, 100).Error; err == nil {
		r.invalidateAfterBulk(ctx)
		return len(students), nil, nil
	}

	inserted := 0
	var itemErrors []repositories.BulkItemError
	for i, student := range students {
		if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
			itemErrors = append(itemErrors, repositories.BulkItemError{
				Index:   i,
				Email:   student.Email,
				Message: err.Error(),
			})
			continue
		}
		inserted++
	}

	// Every row failing the same way points at the store, not the rows
	if inserted == 0 && len(itemErrors) == len(students) {
		return 0, nil, fmt.Errorf("bulk insert failed: %s", itemErrors[0].Message)
	}

	r.invalidateAfterBulk(ctx)
	return inserted, itemErrors, nil
}

func (r *studentRepository) invalidateAfterBulk(ctx context.Context) {
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Student, "*")
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Report, "*")
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Exists, "student:*")
}
