package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

type reportRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewReportPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ReportRepository {
	return &reportRepository{db: db, cacheManager: cacheManager}
}

// countBy groups all student records by one column. Aggregates go
// through the report cache because every chart widget polls them.
func (r *reportRepository) countBy(ctx context.Context, column string) ([]repositories.GroupCount, error) {
	var counts []repositories.GroupCount

	err := r.cacheManager.Report.CacheOrExecute(ctx, column, &counts,
		cache.ReportCacheConfig.TTL, func() (interface{}, error) {
			var results []repositories.GroupCount
			if err := r.db.WithContext(ctx).
				Model(&models.Student{}).
				Select(fmt.Sprintf("CAST(%s AS TEXT) as \"group\", COUNT(*) as count", column)).
				Group(column).
				Scan(&results).Error; err != nil {
				return nil, err
			}
			return results, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to count students by %s: %w", column, err)
	}

	return counts, nil
}

func (r *reportRepository) CountByDepartment(ctx context.Context) ([]repositories.GroupCount, error) {
	return r.countBy(ctx, "department")
}

func (r *reportRepository) CountByCourse(ctx context.Context) ([]repositories.GroupCount, error) {
	return r.countBy(ctx, "course")
}

func (r *reportRepository) CountByAge(ctx context.Context) ([]repositories.GroupCount, error) {
	return r.countBy(ctx, "age")
}
