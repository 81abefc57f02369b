package repositories

import "context"

// GroupCount is one {group value, count} pair from an aggregate query.
type GroupCount struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// ReportRepository computes grouped counts over the student records
// for dashboard charts. Result ordering is not guaranteed.
type ReportRepository interface {
	CountByDepartment(ctx context.Context) ([]GroupCount, error)
	CountByCourse(ctx context.Context) ([]GroupCount, error)
	CountByAge(ctx context.Context) ([]GroupCount, error)
}
