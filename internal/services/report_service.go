package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// reportService serves the chart aggregates. Results carry no ordering
// guarantee; the frontend sorts them for display.
type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) StudentsByDepartment(ctx context.Context) ([]ChartItem, error) {
	counts, err := s.repo.Report().CountByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students by department: %w", err)
	}
	return toChartItems(counts), nil
}

func (s *reportService) StudentsByCourse(ctx context.Context) ([]ChartItem, error) {
	counts, err := s.repo.Report().CountByCourse(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students by course: %w", err)
	}
	return toChartItems(counts), nil
}

func (s *reportService) StudentsByAge(ctx context.Context) ([]ChartItem, error) {
	counts, err := s.repo.Report().CountByAge(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students by age: %w", err)
	}
	return toChartItems(counts), nil
}
