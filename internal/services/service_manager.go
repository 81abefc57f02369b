package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	Issuer    string
}

// serviceManager implements ServiceManager
type serviceManager struct {
	repo   repositories.Repository
	events events.EventPublisher
	logger *slog.Logger

	authService         AuthService
	userService         UserService
	studentService      StudentService
	importExportService ImportExportService
	reportService       ReportService
}

// NewServiceManager wires every service over the shared repository and
// event publisher.
func NewServiceManager(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	config ServiceManagerConfig,
	logger *slog.Logger,
) ServiceManager {
	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey: config.JWTSecret,
		Expiry:    config.JWTExpiry,
		Issuer:    config.Issuer,
	})

	return &serviceManager{
		repo:                repo,
		events:              publisher,
		logger:              logger,
		authService:         NewAuthService(repo, tokens, v, publisher, logger),
		userService:         NewUserService(repo, v, logger),
		studentService:      NewStudentService(repo, v, publisher, logger),
		importExportService: NewImportExportService(repo, publisher, logger),
		reportService:       NewReportService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.authService }
func (m *serviceManager) User() UserService                 { return m.userService }
func (m *serviceManager) Student() StudentService           { return m.studentService }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExportService }
func (m *serviceManager) Report() ReportService             { return m.reportService }

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down service manager")
	if err := m.events.Close(); err != nil {
		m.logger.Warn("Failed to close event publisher", "error", err)
	}
	return m.repo.Close()
}
