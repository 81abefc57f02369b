package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	events    events.EventPublisher
	logger    *slog.Logger
}

func NewStudentService(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
) StudentService {
	return &studentService{
		repo:      repo,
		validator: v,
		events:    publisher,
		logger:    logger,
	}
}

func (s *studentService) List(ctx context.Context, page, size int, search string) (*StudentListResponse, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}

	students, total, err := s.repo.Student().List(ctx, repositories.StudentFilters{
		Search: search,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Students:   students,
		Pagination: NewPagination(page, size, total),
	}, nil
}

func (s *studentService) ListAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().ListAll(ctx, repositories.StudentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, newValidationError(verrs)
	}

	exists, err := s.repo.Student().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	contact, err := emergencyContactJSON(req.EmergencyContact)
	if err != nil {
		return nil, fmt.Errorf("failed to encode emergency contact: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.StudentActive
	}

	student := &models.Student{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		Course:           req.Course,
		Department:       req.Department,
		Hobbies:          req.Hobbies,
		Gender:           req.Gender,
		Address:          req.Address,
		Status:           status,
		EmergencyContact: contact,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		// The unique index is the safety net for the check-then-write race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student created", "student_id", student.ID, "email", student.Email)
	s.publishEvent(ctx, events.NewEvent(events.TypeStudentCreated, map[string]interface{}{
		"student_id": student.ID,
		"email":      student.Email,
		"course":     student.Course,
	}))

	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, newValidationError(verrs)
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if req.Email != nil && *req.Email != student.Email {
		exists, err := s.repo.Student().ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if exists {
			return nil, ErrEmailExists
		}
		student.Email = *req.Email
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Age != nil {
		student.Age = *req.Age
	}
	if req.Course != nil {
		student.Course = *req.Course
	}
	if req.Department != nil {
		student.Department = *req.Department
	}
	if req.Hobbies != nil {
		student.Hobbies = *req.Hobbies
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.EmergencyContact != nil {
		contact, err := emergencyContactJSON(req.EmergencyContact)
		if err != nil {
			return nil, fmt.Errorf("failed to encode emergency contact: %w", err)
		}
		student.EmergencyContact = contact
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", student.ID)
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id)
	s.publishEvent(ctx, events.NewEvent(events.TypeStudentDeleted, map[string]interface{}{
		"student_id": id,
	}))

	return nil
}

func (s *studentService) publishEvent(ctx context.Context, event events.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}

// emergencyContactJSON encodes the optional sub-record for JSONB storage.
func emergencyContactJSON(ec *models.EmergencyContact) (datatypes.JSON, error) {
	if ec == nil {
		return nil, nil
	}
	b, err := json.Marshal(ec)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
