package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
)

// Spreadsheet columns are matched case-insensitively and tolerate both
// the display convention ("Full Name") and the camelCase convention
// ("fullName"): both normalize to the same key.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var exportHeaders = []string{
	"No.", "Full Name", "Email", "Phone", "Age", "Course", "Department",
	"Hobbies", "Gender", "Address", "Status",
	"Emergency Contact Name", "Emergency Contact Phone", "Emergency Contact Relation",
	"Enrollment Date", "Created At", "Updated At",
}

type importExportService struct {
	repo   repositories.Repository
	events events.EventPublisher
	logger *slog.Logger
}

func NewImportExportService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ImportExportService {
	return &importExportService{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

// ===== ROW VALIDATION =====

// normalizeKey folds a column name to a canonical form: lowercase with
// separators removed, so "Full Name", "fullName" and "full_name" all
// resolve to "fullname".
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func rowValue(row map[string]string, canonical string) string {
	for key, value := range row {
		if normalizeKey(key) == canonical {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (s *importExportService) ValidateRow(rowNumber int, row map[string]string) ImportRow {
	student := ImportStudentRow{
		FullName:                 rowValue(row, "fullname"),
		Email:                    rowValue(row, "email"),
		Phone:                    rowValue(row, "phone"),
		Age:                      rowValue(row, "age"),
		Course:                   rowValue(row, "course"),
		Department:               rowValue(row, "department"),
		Hobbies:                  rowValue(row, "hobbies"),
		Gender:                   rowValue(row, "gender"),
		Address:                  rowValue(row, "address"),
		Status:                   rowValue(row, "status"),
		EmergencyContactName:     rowValue(row, "emergencycontactname"),
		EmergencyContactPhone:    rowValue(row, "emergencycontactphone"),
		EmergencyContactRelation: rowValue(row, "emergencycontactrelation"),
	}

	var rowErrors []string

	// Presence checks, in column order
	required := []struct {
		label string
		value string
	}{
		{"Full Name", student.FullName},
		{"Email", student.Email},
		{"Phone", student.Phone},
		{"Age", student.Age},
		{"Course", student.Course},
		{"Department", student.Department},
		{"Hobbies", student.Hobbies},
		{"Gender", student.Gender},
		{"Address", student.Address},
	}
	for _, field := range required {
		if field.value == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("%s is required", field.label))
		}
	}

	if student.Email != "" && !emailPattern.MatchString(student.Email) {
		rowErrors = append(rowErrors, "Email format is invalid")
	}

	if student.Age != "" {
		age, err := strconv.Atoi(student.Age)
		if err != nil {
			rowErrors = append(rowErrors, "Age must be a number")
		} else if age < models.MinStudentAge || age > models.MaxStudentAge {
			rowErrors = append(rowErrors, fmt.Sprintf("Age must be between %d and %d",
				models.MinStudentAge, models.MaxStudentAge))
		}
	}

	// Enumerated fields are checked independently so one row reports
	// every violation at once
	if student.Course != "" && !models.IsOneOf(student.Course, models.Courses) {
		rowErrors = append(rowErrors, fmt.Sprintf("Course must be one of: %s",
			strings.Join(models.Courses, ", ")))
	}
	if student.Department != "" && !models.IsOneOf(student.Department, models.Departments) {
		rowErrors = append(rowErrors, fmt.Sprintf("Department must be one of: %s",
			strings.Join(models.Departments, ", ")))
	}
	if student.Hobbies != "" && !models.IsOneOf(student.Hobbies, models.Hobbies) {
		rowErrors = append(rowErrors, fmt.Sprintf("Hobbies must be one of: %s",
			strings.Join(models.Hobbies, ", ")))
	}
	if student.Gender != "" && !models.IsOneOf(student.Gender, models.Genders) {
		rowErrors = append(rowErrors, fmt.Sprintf("Gender must be one of: %s",
			strings.Join(models.Genders, ", ")))
	}

	// Status defaults when absent, and the default is still checked
	if student.Status == "" {
		student.Status = string(models.StudentActive)
	}
	if !models.IsOneOf(student.Status, models.Statuses) {
		rowErrors = append(rowErrors, fmt.Sprintf("Status must be one of: %s",
			strings.Join(models.Statuses, ", ")))
	}

	return ImportRow{
		RowNumber: rowNumber,
		Student:   student,
		Errors:    rowErrors,
		IsValid:   len(rowErrors) == 0,
	}
}

// ===== PREVIEW =====

func (s *importExportService) Preview(ctx context.Context, fileData []byte) (*ImportPreviewResponse, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrEmptyFile
	}

	headers := rows[0]
	response := &ImportPreviewResponse{Rows: make([]ImportRow, 0, len(rows)-1)}

	for i, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(cells) {
				rowMap[header] = cells[col]
			}
		}

		validated := s.ValidateRow(i+1, rowMap)
		response.Rows = append(response.Rows, validated)
		if validated.IsValid {
			response.Valid++
		} else {
			response.Invalid++
		}
	}

	response.Total = len(response.Rows)
	if response.Total == 0 {
		return nil, ErrEmptyFile
	}

	s.logger.Info("Previewed import file",
		"total", response.Total, "valid", response.Valid, "invalid", response.Invalid)
	return response, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ===== IMPORT =====

func (s *importExportService) Import(ctx context.Context, rows []ImportStudentRow) (*ImportSummary, error) {
	summary := &ImportSummary{
		Processed:  len(rows),
		Duplicates: []DuplicateDetail{},
		Failures:   []FailureDetail{},
	}

	var batch []*models.Student
	var batchIndex []int // batch position -> original row index

	for i, row := range rows {
		exists, err := s.repo.Student().ExistsByEmail(ctx, row.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if exists {
			summary.Duplicates = append(summary.Duplicates, DuplicateDetail{
				Index: i,
				Email: row.Email,
			})
			continue
		}

		student, err := importRowToStudent(row)
		if err != nil {
			summary.Failures = append(summary.Failures, FailureDetail{
				Index:   i,
				Email:   row.Email,
				Message: err.Error(),
			})
			continue
		}

		batch = append(batch, student)
		batchIndex = append(batchIndex, i)
	}

	inserted, itemErrors, err := s.repo.Student().BulkCreate(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("bulk insert failed: %w", err)
	}

	summary.Imported = inserted
	for _, ie := range itemErrors {
		summary.Failures = append(summary.Failures, FailureDetail{
			Index:   batchIndex[ie.Index],
			Email:   ie.Email,
			Message: ie.Message,
		})
	}
	summary.DuplicateCount = len(summary.Duplicates)
	summary.FailedCount = len(summary.Failures)

	s.logger.Info("Import completed",
		"processed", summary.Processed, "imported", summary.Imported,
		"duplicates", summary.DuplicateCount, "failed", summary.FailedCount)

	if err := s.events.Publish(ctx, events.NewEvent(events.TypeImportCompleted, map[string]interface{}{
		"processed":  summary.Processed,
		"imported":   summary.Imported,
		"duplicates": summary.DuplicateCount,
		"failed":     summary.FailedCount,
	})); err != nil {
		s.logger.Warn("Failed to publish event", "type", events.TypeImportCompleted, "error", err)
	}

	return summary, nil
}

// importRowToStudent coerces a validated row into a record: phone and
// age become numeric, the emergency contact sub-fields nest.
func importRowToStudent(row ImportStudentRow) (*models.Student, error) {
	phone, err := strconv.ParseInt(strings.ReplaceAll(row.Phone, " ", ""), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid phone number %q", row.Phone)
	}
	age, err := strconv.Atoi(row.Age)
	if err != nil {
		return nil, fmt.Errorf("invalid age %q", row.Age)
	}

	status := models.StudentStatus(row.Status)
	if status == "" {
		status = models.StudentActive
	}

	student := &models.Student{
		FullName:   row.FullName,
		Email:      row.Email,
		Phone:      phone,
		Age:        age,
		Course:     row.Course,
		Department: row.Department,
		Hobbies:    row.Hobbies,
		Gender:     row.Gender,
		Address:    row.Address,
		Status:     status,
	}

	if row.EmergencyContactName != "" || row.EmergencyContactPhone != "" || row.EmergencyContactRelation != "" {
		contact, err := emergencyContactJSON(&models.EmergencyContact{
			Name:     row.EmergencyContactName,
			Phone:    row.EmergencyContactPhone,
			Relation: row.EmergencyContactRelation,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid emergency contact: %w", err)
		}
		student.EmergencyContact = contact
	}

	return student, nil
}

// ===== EXPORT =====

func (s *importExportService) Export(ctx context.Context, filters ExportFilters) (*ExportResult, error) {
	students, err := s.repo.Student().ListAll(ctx, repositories.StudentFilters{
		Search:     filters.Search,
		Status:     filters.Status,
		Course:     filters.Course,
		Department: filters.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students for export: %w", err)
	}
	if len(students) == 0 {
		return nil, ErrNotFound
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, student := range students {
		contact := decodeEmergencyContact(student)
		values := []interface{}{
			i + 1,
			student.FullName,
			student.Email,
			student.Phone,
			student.Age,
			student.Course,
			student.Department,
			student.Hobbies,
			student.Gender,
			student.Address,
			string(student.Status),
			contact.Name,
			contact.Phone,
			contact.Relation,
			student.EnrollmentDate.Format("2006-01-02"),
			student.CreatedAt.Format("2006-01-02"),
			student.UpdatedAt.Format("2006-01-02"),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	s.logger.Info("Exported students", "count", len(students))
	return &ExportResult{
		Filename: fmt.Sprintf("students_export_%s.xlsx", time.Now().Format("2006-01-02")),
		Data:     buf.Bytes(),
	}, nil
}

func decodeEmergencyContact(student *models.Student) models.EmergencyContact {
	var contact models.EmergencyContact
	if len(student.EmergencyContact) > 0 {
		// Best effort: a malformed stored contact exports as blanks
		_ = json.Unmarshal(student.EmergencyContact, &contact)
	}
	return contact
}
