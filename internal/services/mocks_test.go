package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

var testValidator = validator.New()

// In-memory repository doubles shared by the service tests.

type mockUserRepository struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uint]*models.User)}
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if exists, _ := m.ExistsByEmail(ctx, user.Email); exists {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

type mockStudentRepository struct {
	students map[uint]*models.Student
	nextID   uint

	// emails that fail individually during BulkCreate
	failEmails map[string]string
}

func newMockStudentRepository() *mockStudentRepository {
	return &mockStudentRepository{
		students:   make(map[uint]*models.Student),
		failEmails: make(map[string]string),
	}
}

func (m *mockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	if student, ok := m.students[id]; ok {
		return student, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range m.students {
		if student.Email == email {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockStudentRepository) matches(student *models.Student, filters repositories.StudentFilters) bool {
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		haystack := strings.ToLower(student.FullName + " " + student.Email + " " +
			student.Course + " " + string(student.Status))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if filters.Status != "" && !strings.EqualFold(filters.Status, "all") &&
		string(student.Status) != filters.Status {
		return false
	}
	if filters.Course != "" && !strings.EqualFold(filters.Course, "all") &&
		student.Course != filters.Course {
		return false
	}
	if filters.Department != "" && !strings.EqualFold(filters.Department, "all") &&
		student.Department != filters.Department {
		return false
	}
	return true
}

func (m *mockStudentRepository) matching(filters repositories.StudentFilters) []*models.Student {
	var students []*models.Student
	for _, student := range m.students {
		if m.matches(student, filters) {
			students = append(students, student)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].CreatedAt.After(students[j].CreatedAt)
	})
	return students
}

func (m *mockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	students := m.matching(filters)
	total := int64(len(students))

	if filters.Offset >= len(students) {
		return nil, total, nil
	}
	students = students[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(students) {
		students = students[:filters.Limit]
	}
	return students, total, nil
}

func (m *mockStudentRepository) ListAll(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, error) {
	return m.matching(filters), nil
}

func (m *mockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	if exists, _ := m.ExistsByEmail(ctx, student.Email); exists {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	student.ID = m.nextID
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepository) BulkCreate(ctx context.Context, students []*models.Student) (int, []repositories.BulkItemError, error) {
	inserted := 0
	var itemErrors []repositories.BulkItemError
	for i, student := range students {
		if msg, fail := m.failEmails[student.Email]; fail {
			itemErrors = append(itemErrors, repositories.BulkItemError{
				Index:   i,
				Email:   student.Email,
				Message: msg,
			})
			continue
		}
		if err := m.Create(ctx, student); err != nil {
			itemErrors = append(itemErrors, repositories.BulkItemError{
				Index:   i,
				Email:   student.Email,
				Message: err.Error(),
			})
			continue
		}
		inserted++
	}
	return inserted, itemErrors, nil
}

type mockReportRepository struct {
	students *mockStudentRepository
}

func (m *mockReportRepository) countBy(key func(*models.Student) string) []repositories.GroupCount {
	counts := make(map[string]int64)
	for _, student := range m.students.students {
		counts[key(student)]++
	}
	var result []repositories.GroupCount
	for group, count := range counts {
		result = append(result, repositories.GroupCount{Group: group, Count: count})
	}
	return result
}

func (m *mockReportRepository) CountByDepartment(ctx context.Context) ([]repositories.GroupCount, error) {
	return m.countBy(func(s *models.Student) string { return s.Department }), nil
}

func (m *mockReportRepository) CountByCourse(ctx context.Context) ([]repositories.GroupCount, error) {
	return m.countBy(func(s *models.Student) string { return s.Course }), nil
}

func (m *mockReportRepository) CountByAge(ctx context.Context) ([]repositories.GroupCount, error) {
	return m.countBy(func(s *models.Student) string { return strconv.Itoa(s.Age) }), nil
}

type mockRepository struct {
	users    *mockUserRepository
	students *mockStudentRepository
}

func newMockRepository() *mockRepository {
	students := newMockStudentRepository()
	return &mockRepository{
		users:    newMockUserRepository(),
		students: students,
	}
}

func (m *mockRepository) User() repositories.UserRepository       { return m.users }
func (m *mockRepository) Student() repositories.StudentRepository { return m.students }
func (m *mockRepository) Report() repositories.ReportRepository {
	return &mockReportRepository{students: m.students}
}

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }
