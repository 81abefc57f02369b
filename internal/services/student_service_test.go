package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

func newTestStudentService(repo *mockRepository) (StudentService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	return NewStudentService(repo, testValidator, publisher, logger), publisher
}

func validCreateRequest(email string) *CreateStudentRequest {
	return &CreateStudentRequest{
		FullName:   "Jane Doe",
		Email:      email,
		Phone:      5551234567,
		Age:        20,
		Course:     "Engineering",
		Department: "Tech",
		Hobbies:    "Music",
		Gender:     "Female",
		Address:    "12 Elm Street",
	}
}

func TestStudentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid creation defaults status and publishes event", func(t *testing.T) {
		repo := newMockRepository()
		service, publisher := newTestStudentService(repo)

		student, err := service.Create(ctx, validCreateRequest("jane@example.com"))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if student.Status != models.StudentActive {
			t.Errorf("Expected status Active, got %s", student.Status)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeStudentCreated {
			t.Errorf("Expected one %s event, got %+v", events.TypeStudentCreated, published)
		}
	})

	t.Run("age out of range fails validation", func(t *testing.T) {
		service, _ := newTestStudentService(newMockRepository())

		req := validCreateRequest("kid@example.com")
		req.Age = 15

		_, err := service.Create(ctx, req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("Expected ErrValidationFailed, got %v", err)
		}

		var verr *ValidationFailedError
		if !errors.As(err, &verr) {
			t.Fatal("Expected ValidationFailedError details")
		}
		if len(verr.Details) == 0 || verr.Details[0].Field != "age" {
			t.Errorf("Expected an age field error, got %+v", verr.Details)
		}
	})

	t.Run("enumerated field outside its set fails validation", func(t *testing.T) {
		service, _ := newTestStudentService(newMockRepository())

		req := validCreateRequest("weird@example.com")
		req.Course = "Astrology"

		if _, err := service.Create(ctx, req); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("second creation with same email conflicts", func(t *testing.T) {
		service, _ := newTestStudentService(newMockRepository())

		if _, err := service.Create(ctx, validCreateRequest("same@example.com")); err != nil {
			t.Fatalf("First create failed: %v", err)
		}
		if _, err := service.Create(ctx, validCreateRequest("same@example.com")); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})
}

func TestStudentService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	first, err := service.Create(ctx, validCreateRequest("first@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.Create(ctx, validCreateRequest("second@example.com")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		newAge := 25
		updated, err := service.Update(ctx, first.ID, &UpdateStudentRequest{Age: &newAge})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Age != 25 {
			t.Errorf("Expected age 25, got %d", updated.Age)
		}
		if updated.Email != "first@example.com" {
			t.Errorf("Email changed unexpectedly: %s", updated.Email)
		}
	})

	t.Run("email change onto another record conflicts", func(t *testing.T) {
		email := "second@example.com"
		_, err := service.Update(ctx, first.ID, &UpdateStudentRequest{Email: &email})
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := service.Update(ctx, 9999, &UpdateStudentRequest{}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestStudentService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service, publisher := newTestStudentService(repo)

	student, err := service.Create(ctx, validCreateRequest("gone@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	publisher.ClearEvents()

	if err := service.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := service.Delete(ctx, student.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeStudentDeleted {
		t.Errorf("Expected one %s event, got %+v", events.TypeStudentDeleted, published)
	}
}

func TestStudentService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service, _ := newTestStudentService(repo)

	for i := 0; i < 10; i++ {
		email := string(rune('a'+i)) + "@example.com"
		if _, err := service.Create(ctx, validCreateRequest(email)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	response, err := service.List(ctx, 2, 7, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	p := response.Pagination
	if p.TotalRecords != 10 {
		t.Errorf("Expected 10 records, got %d", p.TotalRecords)
	}
	if p.TotalPages != 2 {
		t.Errorf("Expected 2 pages, got %d", p.TotalPages)
	}
	if p.HasNextPage {
		t.Error("Last page should not report a next page")
	}
	if !p.HasPrevPage {
		t.Error("Page 2 should report a previous page")
	}
	if len(response.Students) != 3 {
		t.Errorf("Expected 3 students on page 2, got %d", len(response.Students))
	}
}
