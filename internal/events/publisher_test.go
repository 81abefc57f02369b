package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(TypeStudentCreated, map[string]interface{}{"student_id": uint(1)})

	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Type != TypeStudentCreated {
		t.Errorf("Expected type %q, got %q", TypeStudentCreated, event.Type)
	}
	if event.Source != "student-admin-service" {
		t.Errorf("Expected source 'student-admin-service', got %q", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %q", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should not be zero")
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	if err := publisher.Publish(ctx, NewEvent(TypeStudentCreated, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(TypeStudentDeleted, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(published))
	}
	if published[0].Type != TypeStudentCreated || published[1].Type != TypeStudentDeleted {
		t.Errorf("Events recorded out of order: %+v", published)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("ClearEvents did not reset the recorded events")
	}
}

func TestNoopEventPublisher(t *testing.T) {
	publisher := NewNoopEventPublisher()

	if err := publisher.Publish(context.Background(), NewEvent(TypeUserRegistered, nil)); err != nil {
		t.Errorf("Noop publish should never fail, got %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Errorf("Noop close should never fail, got %v", err)
	}
}
