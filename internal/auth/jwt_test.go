package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

func TestTokenService_GenerateValidate(t *testing.T) {
	service := NewTokenService(TokenConfig{SecretKey: "test-secret", Expiry: time.Hour})
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	token, err := service.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := service.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != string(models.RoleAdmin) {
		t.Errorf("Expected role admin, got %s", claims.Role)
	}
}

func TestTokenService_Validate_Failures(t *testing.T) {
	service := NewTokenService(TokenConfig{SecretKey: "test-secret", Expiry: time.Hour})
	user := &models.User{ID: 7, Role: models.RoleUser}

	token, err := service.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("empty token", func(t *testing.T) {
		if _, err := service.Validate(""); !errors.Is(err, ErrMissingToken) {
			t.Errorf("Expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		if _, err := service.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService(TokenConfig{SecretKey: "other-secret", Expiry: time.Hour})
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService(TokenConfig{SecretKey: "test-secret", Expiry: -time.Minute})
		expiredToken, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := service.Validate(expiredToken); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("Expected ErrExpiredToken, got %v", err)
		}
	})
}

func TestNewTokenService_DefaultExpiry(t *testing.T) {
	service := NewTokenService(TokenConfig{SecretKey: "test-secret"})
	if service.config.Expiry != 24*time.Hour {
		t.Errorf("Expected default expiry of 24h, got %v", service.config.Expiry)
	}

	t.Run("negative expiry is preserved", func(t *testing.T) {
		service := NewTokenService(TokenConfig{SecretKey: "test-secret", Expiry: -time.Minute})
		if service.config.Expiry != -time.Minute {
			t.Errorf("Expected -1m expiry, got %v", service.config.Expiry)
		}

		token, err := service.Generate(&models.User{ID: 1, Role: models.RoleUser})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := service.Validate(token); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("Expected ErrExpiredToken, got %v", err)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid header", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"case-insensitive scheme", "bearer abc", "abc", nil},
		{"missing header", "", "", ErrMissingToken},
		{"wrong scheme", "Basic abc", "", ErrInvalidToken},
		{"no token part", "Bearer", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractBearerToken(%q) error = %v, want %v", tt.header, err, tt.wantErr)
			}
			if token != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, token, tt.want)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Error("Hash equals plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Wrong password accepted")
	}
}
