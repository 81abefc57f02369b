package models

import "testing"

func TestIsOneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		allowed []string
		want    bool
	}{
		{"member course", "Computer Science", Courses, true},
		{"non-member course", "Astrology", Courses, false},
		{"member department", "Non-Tech", Departments, true},
		{"case sensitive", "tech", Departments, false},
		{"member hobby", "Traveling", Hobbies, true},
		{"member status", "Dropped", Statuses, true},
		{"empty value", "", Genders, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOneOf(tt.value, tt.allowed); got != tt.want {
				t.Errorf("IsOneOf(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestUserRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		required UserRole
		want     bool
	}{
		{"admin satisfies admin", RoleAdmin, RoleAdmin, true},
		{"superadmin satisfies admin", RoleSuperAdmin, RoleAdmin, true},
		{"admin does not satisfy superadmin", RoleAdmin, RoleSuperAdmin, false},
		{"superadmin satisfies superadmin", RoleSuperAdmin, RoleSuperAdmin, true},
		{"user does not satisfy admin", RoleUser, RoleAdmin, false},
		{"user satisfies user", RoleUser, RoleUser, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Satisfies(tt.required); got != tt.want {
				t.Errorf("%s.Satisfies(%s) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func TestUserRole_IsValid(t *testing.T) {
	for _, role := range []UserRole{RoleUser, RoleAdmin, RoleSuperAdmin} {
		if !role.IsValid() {
			t.Errorf("%s should be valid", role)
		}
	}
	if UserRole("moderator").IsValid() {
		t.Error("Unknown role should be invalid")
	}
}
