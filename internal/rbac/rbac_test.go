package rbac

import (
	"testing"
)

func TestNewSubjectDropsUnknownRoles(t *testing.T) {
	s := NewSubject("u1", []string{"admin", "superhero", "regular_user"})
	if len(s.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", s.Roles)
	}
	if !s.HasRole(RoleAdmin) || !s.HasRole(RoleRegularUser) {
		t.Errorf("expected admin and regular_user, got %v", s.Roles)
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		perm  Permission
		want  bool
	}{
		{"regular user can log time", []Role{RoleRegularUser}, PermTimeLogging, true},
		{"regular user cannot manage users", []Role{RoleRegularUser}, PermUserManagement, false},
		{"business controller cannot log time", []Role{RoleBusinessController}, PermTimeLogging, false},
		{"business controller sees reports", []Role{RoleBusinessController}, PermReports, true},
		{"change lead sees own reports only", []Role{RoleChangeLead}, PermChangeLeadReports, true},
		{"change lead lacks full reports", []Role{RoleChangeLead}, PermReports, false},
		{"admin has system admin", []Role{RoleAdmin}, PermSystemAdmin, true},
		{"no roles no permissions", nil, PermDashboard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subject{UserID: "u1", Roles: tt.roles}
			if got := s.HasPermission(tt.perm); got != tt.want {
				t.Errorf("HasPermission(%s) = %v, want %v", tt.perm, got, tt.want)
			}
		})
	}
}

func TestPermissionsUnionAcrossRoles(t *testing.T) {
	s := &Subject{UserID: "u1", Roles: []Role{RoleChangeLead, RoleBusinessController}}

	// From change_lead.
	if !s.HasPermission(PermTimeLogging) {
		t.Error("union should include time_logging from change_lead")
	}
	// From business_controller.
	if !s.HasPermission(PermReports) {
		t.Error("union should include reports from business_controller")
	}
	// From neither.
	if s.HasPermission(PermUserManagement) {
		t.Error("union should not include user_management")
	}

	perms := s.Permissions()
	seen := make(map[Permission]bool)
	for _, p := range perms {
		if seen[p] {
			t.Errorf("Permissions() returned duplicate %s", p)
		}
		seen[p] = true
	}
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	s := &Subject{UserID: "u1", Roles: []Role{RoleRegularUser}}

	if !s.HasAnyPermission(PermReports, PermDashboard) {
		t.Error("HasAnyPermission should pass holding dashboard only")
	}
	if s.HasAllPermissions(PermReports, PermDashboard) {
		t.Error("HasAllPermissions should fail without reports")
	}
	if !s.HasAllPermissions(PermDashboard, PermTimeLogging) {
		t.Error("HasAllPermissions should pass for held permissions")
	}
	if s.HasAnyPermission() {
		t.Error("HasAnyPermission with no arguments should deny")
	}
}

func TestHasAnyRole(t *testing.T) {
	s := &Subject{UserID: "u1", Roles: []Role{RoleManagerChange}}

	if !s.HasAnyRole(RoleAdmin, RoleManagerChange) {
		t.Error("HasAnyRole should match manager_change")
	}
	if s.HasAnyRole(RoleAdmin, RoleBusinessController) {
		t.Error("HasAnyRole should not match unheld roles")
	}
}

func TestEveryRoleHasDashboard(t *testing.T) {
	// All roles land on the dashboard after login.
	for _, role := range AllRoles {
		s := &Subject{Roles: []Role{role}}
		if !s.HasPermission(PermDashboard) {
			t.Errorf("role %s lacks dashboard permission", role)
		}
	}
}
