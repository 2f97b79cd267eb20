// Package rbac implements role-based access control: a fixed role set, a
// static role-to-permission table, and pure predicate functions used by
// both the authorization middleware and navigation filtering. A denied
// check is a boolean outcome, never an error.
package rbac

// Role is a named bundle of permissions assigned to a user.
type Role string

const (
	RoleRegularUser        Role = "regular_user"
	RoleChangeLead         Role = "change_lead"
	RoleManagerChange      Role = "manager_change"
	RoleBusinessController Role = "business_controller"
	RoleAdmin              Role = "admin"
)

// Permission is a fine-grained capability flag.
type Permission string

const (
	PermTimeLogging        Permission = "time_logging"
	PermReports            Permission = "reports"
	PermChangeLeadReports  Permission = "change_lead_reports"
	PermResourceManagement Permission = "resource_management"
	PermProjectManagement  Permission = "project_management"
	PermUserManagement     Permission = "user_management"
	PermSystemAdmin        Permission = "system_admin"
	PermDashboard          Permission = "dashboard"
	PermCalendar           Permission = "calendar"
	PermSubmissionOverview Permission = "submission_overview"
	PermSettings           Permission = "settings"
	PermRoleManagement     Permission = "role_management"
)

// AllRoles lists every known role.
var AllRoles = []Role{
	RoleRegularUser,
	RoleChangeLead,
	RoleManagerChange,
	RoleBusinessController,
	RoleAdmin,
}

// RolePermissions is the static role-to-permission table. Permissions are
// derived from roles at evaluation time, never stored per user.
var RolePermissions = map[Role][]Permission{
	RoleRegularUser: {
		PermTimeLogging,
		PermDashboard,
		PermCalendar,
	},
	RoleChangeLead: {
		PermTimeLogging,
		PermDashboard,
		PermCalendar,
		PermChangeLeadReports,
	},
	RoleManagerChange: {
		PermTimeLogging,
		PermDashboard,
		PermCalendar,
		PermReports,
		PermChangeLeadReports,
		PermResourceManagement,
		PermProjectManagement,
		PermSubmissionOverview,
	},
	RoleBusinessController: {
		PermDashboard,
		PermCalendar,
		PermReports,
		PermSubmissionOverview,
	},
	RoleAdmin: {
		PermTimeLogging,
		PermDashboard,
		PermCalendar,
		PermReports,
		PermChangeLeadReports,
		PermResourceManagement,
		PermProjectManagement,
		PermSubmissionOverview,
		PermUserManagement,
		PermRoleManagement,
		PermSettings,
		PermSystemAdmin,
	},
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	_, ok := RolePermissions[r]
	return ok
}

// Subject is the request-scoped identity RBAC predicates run against.
// A subject may hold multiple roles; its permission set is the union of
// the role table entries for every role held.
type Subject struct {
	UserID string
	Roles  []Role
}

// NewSubject builds a subject from raw role strings, dropping unknown roles.
func NewSubject(userID string, roles []string) *Subject {
	s := &Subject{UserID: userID}
	for _, raw := range roles {
		if r := Role(raw); ValidRole(r) {
			s.Roles = append(s.Roles, r)
		}
	}
	return s
}

// Permissions returns the union of permissions across the subject's roles.
func (s *Subject) Permissions() []Permission {
	seen := make(map[Permission]bool)
	var out []Permission
	for _, role := range s.Roles {
		for _, p := range RolePermissions[role] {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// HasRole reports whether the subject holds the role.
func (s *Subject) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the subject holds at least one of the roles.
func (s *Subject) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the subject holds every listed role.
func (s *Subject) HasAllRoles(roles ...Role) bool {
	for _, r := range roles {
		if !s.HasRole(r) {
			return false
		}
	}
	return true
}

// HasPermission reports whether any of the subject's roles grants the
// permission.
func (s *Subject) HasPermission(perm Permission) bool {
	for _, role := range s.Roles {
		for _, p := range RolePermissions[role] {
			if p == perm {
				return true
			}
		}
	}
	return false
}

// HasAnyPermission reports whether the subject holds at least one of the
// permissions.
func (s *Subject) HasAnyPermission(perms ...Permission) bool {
	for _, p := range perms {
		if s.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the subject holds every listed
// permission.
func (s *Subject) HasAllPermissions(perms ...Permission) bool {
	for _, p := range perms {
		if !s.HasPermission(p) {
			return false
		}
	}
	return true
}
