package rbac

// RouteAccess declares who may use a route. Roles and Permissions are
// independent dimensions: each declared dimension must pass; an
// undeclared dimension is not evaluated. RequireAll switches the
// corresponding dimension from OR to AND semantics (default OR).
type RouteAccess struct {
	Roles       []Role       `json:"roles,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	RequireAll  bool         `json:"requireAll,omitempty"`
}

// Route is one entry of the shared permission table: a named API surface
// plus the navigation metadata the UI renders from.
type Route struct {
	Name   string      `json:"name"`
	Path   string      `json:"path"`
	Access RouteAccess `json:"access"`
}

// Routes is the single declarative permission table. The authorization
// middleware and the navigation endpoint both consume it, so what the UI
// shows and what the server admits cannot drift.
var Routes = []Route{
	{Name: "dashboard", Path: "/api/v1/dashboard", Access: RouteAccess{Permissions: []Permission{PermDashboard}}},
	{Name: "calendar", Path: "/api/v1/calendar", Access: RouteAccess{Permissions: []Permission{PermCalendar}}},
	{Name: "time-entries", Path: "/api/v1/time-entries", Access: RouteAccess{Permissions: []Permission{PermTimeLogging}}},
	{Name: "submissions", Path: "/api/v1/submissions", Access: RouteAccess{Permissions: []Permission{PermTimeLogging}}},
	{Name: "submission-overview", Path: "/api/v1/submissions/overview", Access: RouteAccess{Permissions: []Permission{PermSubmissionOverview}}},
	{Name: "resources", Path: "/api/v1/resources", Access: RouteAccess{Permissions: []Permission{PermResourceManagement}}},
	{Name: "projects", Path: "/api/v1/projects", Access: RouteAccess{Permissions: []Permission{PermProjectManagement}}},
	{Name: "allocations", Path: "/api/v1/allocations", Access: RouteAccess{Permissions: []Permission{PermResourceManagement, PermProjectManagement}}},
	{Name: "reports", Path: "/api/v1/reports", Access: RouteAccess{Permissions: []Permission{PermReports, PermChangeLeadReports}}},
	{Name: "users", Path: "/api/v1/users", Access: RouteAccess{Permissions: []Permission{PermUserManagement}}},
	{Name: "roles", Path: "/api/v1/users/roles", Access: RouteAccess{Permissions: []Permission{PermRoleManagement}}},
	{Name: "settings", Path: "/api/v1/settings", Access: RouteAccess{Permissions: []Permission{PermSettings}}},
}

// RouteByName looks up a route table entry.
func RouteByName(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// CanAccess evaluates a route declaration against the subject. Access is
// granted only when every declared dimension passes.
func (s *Subject) CanAccess(access RouteAccess) bool {
	if len(access.Roles) > 0 {
		if access.RequireAll {
			if !s.HasAllRoles(access.Roles...) {
				return false
			}
		} else if !s.HasAnyRole(access.Roles...) {
			return false
		}
	}
	if len(access.Permissions) > 0 {
		if access.RequireAll {
			if !s.HasAllPermissions(access.Permissions...) {
				return false
			}
		} else if !s.HasAnyPermission(access.Permissions...) {
			return false
		}
	}
	return true
}

// CanAccessRoute evaluates the named table entry. Unknown routes deny.
func (s *Subject) CanAccessRoute(name string) bool {
	route, ok := RouteByName(name)
	if !ok {
		return false
	}
	return s.CanAccess(route.Access)
}

// AccessibleRoutes filters the route table down to entries the subject
// may use. This backs the navigation endpoint.
func (s *Subject) AccessibleRoutes() []Route {
	var out []Route
	for _, r := range Routes {
		if s.CanAccess(r.Access) {
			out = append(out, r)
		}
	}
	return out
}
