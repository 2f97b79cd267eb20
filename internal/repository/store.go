// Package repository defines the storage interfaces and their Postgres
// and in-memory implementations. Handlers receive a Store and never see
// the concrete backend; the driver is selected by configuration at
// startup.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/resourcio/resourcio/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint would be violated.
var ErrDuplicate = errors.New("duplicate record")

// ResourceRepository defines the interface for resource operations.
type ResourceRepository interface {
	CreateResource(ctx context.Context, r *models.Resource) error
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	GetResourceByEmail(ctx context.Context, email string) (*models.Resource, error)
	UpdateResource(ctx context.Context, r *models.Resource) error
	SoftDeleteResource(ctx context.Context, id string) error
	ListResources(ctx context.Context, includeDeleted bool) ([]*models.Resource, error)
}

// ProjectRepository defines the interface for project operations.
type ProjectRepository interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]*models.Project, error)
}

// AllocationRepository defines the interface for allocation operations.
type AllocationRepository interface {
	CreateAllocation(ctx context.Context, a *models.Allocation) error
	GetAllocation(ctx context.Context, id string) (*models.Allocation, error)
	UpdateAllocation(ctx context.Context, a *models.Allocation) error
	DeleteAllocation(ctx context.Context, id string) error
	ListAllocations(ctx context.Context) ([]*models.Allocation, error)
	ListAllocationsByResource(ctx context.Context, resourceID string) ([]*models.Allocation, error)
	CountActiveAllocationsByResource(ctx context.Context, resourceID string) (int, error)
}

// TimeEntryRepository defines the interface for time entry operations.
type TimeEntryRepository interface {
	UpsertTimeEntry(ctx context.Context, e *models.TimeEntry) error
	GetTimeEntry(ctx context.Context, allocationID, weekKey string) (*models.TimeEntry, error)
	ListTimeEntriesByResourceWeek(ctx context.Context, resourceID, weekKey string) ([]*models.TimeEntry, error)
}

// SubmissionRepository defines the interface for weekly submission operations.
type SubmissionRepository interface {
	GetSubmission(ctx context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error)
	SaveSubmission(ctx context.Context, s *models.WeeklySubmission) error
	ListSubmissionsByWeek(ctx context.Context, weekKey string) ([]*models.WeeklySubmission, error)
	ListSubmissionsByResource(ctx context.Context, resourceID string) ([]*models.WeeklySubmission, error)
}

// UserRepository defines the interface for user and role operations.
type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetUserRoles(ctx context.Context, userID string, roles []string) error
}

// Store bundles every repository behind one injection point.
type Store struct {
	Resources   ResourceRepository
	Projects    ProjectRepository
	Allocations AllocationRepository
	TimeEntries TimeEntryRepository
	Submissions SubmissionRepository
	Users       UserRepository
}

// NewPostgresStore wires all repositories over one connection pool.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Resources:   NewResourceRepository(db),
		Projects:    NewProjectRepository(db),
		Allocations: NewAllocationRepository(db),
		TimeEntries: NewTimeEntryRepository(db),
		Submissions: NewSubmissionRepository(db),
		Users:       NewUserRepository(db),
	}
}

// now returns a UTC timestamp; split out so tests stay deterministic
// when comparing create/change times.
func now() time.Time {
	return time.Now().UTC()
}
