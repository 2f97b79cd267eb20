package main

import (
	"context"
	"time"

	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/rbac"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/service"
)

// seedDemo loads a small consistent dataset into the in-memory store.
// Every demo account logs in with the password "demo1234".
func seedDemo(ctx context.Context, store *repository.Store) error {
	monday := startOfISOWeek(time.Now().UTC())

	resources := []*models.Resource{
		{ID: "res-alice", Name: "Alice Kim", Email: "alice@resourcio.local", Department: strPtr("Engineering"), WeeklyCapacity: 40, Active: true},
		{ID: "res-bob", Name: "Bob Lee", Email: "bob@resourcio.local", Department: strPtr("Engineering"), WeeklyCapacity: 40, Active: true},
		{ID: "res-carol", Name: "Carol Mensah", Email: "carol@resourcio.local", Department: strPtr("Finance"), WeeklyCapacity: 32, Active: true},
	}
	for _, r := range resources {
		if err := store.Resources.CreateResource(ctx, r); err != nil {
			return err
		}
	}

	projects := []*models.Project{
		{
			ID: "proj-upgrade", Name: "Platform Upgrade",
			StartDate: monday.AddDate(0, -1, 0), EndDate: monday.AddDate(0, 4, 0),
			Status: models.ProjectStatusActive, Priority: 1, ProjectType: models.ProjectTypeChange,
		},
		{
			ID: "proj-reporting", Name: "Reporting Revamp",
			StartDate: monday.AddDate(0, 0, -14), EndDate: monday.AddDate(0, 2, 0),
			Status: models.ProjectStatusActive, Priority: 2, ProjectType: models.ProjectTypeBusiness,
		},
	}
	for _, p := range projects {
		if err := store.Projects.CreateProject(ctx, p); err != nil {
			return err
		}
	}

	allocations := []*models.Allocation{
		{
			ID: "alloc-alice-upgrade", ResourceID: "res-alice", ProjectID: "proj-upgrade",
			AllocatedHours: 24, StartDate: monday.AddDate(0, -1, 0), EndDate: monday.AddDate(0, 2, 0),
			Status: models.AllocationStatusActive,
		},
		{
			ID: "alloc-alice-reporting", ResourceID: "res-alice", ProjectID: "proj-reporting",
			AllocatedHours: 16, StartDate: monday, EndDate: monday.AddDate(0, 1, 0),
			Status: models.AllocationStatusActive,
		},
		{
			ID: "alloc-bob-upgrade", ResourceID: "res-bob", ProjectID: "proj-upgrade",
			AllocatedHours: 20, StartDate: monday.AddDate(0, -1, 0), EndDate: monday.AddDate(0, 2, 0),
			Status: models.AllocationStatusActive,
		},
	}
	for _, a := range allocations {
		if err := store.Allocations.CreateAllocation(ctx, a); err != nil {
			return err
		}
	}

	hash, err := service.HashPassword("demo1234")
	if err != nil {
		return err
	}

	users := []*models.User{
		{ID: "user-admin", Email: "admin@resourcio.local", PasswordHash: hash, Active: true, Roles: []string{string(rbac.RoleAdmin)}},
		{ID: "user-manager", Email: "manager@resourcio.local", PasswordHash: hash, Active: true, Roles: []string{string(rbac.RoleManagerChange)}},
		{ID: "user-alice", Email: "alice@resourcio.local", PasswordHash: hash, Active: true, Roles: []string{string(rbac.RoleRegularUser)}, ResourceID: strPtr("res-alice")},
		{ID: "user-bob", Email: "bob@resourcio.local", PasswordHash: hash, Active: true, Roles: []string{string(rbac.RoleRegularUser), string(rbac.RoleChangeLead)}, ResourceID: strPtr("res-bob")},
	}
	for _, u := range users {
		if err := store.Users.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }

// startOfISOWeek returns the Monday of t's ISO week at midnight UTC.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, 1-weekday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
