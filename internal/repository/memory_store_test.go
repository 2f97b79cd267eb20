package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/models"
)

func testResource(id string) *models.Resource {
	return &models.Resource{
		ID:             id,
		Name:           "Resource " + id,
		Email:          id + "@example.com",
		WeeklyCapacity: 40,
		Active:         true,
	}
}

func testAllocation(id, resourceID string) *models.Allocation {
	return &models.Allocation{
		ID:             id,
		ResourceID:     resourceID,
		ProjectID:      "proj-1",
		AllocatedHours: 20,
		StartDate:      time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC),
		Status:         models.AllocationStatusActive,
	}
}

func TestMemoryResourceLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	require.NoError(t, store.Resources.CreateResource(ctx, testResource("res-1")))

	got, err := store.Resources.GetResource(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Resource res-1", got.Name)
	assert.False(t, got.CreateTime.IsZero())

	got.Name = "Renamed"
	require.NoError(t, store.Resources.UpdateResource(ctx, got))
	got, err = store.Resources.GetResource(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, store.Resources.SoftDeleteResource(ctx, "res-1"))

	// Soft delete keeps the row but hides it from the default listing.
	visible, err := store.Resources.ListResources(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := store.Resources.ListResources(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)
	assert.False(t, all[0].Active)

	assert.ErrorIs(t, store.Resources.SoftDeleteResource(ctx, "res-1"), ErrNotFound)
}

func TestMemoryResourceDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	require.NoError(t, store.Resources.CreateResource(ctx, testResource("res-1")))

	dup := testResource("res-2")
	dup.Email = "RES-1@example.com"
	assert.ErrorIs(t, store.Resources.CreateResource(ctx, dup), ErrDuplicate)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	a := testAllocation("alloc-1", "res-1")
	a.WeeklyAllocations = map[string]float64{"2026-W33": 8}
	require.NoError(t, store.Allocations.CreateAllocation(ctx, a))

	got, err := store.Allocations.GetAllocation(ctx, "alloc-1")
	require.NoError(t, err)
	got.WeeklyAllocations["2026-W33"] = 99

	again, err := store.Allocations.GetAllocation(ctx, "alloc-1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, again.WeeklyAllocations["2026-W33"])
}

func TestMemoryCountActiveAllocations(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	require.NoError(t, store.Allocations.CreateAllocation(ctx, testAllocation("alloc-1", "res-1")))

	planned := testAllocation("alloc-2", "res-1")
	planned.Status = models.AllocationStatusPlanned
	require.NoError(t, store.Allocations.CreateAllocation(ctx, planned))

	require.NoError(t, store.Allocations.CreateAllocation(ctx, testAllocation("alloc-3", "res-2")))

	count, err := store.Allocations.CountActiveAllocationsByResource(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryTimeEntryUpsert(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	entry := &models.TimeEntry{
		ID:           "te-1",
		AllocationID: "alloc-1",
		ResourceID:   "res-1",
		WeekKey:      "2026-W33",
		Monday:       8,
		Tuesday:      8,
	}
	require.NoError(t, store.TimeEntries.UpsertTimeEntry(ctx, entry))

	// Second upsert for the same (allocation, week) replaces the hours
	// and keeps the original identity.
	update := &models.TimeEntry{
		ID:           "te-other",
		AllocationID: "alloc-1",
		ResourceID:   "res-1",
		WeekKey:      "2026-W33",
		Monday:       4,
	}
	require.NoError(t, store.TimeEntries.UpsertTimeEntry(ctx, update))

	got, err := store.TimeEntries.GetTimeEntry(ctx, "alloc-1", "2026-W33")
	require.NoError(t, err)
	assert.Equal(t, "te-1", got.ID)
	assert.Equal(t, 4.0, got.Monday)
	assert.Equal(t, 0.0, got.Tuesday)

	entries, err := store.TimeEntries.ListTimeEntriesByResourceWeek(ctx, "res-1", "2026-W33")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemorySubmissionSave(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	submittedAt := time.Date(2026, 8, 14, 16, 0, 0, 0, time.UTC)
	sub := &models.WeeklySubmission{
		ID:          "sub-1",
		ResourceID:  "res-1",
		WeekKey:     "2026-W33",
		Status:      models.SubmissionStatusSubmitted,
		SubmittedAt: &submittedAt,
		TotalHours:  38,
	}
	require.NoError(t, store.Submissions.SaveSubmission(ctx, sub))

	got, err := store.Submissions.GetSubmission(ctx, "res-1", "2026-W33")
	require.NoError(t, err)
	assert.True(t, got.IsSubmitted())

	byWeek, err := store.Submissions.ListSubmissionsByWeek(ctx, "2026-W33")
	require.NoError(t, err)
	assert.Len(t, byWeek, 1)

	_, err = store.Submissions.GetSubmission(ctx, "res-1", "2026-W34")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRoles(t *testing.T) {
	ctx := context.Background()
	store, _ := NewMemoryStore()

	user := &models.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Active:       true,
		Roles:        []string{"regular_user"},
	}
	require.NoError(t, store.Users.CreateUser(ctx, user))
	assert.ErrorIs(t, store.Users.CreateUser(ctx, &models.User{ID: "user-2", Email: "ALICE@example.com"}), ErrDuplicate)

	require.NoError(t, store.Users.SetUserRoles(ctx, "user-1", []string{"manager_change", "change_lead"}))

	got, err := store.Users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"manager_change", "change_lead"}, got.Roles)
}
