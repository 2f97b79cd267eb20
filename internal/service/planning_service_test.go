package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/repository"
)

func newPlanningFixture(t *testing.T) (*PlanningService, *repository.Store) {
	t.Helper()
	ctx := context.Background()
	store, _ := repository.NewMemoryStore()

	require.NoError(t, store.Resources.CreateResource(ctx, &models.Resource{
		ID: "res-1", Name: "Alice Kim", Email: "alice@example.com",
		WeeklyCapacity: 40, Active: true,
	}))
	require.NoError(t, store.Projects.CreateProject(ctx, &models.Project{
		ID: "proj-1", Name: "Platform Upgrade", Status: models.ProjectStatusActive,
		ProjectType: models.ProjectTypeChange,
		StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Allocations.CreateAllocation(ctx, &models.Allocation{
		ID: "alloc-1", ResourceID: "res-1", ProjectID: "proj-1",
		AllocatedHours: 36,
		StartDate:      time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC),
		Status:         models.AllocationStatusActive,
	}))

	return NewPlanningService(store, planning.NewEngine()), store
}

func TestUtilizationReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanningFixture(t)

	report, err := svc.UtilizationReport(ctx,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, report.Resources, 1)
	rec := report.Resources[0]
	assert.Equal(t, 36.0, rec.TotalAllocatedHours)
	assert.Equal(t, 32.0, rec.EffectiveCapacity)
	assert.InDelta(t, 112.5, rec.UtilizationPercentage, 0.001)
	assert.Equal(t, planning.CategoryError, rec.Category)
	assert.Equal(t, 1, report.Conflicts)
}

func TestUtilizationReportWindowExcludes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPlanningFixture(t)

	// Window entirely before the allocation's range.
	report, err := svc.UtilizationReport(ctx,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, report.Resources, 1)
	assert.Equal(t, 0.0, report.Resources[0].TotalAllocatedHours)
	assert.Equal(t, planning.CategoryUnderUtilized, report.Resources[0].Category)
	assert.Equal(t, 0, report.Conflicts)
}

func TestWeekReportAppliesOverrides(t *testing.T) {
	ctx := context.Background()
	svc, store := newPlanningFixture(t)

	alloc, err := store.Allocations.GetAllocation(ctx, "alloc-1")
	require.NoError(t, err)
	alloc.WeeklyAllocations = map[string]float64{"2026-W33": 8}
	require.NoError(t, store.Allocations.UpdateAllocation(ctx, alloc))

	report, err := svc.WeekReport(ctx, "2026-W33")
	require.NoError(t, err)
	require.Len(t, report.Resources, 1)
	assert.InDelta(t, 25.0, report.Resources[0].UtilizationPercentage, 0.001)
	assert.Equal(t, planning.CategoryUnderUtilized, report.Resources[0].Category)
}

func TestWeekReportInvalidKey(t *testing.T) {
	svc, _ := newPlanningFixture(t)

	_, err := svc.WeekReport(context.Background(), "2026W33")
	assert.Error(t, err)
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	svc, store := newPlanningFixture(t)

	require.NoError(t, store.Projects.CreateProject(ctx, &models.Project{
		ID: "proj-2", Name: "Archived", Status: models.ProjectStatusClosure,
		ProjectType: models.ProjectTypeBusiness,
	}))

	summary, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ActiveProjects)
	assert.Equal(t, 1, summary.ActiveResources)
	assert.NotEmpty(t, summary.Week)
}
