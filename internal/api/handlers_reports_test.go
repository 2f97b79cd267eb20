package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/planning"
)

func TestUtilizationReportByWindow(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 36)

	w := f.do(t, "manager", http.MethodGet, "/api/v1/reports/utilization?start=2026-08-01&end=2026-08-31", nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var summary planning.Summary
	decodeData(t, w, &summary)
	require.Len(t, summary.Resources, 1)
	rec := summary.Resources[0]
	require.Equal(t, 36.0, rec.TotalAllocatedHours)
	require.Equal(t, 32.0, rec.EffectiveCapacity)
	require.InDelta(t, 112.5, rec.UtilizationPercentage, 0.001)
	require.Equal(t, planning.CategoryError, rec.Category)
	require.Equal(t, 1, summary.Conflicts)
}

func TestUtilizationReportByWeekOverride(t *testing.T) {
	f := newFixture(t)
	seedProject(t, f)

	w := f.do(t, "manager", http.MethodPost, "/api/v1/allocations", map[string]interface{}{
		"resourceId":     "res-regular",
		"projectId":      projectID(t, f),
		"allocatedHours": 36,
		"startDate":      "2026-08-03T00:00:00Z",
		"endDate":        "2026-09-27T00:00:00Z",
		"status":         "active",
		"weeklyAllocations": map[string]float64{
			"2026-W33": 8,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, "manager", http.MethodGet, "/api/v1/reports/utilization?week=2026-W33", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary planning.Summary
	decodeData(t, w, &summary)
	require.Len(t, summary.Resources, 1)
	require.InDelta(t, 25.0, summary.Resources[0].UtilizationPercentage, 0.001)
	require.Equal(t, planning.CategoryUnderUtilized, summary.Resources[0].Category)
}

func TestUtilizationReportBadInputs(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "manager", http.MethodGet, "/api/v1/reports/utilization?week=garbage", nil)
	requireErrorCode(t, w, http.StatusBadRequest, "planning:invalid_week_key")

	w = f.do(t, "manager", http.MethodGet, "/api/v1/reports/utilization", nil)
	requireErrorCode(t, w, http.StatusBadRequest, "planning:invalid_window")
}
