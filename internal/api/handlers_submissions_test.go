package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/models"
)

func saveEntry(t *testing.T, f *fixture, user string, monday float64) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, user, http.MethodPut, "/api/v1/time-entries", gin.H{
		"allocationId": "alloc-1",
		"weekKey":      "2026-W33",
		"monday":       monday,
		"tuesday":      8,
	})
}

func TestTimeEntryRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 20)

	w := saveEntry(t, f, "regular", 8)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = f.do(t, "regular", http.MethodGet, "/api/v1/time-entries?week=2026-W33", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries    []models.TimeEntry      `json:"entries"`
		Submission models.WeeklySubmission `json:"submission"`
	}
	decodeData(t, w, &resp)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, 8.0, resp.Entries[0].Monday)
	require.Equal(t, models.SubmissionStatusDraft, resp.Submission.Status)
}

func TestTimeEntryRejectsForeignResource(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 20)

	// Managers carry resource_management and may write for others.
	w := f.do(t, "manager", http.MethodPut, "/api/v1/time-entries", gin.H{
		"allocationId": "alloc-1",
		"resourceId":   "res-regular",
		"weekKey":      "2026-W33",
		"monday":       4,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	// A regular user without a linked resource match is refused.
	w = f.do(t, "regular", http.MethodPut, "/api/v1/time-entries", gin.H{
		"allocationId": "alloc-1",
		"resourceId":   "res-other",
		"weekKey":      "2026-W33",
		"monday":       4,
	})
	requireErrorCode(t, w, http.StatusForbidden, "core:forbidden")
}

func TestSubmitLocksWeek(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 20)

	w := saveEntry(t, f, "regular", 8)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "regular", http.MethodPost, "/api/v1/submissions/submit", gin.H{"weekKey": "2026-W33"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var sub models.WeeklySubmission
	decodeData(t, w, &sub)
	require.Equal(t, models.SubmissionStatusSubmitted, sub.Status)
	require.Equal(t, 16.0, sub.TotalHours)

	// Entry writes into the locked week now conflict.
	w = saveEntry(t, f, "regular", 2)
	requireErrorCode(t, w, http.StatusConflict, "submissions:week_locked")

	// Double submit conflicts.
	w = f.do(t, "regular", http.MethodPost, "/api/v1/submissions/submit", gin.H{"weekKey": "2026-W33"})
	requireErrorCode(t, w, http.StatusConflict, "submissions:already_submitted")
}

func TestUnsubmitReopensWeek(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 20)

	w := f.do(t, "regular", http.MethodPost, "/api/v1/submissions/submit", gin.H{"weekKey": "2026-W33"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "regular", http.MethodPost, "/api/v1/submissions/unsubmit", gin.H{"weekKey": "2026-W33"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = saveEntry(t, f, "regular", 2)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUnsubmitDraftConflicts(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "regular", http.MethodPost, "/api/v1/submissions/unsubmit", gin.H{"weekKey": "2026-W33"})
	requireErrorCode(t, w, http.StatusConflict, "submissions:not_submitted")
}

func TestSubmissionStatusBadWeek(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "regular", http.MethodGet, "/api/v1/submissions?week=2026W33", nil)
	requireErrorCode(t, w, http.StatusBadRequest, "planning:invalid_week_key")
}

func TestSubmissionOverview(t *testing.T) {
	f := newFixture(t)
	f.seedAllocation(t, "alloc-1", "res-regular", 20)

	w := f.do(t, "regular", http.MethodPost, "/api/v1/submissions/submit", gin.H{"weekKey": "2026-W33"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "controller", http.MethodGet, "/api/v1/submissions/overview?week=2026-W33", nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Week      string `json:"week"`
		Resources []struct {
			Submitted bool `json:"submitted"`
		} `json:"resources"`
	}
	decodeData(t, w, &resp)
	require.Equal(t, "2026-W33", resp.Week)
	require.Len(t, resp.Resources, 1)
	require.True(t, resp.Resources[0].Submitted)
}
