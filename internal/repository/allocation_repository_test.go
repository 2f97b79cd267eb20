package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAllocationRepo(t *testing.T) (*PostgresAllocationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAllocationRepository(db), mock
}

func allocationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "resource_id", "project_id", "allocated_hours", "start_date", "end_date",
		"status", "weekly_allocations", "create_time", "change_time",
	})
}

func TestGetAllocationWeeklyOverrides(t *testing.T) {
	repo, mock := newMockAllocationRepo(t)

	ts := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT .+ FROM resource_allocations\s+WHERE id =`).
		WithArgs("alloc-1").
		WillReturnRows(allocationRows().AddRow(
			"alloc-1", "res-1", "proj-1", 20.0,
			time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC),
			"active", []byte(`{"2026-W33":8,"2026-W34":12}`), ts, ts,
		))

	a, err := repo.GetAllocation(context.Background(), "alloc-1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, a.WeeklyAllocations["2026-W33"])
	assert.Equal(t, 12.0, a.WeeklyAllocations["2026-W34"])
}

func TestGetAllocationMalformedWeeklyJSON(t *testing.T) {
	repo, mock := newMockAllocationRepo(t)

	ts := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT .+ FROM resource_allocations`).
		WithArgs("alloc-1").
		WillReturnRows(allocationRows().AddRow(
			"alloc-1", "res-1", "proj-1", 20.0, ts, ts,
			"active", []byte(`{broken`), ts, ts,
		))

	a, err := repo.GetAllocation(context.Background(), "alloc-1")
	require.NoError(t, err)
	assert.Empty(t, a.WeeklyAllocations)
}

func TestDeleteAllocationNotFound(t *testing.T) {
	repo, mock := newMockAllocationRepo(t)

	mock.ExpectExec(`DELETE FROM resource_allocations`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteAllocation(context.Background(), "missing"), ErrNotFound)
}

func TestCountActiveAllocationsByResource(t *testing.T) {
	repo, mock := newMockAllocationRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM resource_allocations`).
		WithArgs("res-1", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveAllocationsByResource(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
