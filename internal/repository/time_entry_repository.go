package repository

import (
	"context"
	"database/sql"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresTimeEntryRepository handles database operations for time entries.
type PostgresTimeEntryRepository struct {
	db *sql.DB
}

// NewTimeEntryRepository creates a new time entry repository.
func NewTimeEntryRepository(db *sql.DB) *PostgresTimeEntryRepository {
	return &PostgresTimeEntryRepository{db: db}
}

const timeEntryColumns = `id, allocation_id, resource_id, week_key,
	monday, tuesday, wednesday, thursday, friday, saturday, sunday,
	create_time, change_time`

// UpsertTimeEntry inserts or replaces the entry for (allocation, week).
func (r *PostgresTimeEntryRepository) UpsertTimeEntry(ctx context.Context, e *models.TimeEntry) error {
	e.ChangeTime = now()
	if e.CreateTime.IsZero() {
		e.CreateTime = e.ChangeTime
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO time_entries (id, allocation_id, resource_id, week_key,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (allocation_id, week_key) DO UPDATE SET
			monday = EXCLUDED.monday,
			tuesday = EXCLUDED.tuesday,
			wednesday = EXCLUDED.wednesday,
			thursday = EXCLUDED.thursday,
			friday = EXCLUDED.friday,
			saturday = EXCLUDED.saturday,
			sunday = EXCLUDED.sunday,
			change_time = EXCLUDED.change_time
	`, e.ID, e.AllocationID, e.ResourceID, e.WeekKey,
		e.Monday, e.Tuesday, e.Wednesday, e.Thursday, e.Friday, e.Saturday, e.Sunday,
		e.CreateTime, e.ChangeTime)
	return err
}

// GetTimeEntry returns the entry for (allocation, week).
func (r *PostgresTimeEntryRepository) GetTimeEntry(ctx context.Context, allocationID, weekKey string) (*models.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE allocation_id = $1 AND week_key = $2
	`, allocationID, weekKey)
	return scanTimeEntry(row)
}

// ListTimeEntriesByResourceWeek returns one resource's entries for a week.
func (r *PostgresTimeEntryRepository) ListTimeEntriesByResourceWeek(ctx context.Context, resourceID, weekKey string) ([]*models.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE resource_id = $1 AND week_key = $2
		ORDER BY allocation_id
	`, resourceID, weekKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// scanTimeEntry scans a single time entry row.
func scanTimeEntry(row scanner) (*models.TimeEntry, error) {
	var e models.TimeEntry

	err := row.Scan(
		&e.ID, &e.AllocationID, &e.ResourceID, &e.WeekKey,
		&e.Monday, &e.Tuesday, &e.Wednesday, &e.Thursday, &e.Friday, &e.Saturday, &e.Sunday,
		&e.CreateTime, &e.ChangeTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
