package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresAllocationRepository handles database operations for allocations.
// The weekly_allocations column is a JSONB map of ISO week key to hours.
type PostgresAllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new allocation repository.
func NewAllocationRepository(db *sql.DB) *PostgresAllocationRepository {
	return &PostgresAllocationRepository{db: db}
}

const allocationColumns = `id, resource_id, project_id, allocated_hours, start_date, end_date,
	status, weekly_allocations, create_time, change_time`

// CreateAllocation inserts a new allocation.
func (r *PostgresAllocationRepository) CreateAllocation(ctx context.Context, a *models.Allocation) error {
	a.CreateTime = now()
	a.ChangeTime = a.CreateTime

	weekly, err := marshalWeekly(a.WeeklyAllocations)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO resource_allocations (id, resource_id, project_id, allocated_hours,
			start_date, end_date, status, weekly_allocations, create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, a.ID, a.ResourceID, a.ProjectID, a.AllocatedHours,
		a.StartDate, a.EndDate, a.Status, weekly, a.CreateTime, a.ChangeTime)
	return err
}

// GetAllocation returns a single allocation by ID.
func (r *PostgresAllocationRepository) GetAllocation(ctx context.Context, id string) (*models.Allocation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+allocationColumns+`
		FROM resource_allocations
		WHERE id = $1
	`, id)
	return scanAllocation(row)
}

// UpdateAllocation updates an allocation's mutable fields.
func (r *PostgresAllocationRepository) UpdateAllocation(ctx context.Context, a *models.Allocation) error {
	a.ChangeTime = now()

	weekly, err := marshalWeekly(a.WeeklyAllocations)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE resource_allocations
		SET resource_id = $1, project_id = $2, allocated_hours = $3, start_date = $4,
			end_date = $5, status = $6, weekly_allocations = $7, change_time = $8
		WHERE id = $9
	`, a.ResourceID, a.ProjectID, a.AllocatedHours, a.StartDate,
		a.EndDate, a.Status, weekly, a.ChangeTime, a.ID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllocation removes an allocation.
func (r *PostgresAllocationRepository) DeleteAllocation(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resource_allocations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAllocations returns all allocations ordered by start date.
func (r *PostgresAllocationRepository) ListAllocations(ctx context.Context) ([]*models.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+allocationColumns+`
		FROM resource_allocations
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllocations(rows)
}

// ListAllocationsByResource returns one resource's allocations.
func (r *PostgresAllocationRepository) ListAllocationsByResource(ctx context.Context, resourceID string) ([]*models.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+allocationColumns+`
		FROM resource_allocations
		WHERE resource_id = $1
		ORDER BY start_date
	`, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllocations(rows)
}

// CountActiveAllocationsByResource counts a resource's active allocations.
// Used to block hard-deleting resources that are still committed.
func (r *PostgresAllocationRepository) CountActiveAllocationsByResource(ctx context.Context, resourceID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM resource_allocations
		WHERE resource_id = $1 AND status = $2
	`, resourceID, models.AllocationStatusActive).Scan(&count)
	return count, err
}

func collectAllocations(rows *sql.Rows) ([]*models.Allocation, error) {
	var allocations []*models.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			continue
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// scanAllocation scans a single allocation row.
func scanAllocation(row scanner) (*models.Allocation, error) {
	var a models.Allocation
	var weekly []byte

	err := row.Scan(
		&a.ID, &a.ResourceID, &a.ProjectID, &a.AllocatedHours, &a.StartDate, &a.EndDate,
		&a.Status, &weekly, &a.CreateTime, &a.ChangeTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(weekly) > 0 {
		// Malformed JSON leaves the override map empty rather than
		// failing the whole read.
		_ = json.Unmarshal(weekly, &a.WeeklyAllocations)
	}
	return &a, nil
}

func marshalWeekly(m map[string]float64) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
