package repository

import (
	"context"
	"database/sql"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresResourceRepository handles database operations for resources.
type PostgresResourceRepository struct {
	db *sql.DB
}

// NewResourceRepository creates a new resource repository.
func NewResourceRepository(db *sql.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

const resourceColumns = `id, name, email, department, weekly_capacity, active, deleted, create_time, change_time`

// CreateResource inserts a new resource.
func (r *PostgresResourceRepository) CreateResource(ctx context.Context, res *models.Resource) error {
	res.CreateTime = now()
	res.ChangeTime = res.CreateTime

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO resources (id, name, email, department, weekly_capacity, active, deleted, create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, res.ID, res.Name, res.Email, res.Department, res.WeeklyCapacity, res.Active, res.Deleted, res.CreateTime, res.ChangeTime)
	return err
}

// GetResource returns a single resource by ID.
func (r *PostgresResourceRepository) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+resourceColumns+`
		FROM resources
		WHERE id = $1
	`, id)
	return scanResource(row)
}

// GetResourceByEmail returns a single resource by email.
func (r *PostgresResourceRepository) GetResourceByEmail(ctx context.Context, email string) (*models.Resource, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+resourceColumns+`
		FROM resources
		WHERE email = $1
	`, email)
	return scanResource(row)
}

// UpdateResource updates a resource's mutable fields.
func (r *PostgresResourceRepository) UpdateResource(ctx context.Context, res *models.Resource) error {
	res.ChangeTime = now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE resources
		SET name = $1, email = $2, department = $3, weekly_capacity = $4, active = $5, change_time = $6
		WHERE id = $7 AND deleted = FALSE
	`, res.Name, res.Email, res.Department, res.WeeklyCapacity, res.Active, res.ChangeTime, res.ID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteResource flips the deleted flag; rows are never removed.
func (r *PostgresResourceRepository) SoftDeleteResource(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE resources
		SET deleted = TRUE, active = FALSE, change_time = $1
		WHERE id = $2 AND deleted = FALSE
	`, now(), id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListResources returns resources ordered by name.
func (r *PostgresResourceRepository) ListResources(ctx context.Context, includeDeleted bool) ([]*models.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE deleted = FALSE
		ORDER BY name`
	if includeDeleted {
		query = `
		SELECT ` + resourceColumns + `
		FROM resources
		ORDER BY name`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			continue
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanResource scans a single resource row.
func scanResource(row scanner) (*models.Resource, error) {
	var res models.Resource
	var department sql.NullString

	err := row.Scan(
		&res.ID, &res.Name, &res.Email, &department, &res.WeeklyCapacity,
		&res.Active, &res.Deleted, &res.CreateTime, &res.ChangeTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if department.Valid {
		res.Department = &department.String
	}
	return &res, nil
}
