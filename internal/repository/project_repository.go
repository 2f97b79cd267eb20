package repository

import (
	"context"
	"database/sql"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresProjectRepository handles database operations for projects.
type PostgresProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, name, start_date, end_date, status, priority, project_type,
	director_id, change_lead_id, business_lead_id, create_time, change_time`

// CreateProject inserts a new project.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p *models.Project) error {
	p.CreateTime = now()
	p.ChangeTime = p.CreateTime

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, start_date, end_date, status, priority, project_type,
			director_id, change_lead_id, business_lead_id, create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, p.ID, p.Name, p.StartDate, p.EndDate, p.Status, p.Priority, p.ProjectType,
		p.DirectorID, p.ChangeLeadID, p.BusinessLeadID, p.CreateTime, p.ChangeTime)
	return err
}

// GetProject returns a single project by ID.
func (r *PostgresProjectRepository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, id)
	return scanProject(row)
}

// UpdateProject updates a project's mutable fields.
func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, p *models.Project) error {
	p.ChangeTime = now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = $1, start_date = $2, end_date = $3, status = $4, priority = $5,
			project_type = $6, director_id = $7, change_lead_id = $8, business_lead_id = $9,
			change_time = $10
		WHERE id = $11
	`, p.Name, p.StartDate, p.EndDate, p.Status, p.Priority,
		p.ProjectType, p.DirectorID, p.ChangeLeadID, p.BusinessLeadID, p.ChangeTime, p.ID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project.
func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProjects returns projects ordered by priority then name.
func (r *PostgresProjectRepository) ListProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY priority, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// scanProject scans a single project row.
func scanProject(row scanner) (*models.Project, error) {
	var p models.Project
	var director, changeLead, businessLead sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.Priority, &p.ProjectType,
		&director, &changeLead, &businessLead, &p.CreateTime, &p.ChangeTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if director.Valid {
		p.DirectorID = &director.String
	}
	if changeLead.Valid {
		p.ChangeLeadID = &changeLead.String
	}
	if businessLead.Valid {
		p.BusinessLeadID = &businessLead.String
	}
	return &p, nil
}
