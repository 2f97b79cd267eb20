package repository

import (
	"context"
	"database/sql"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresSubmissionRepository handles database operations for weekly submissions.
type PostgresSubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *sql.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

const submissionColumns = `id, resource_id, week_key, status, submitted_at, total_hours, create_time, change_time`

// GetSubmission returns the submission for (resource, week).
func (r *PostgresSubmissionRepository) GetSubmission(ctx context.Context, resourceID, weekKey string) (*models.WeeklySubmission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM weekly_submissions
		WHERE resource_id = $1 AND week_key = $2
	`, resourceID, weekKey)
	return scanSubmission(row)
}

// SaveSubmission inserts or updates the submission for (resource, week).
func (r *PostgresSubmissionRepository) SaveSubmission(ctx context.Context, s *models.WeeklySubmission) error {
	s.ChangeTime = now()
	if s.CreateTime.IsZero() {
		s.CreateTime = s.ChangeTime
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_submissions (id, resource_id, week_key, status, submitted_at,
			total_hours, create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (resource_id, week_key) DO UPDATE SET
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			total_hours = EXCLUDED.total_hours,
			change_time = EXCLUDED.change_time
	`, s.ID, s.ResourceID, s.WeekKey, s.Status, s.SubmittedAt,
		s.TotalHours, s.CreateTime, s.ChangeTime)
	return err
}

// ListSubmissionsByWeek returns all submissions for a week, for the
// submission overview.
func (r *PostgresSubmissionRepository) ListSubmissionsByWeek(ctx context.Context, weekKey string) ([]*models.WeeklySubmission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM weekly_submissions
		WHERE week_key = $1
		ORDER BY resource_id
	`, weekKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

// ListSubmissionsByResource returns one resource's submissions, newest week first.
func (r *PostgresSubmissionRepository) ListSubmissionsByResource(ctx context.Context, resourceID string) ([]*models.WeeklySubmission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM weekly_submissions
		WHERE resource_id = $1
		ORDER BY week_key DESC
	`, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func collectSubmissions(rows *sql.Rows) ([]*models.WeeklySubmission, error) {
	var submissions []*models.WeeklySubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			continue
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// scanSubmission scans a single submission row.
func scanSubmission(row scanner) (*models.WeeklySubmission, error) {
	var s models.WeeklySubmission
	var submittedAt sql.NullTime

	err := row.Scan(
		&s.ID, &s.ResourceID, &s.WeekKey, &s.Status, &submittedAt,
		&s.TotalHours, &s.CreateTime, &s.ChangeTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if submittedAt.Valid {
		s.SubmittedAt = &submittedAt.Time
	}
	return &s, nil
}
