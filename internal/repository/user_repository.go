package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/resourcio/resourcio/internal/models"
)

// PostgresUserRepository handles database operations for users and roles.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts a new user with its roles.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u *models.User) error {
	u.CreateTime = now()
	u.ChangeTime = u.CreateTime

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, resource_id, active, create_time, change_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.PasswordHash, u.ResourceID, u.Active, u.CreateTime, u.ChangeTime)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}

	for _, role := range u.Roles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		`, u.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetUser returns a single user with roles by ID.
func (r *PostgresUserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, resource_id, active, create_time, change_time
		FROM users
		WHERE id = $1
	`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail returns a single user with roles by email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, resource_id, active, create_time, change_time
		FROM users
		WHERE email = $1
	`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all users with their roles.
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password_hash, resource_id, active, create_time, change_time
		FROM users
		ORDER BY email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, u := range users {
		if err := r.loadRoles(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// SetUserRoles replaces a user's role assignments.
func (r *PostgresUserRepository) SetUserRoles(ctx context.Context, userID string, roles []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		`, userID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresUserRepository) loadRoles(ctx context.Context, u *models.User) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role
	`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	u.Roles = nil
	for rows.Next() {
		var role string
		if rows.Scan(&role) == nil {
			u.Roles = append(u.Roles, role)
		}
	}
	return rows.Err()
}

// scanUser scans a single user row.
func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var resourceID sql.NullString

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &resourceID, &u.Active, &u.CreateTime, &u.ChangeTime)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if resourceID.Valid {
		u.ResourceID = &resourceID.String
	}
	return &u, nil
}
