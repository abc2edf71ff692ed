package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/adamg02/boatbooking/internal/db"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, is_active, created_at
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, name, email, passwordHash)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at
		FROM users
		WHERE email = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) IsActive(ctx context.Context, id int) (bool, error) {
	query := `SELECT is_active FROM users WHERE id = $1`

	var active bool
	err := r.db.GetContext(ctx, &active, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return active, nil
}

func (r *repository) ListWithGroups(ctx context.Context) ([]UserWithGroups, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at
		FROM users
		ORDER BY created_at DESC
	`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	result := make([]UserWithGroups, 0, len(users))
	for _, u := range users {
		groupQuery := `
			SELECT g.id, g.name
			FROM groups g
			JOIN user_groups ug ON ug.group_id = g.id
			WHERE ug.user_id = $1
			ORDER BY g.name ASC
		`

		var groups []GroupRef
		if err := r.db.SelectContext(ctx, &groups, groupQuery, u.ID); err != nil {
			return nil, err
		}

		result = append(result, UserWithGroups{User: u, Groups: groups})
	}

	return result, nil
}

// SetGroups replaces the user's whole membership set.
func (r *repository) SetGroups(ctx context.Context, userID int, groupIDs []int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, groupID := range groupIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`,
			userID, groupID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) SetActive(ctx context.Context, userID int, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = $2 WHERE id = $1`,
		userID, active,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
