package group

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGroupNotFound = errors.New("group not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string) (*Group, error) {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	var group Group
	err := r.db.GetContext(ctx, &group, query, name)
	if err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Group, error) {
	query := `
		SELECT id, name, created_at
		FROM groups
		WHERE id = $1
	`

	var group Group
	err := r.db.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	return &group, nil
}

func (r *repository) GetDetails(ctx context.Context, id int) (*GroupDetails, error) {
	group, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	memberQuery := `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN user_groups ug ON ug.user_id = u.id
		WHERE ug.group_id = $1
		ORDER BY u.name ASC
	`

	var members []MemberRef
	if err := r.db.SelectContext(ctx, &members, memberQuery, id); err != nil {
		return nil, err
	}

	boatQuery := `
		SELECT b.id, b.name
		FROM boats b
		JOIN boat_groups bg ON bg.boat_id = b.id
		WHERE bg.group_id = $1
		ORDER BY b.name ASC
	`

	var boats []BoatRef
	if err := r.db.SelectContext(ctx, &boats, boatQuery, id); err != nil {
		return nil, err
	}

	return &GroupDetails{Group: *group, Members: members, Boats: boats}, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Group, error) {
	query := `
		SELECT id, name, created_at
		FROM groups
		ORDER BY name ASC
	`

	var groups []Group
	err := r.db.SelectContext(ctx, &groups, query)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *repository) Rename(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// Delete removes the group; membership and boat association rows go with it
// via ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (r *repository) ListIDsForUser(ctx context.Context, userID int) ([]int, error) {
	query := `
		SELECT group_id
		FROM user_groups
		WHERE user_id = $1
	`

	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) IsUserAdmin(ctx context.Context, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM user_groups ug
			JOIN groups g ON g.id = ug.group_id
			WHERE ug.user_id = $1 AND LOWER(g.name) = LOWER($2)
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, AdminGroupName)
	if err != nil {
		return false, err
	}

	return exists, nil
}
