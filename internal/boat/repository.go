package boat

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrBoatNotFound = errors.New("boat not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateBoatRequest) (*Boat, error) {
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	query := `
		INSERT INTO boats (name, description, capacity, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, capacity, image_url, is_active, created_at
	`

	var boat Boat
	err := r.db.GetContext(ctx, &boat, query, req.Name, req.Description, capacity, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if len(req.GroupIDs) > 0 {
		if err := r.SetGroups(ctx, boat.ID, req.GroupIDs); err != nil {
			return nil, err
		}
	}

	ids, err := r.groupIDs(ctx, boat.ID)
	if err != nil {
		return nil, err
	}
	boat.GroupIDs = ids

	return &boat, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Boat, error) {
	query := `
		SELECT id, name, description, capacity, image_url, is_active, created_at
		FROM boats
		WHERE id = $1
	`

	var boat Boat
	err := r.db.GetContext(ctx, &boat, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBoatNotFound
		}
		return nil, err
	}

	ids, err := r.groupIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	boat.GroupIDs = ids

	return &boat, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Boat, error) {
	query := `
		SELECT id, name, description, capacity, image_url, is_active, created_at
		FROM boats
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	var boats []Boat
	if err := r.db.SelectContext(ctx, &boats, query); err != nil {
		return nil, err
	}

	for i := range boats {
		ids, err := r.groupIDs(ctx, boats[i].ID)
		if err != nil {
			return nil, err
		}
		boats[i].GroupIDs = ids
	}

	return boats, nil
}

func (r *repository) ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error) {
	query := `
		SELECT id, name, description, capacity, image_url, is_active, created_at
		FROM boats
		ORDER BY name ASC
	`

	var boats []Boat
	if err := r.db.SelectContext(ctx, &boats, query); err != nil {
		return nil, err
	}

	result := make([]BoatWithGroups, 0, len(boats))
	for _, b := range boats {
		groups, err := r.GroupNames(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		for _, g := range groups {
			b.GroupIDs = append(b.GroupIDs, g.ID)
		}

		result = append(result, BoatWithGroups{Boat: b, Groups: groups})
	}

	return result, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateBoatRequest) error {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE boats
		SET name = $2, description = $3, capacity = $4, image_url = $5, is_active = $6
		WHERE id = $1
	`, id, req.Name, req.Description, capacity, req.ImageURL, isActive)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBoatNotFound
	}

	return nil
}

// SetGroups replaces the boat's whole restriction set.
func (r *repository) SetGroups(ctx context.Context, boatID int, groupIDs []int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM boat_groups WHERE boat_id = $1`, boatID); err != nil {
		return err
	}

	for _, groupID := range groupIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO boat_groups (boat_id, group_id) VALUES ($1, $2)`,
			boatID, groupID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GroupNames(ctx context.Context, boatID int) ([]GroupRef, error) {
	query := `
		SELECT g.id, g.name
		FROM groups g
		JOIN boat_groups bg ON bg.group_id = g.id
		WHERE bg.boat_id = $1
		ORDER BY g.name ASC
	`

	var groups []GroupRef
	if err := r.db.SelectContext(ctx, &groups, query, boatID); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *repository) groupIDs(ctx context.Context, boatID int) ([]int, error) {
	query := `
		SELECT group_id
		FROM boat_groups
		WHERE boat_id = $1
	`

	var ids []int
	if err := r.db.SelectContext(ctx, &ids, query, boatID); err != nil {
		return nil, err
	}

	return ids, nil
}
