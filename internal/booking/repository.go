package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	// ErrOverlapConstraint surfaces the bookings_no_overlap exclusion
	// constraint, the authoritative guard against the check-then-insert race.
	ErrOverlapConstraint = errors.New("overlapping confirmed booking exists")
)

// exclusionViolation is the Postgres SQLSTATE raised by EXCLUDE constraints.
const exclusionViolation = "23P01"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, boatID, userID int, start, end time.Time) (*Booking, error) {
	query := `
		INSERT INTO bookings (boat_id, user_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, 'CONFIRMED')
		RETURNING id, boat_id, user_id, start_time, end_time, status, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, boatID, userID, start, end)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation {
			return nil, ErrOverlapConstraint
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, boat_id, user_id, start_time, end_time, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

// Cancel flips a confirmed booking to CANCELLED. Rows are never deleted.
func (r *repository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'CANCELLED'
		WHERE id = $1 AND status = 'CONFIRMED'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

// ListConfirmedByBoat fetches every confirmed booking for the boat; the
// overlap decision happens in application code, not in the query.
func (r *repository) ListConfirmedByBoat(ctx context.Context, boatID int) ([]Booking, error) {
	query := `
		SELECT id, boat_id, user_id, start_time, end_time, status, created_at
		FROM bookings
		WHERE boat_id = $1 AND status = 'CONFIRMED'
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, boatID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListUpcomingByUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.boat_id,
			b.user_id,
			b.start_time,
			b.end_time,
			b.status,
			b.created_at,
			bt.name AS boat_name,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN boats bt ON b.boat_id = bt.id
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1 AND b.status = 'CONFIRMED' AND b.end_time >= NOW()
		ORDER BY b.start_time ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListForDay(ctx context.Context, dayStart time.Time) ([]BookingWithDetails, error) {
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT
			b.id,
			b.boat_id,
			b.user_id,
			b.start_time,
			b.end_time,
			b.status,
			b.created_at,
			bt.name AS boat_name,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN boats bt ON b.boat_id = bt.id
		JOIN users u ON b.user_id = u.id
		WHERE b.status = 'CONFIRMED' AND b.start_time >= $1 AND b.start_time < $2
		ORDER BY b.start_time ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) CountByDay(ctx context.Context, start time.Time, days int) (map[string]int, error) {
	end := start.AddDate(0, 0, days)

	query := `
		SELECT start_time
		FROM bookings
		WHERE status = 'CONFIRMED' AND start_time >= $1 AND start_time < $2
	`

	var startTimes []time.Time
	err := r.db.SelectContext(ctx, &startTimes, query, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, t := range startTimes {
		counts[t.In(start.Location()).Format("2006-01-02")]++
	}

	return counts, nil
}

func (r *repository) ListAll(ctx context.Context) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.boat_id,
			b.user_id,
			b.start_time,
			b.end_time,
			b.status,
			b.created_at,
			bt.name AS boat_name,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN boats bt ON b.boat_id = bt.id
		JOIN users u ON b.user_id = u.id
		ORDER BY b.start_time DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
