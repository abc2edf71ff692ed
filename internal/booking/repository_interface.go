package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, boatID, userID int, start, end time.Time) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	Cancel(ctx context.Context, id int) error
	ListConfirmedByBoat(ctx context.Context, boatID int) ([]Booking, error)
	ListUpcomingByUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	ListForDay(ctx context.Context, dayStart time.Time) ([]BookingWithDetails, error)
	CountByDay(ctx context.Context, start time.Time, days int) (map[string]int, error)
	ListAll(ctx context.Context) ([]BookingWithDetails, error)
}
