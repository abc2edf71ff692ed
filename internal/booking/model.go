package booking

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

type Booking struct {
	ID        int       `db:"id" json:"id"`
	BoatID    int       `db:"boat_id" json:"boat_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	BoatName  string `db:"boat_name" json:"boat_name"`
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	BoatID    int       `json:"boat_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type DailySummary struct {
	Counts map[string]int `json:"counts"`
}
