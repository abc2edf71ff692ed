package boat

import "time"

type Boat struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Capacity    int       `db:"capacity" json:"capacity"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// GroupIDs is the boat's access restriction list, decoded once at the
	// repository boundary. Empty means the boat is open to all members.
	GroupIDs []int `db:"-" json:"group_ids"`
}

type GroupRef struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type BoatWithGroups struct {
	Boat
	Groups []GroupRef `json:"groups"`
}

// BookingRef is the calendar slice of a booking shown on the boat detail.
type BookingRef struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BoatDetail struct {
	BoatWithGroups
	Bookings []BookingRef `json:"bookings"`
}

type CreateBoatRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url"`
	GroupIDs    []int   `json:"group_ids"`
}

type UpdateBoatRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type SetGroupsRequest struct {
	GroupIDs []int `json:"group_ids" binding:"required"`
}
