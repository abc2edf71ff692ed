package booking

import "time"

const (
	// SlotDuration is the length of an ad-hoc booking slot.
	SlotDuration = 2 * time.Hour

	// DayStartHour and DayEndHour bound the daily booking window; a
	// full-day booking spans exactly [06:00, 20:00).
	DayStartHour = 6
	DayEndHour   = 20

	// BookingWindowDays is how far ahead a slot may be booked.
	BookingWindowDays = 28
)

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. Ranges that merely touch do not conflict: a booking ending at
// 12:00 leaves the 12:00 slot free. This is the only overlap predicate in
// the codebase; conflict checks must never be pushed into a store query.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// HasConflict reports whether the candidate range collides with any
// confirmed booking in the list. Cancelled bookings never count.
func HasConflict(bookings []Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Status != StatusConfirmed {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

// FindExact returns the user's confirmed booking whose range equals the
// candidate exactly, or nil. Used by the calendar's own-booking cancel path.
func FindExact(bookings []Booking, userID int, start, end time.Time) *Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.Status != StatusConfirmed || b.UserID != userID {
			continue
		}
		if b.StartTime.Equal(start) && b.EndTime.Equal(end) {
			return b
		}
	}
	return nil
}

// IsFullDayRange reports whether [start,end) is the canonical full-day
// window, 06:00 to 20:00 on the same day in start's location.
func IsFullDayRange(start, end time.Time) bool {
	if start.Hour() != DayStartHour || start.Minute() != 0 || start.Second() != 0 {
		return false
	}
	return end.Equal(start.Add(time.Duration(DayEndHour-DayStartHour) * time.Hour))
}

// ValidSlotRange accepts exactly the two canonical durations: a 2-hour
// ad-hoc slot or the full-day window.
func ValidSlotRange(start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}
	if end.Sub(start) == SlotDuration {
		return true
	}
	return IsFullDayRange(start, end)
}
