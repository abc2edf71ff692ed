package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(hour int) time.Time {
	return time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical ranges", day(10), day(12), day(10), day(12), true},
		{"partial overlap", day(10), day(12), day(11), day(13), true},
		{"contained range", day(8), day(20), day(10), day(12), true},
		{"abutting end to start", day(10), day(12), day(12), day(14), false},
		{"abutting start to end", day(12), day(14), day(10), day(12), false},
		{"disjoint", day(8), day(10), day(14), day(16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// The predicate is symmetric in its two ranges.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Booking{
		{ID: 1, Status: StatusConfirmed, StartTime: day(10), EndTime: day(12)},
		{ID: 2, Status: StatusCancelled, StartTime: day(14), EndTime: day(16)},
	}

	assert.True(t, HasConflict(existing, day(11), day(13)))
	assert.False(t, HasConflict(existing, day(12), day(14)), "abutting booking must not conflict")
	assert.False(t, HasConflict(existing, day(14), day(16)), "cancelled bookings never conflict")
	assert.False(t, HasConflict(nil, day(10), day(12)))
}

func TestHasConflict_FullDayBlocksSlots(t *testing.T) {
	fullDay := []Booking{
		{ID: 1, Status: StatusConfirmed, StartTime: day(DayStartHour), EndTime: day(DayEndHour)},
	}

	assert.True(t, HasConflict(fullDay, day(10), day(12)))
	assert.True(t, HasConflict(fullDay, day(18), day(20)))
}

func TestFindExact(t *testing.T) {
	bookings := []Booking{
		{ID: 1, UserID: 7, Status: StatusConfirmed, StartTime: day(10), EndTime: day(12)},
		{ID: 2, UserID: 7, Status: StatusCancelled, StartTime: day(12), EndTime: day(14)},
		{ID: 3, UserID: 9, Status: StatusConfirmed, StartTime: day(14), EndTime: day(16)},
	}

	found := FindExact(bookings, 7, day(10), day(12))
	if assert.NotNil(t, found) {
		assert.Equal(t, 1, found.ID)
	}

	assert.Nil(t, FindExact(bookings, 7, day(12), day(14)), "cancelled bookings are not returned")
	assert.Nil(t, FindExact(bookings, 7, day(14), day(16)), "other users' bookings are not returned")
	assert.Nil(t, FindExact(bookings, 7, day(10), day(11)))
}

func TestValidSlotRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"two hour slot", day(10), day(12), true},
		{"full day window", day(DayStartHour), day(DayEndHour), true},
		{"one hour slot", day(10), day(11), false},
		{"three hour slot", day(10), day(13), false},
		{"fourteen hours off anchor", day(5), day(19), false},
		{"reversed range", day(12), day(10), false},
		{"empty range", day(10), day(10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSlotRange(tt.start, tt.end))
		})
	}
}

func TestIsFullDayRange(t *testing.T) {
	assert.True(t, IsFullDayRange(day(DayStartHour), day(DayEndHour)))
	assert.False(t, IsFullDayRange(day(7), day(21)), "full day must start at the window open")

	offset := time.Date(2026, 9, 14, DayStartHour, 30, 0, 0, time.UTC)
	assert.False(t, IsFullDayRange(offset, offset.Add(14*time.Hour)))
}
