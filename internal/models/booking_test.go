package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC))

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.Equal(t, 59, got.Second())
	assert.Equal(t, 999_000_000, got.Nanosecond())
}

func TestBookingInWindow(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		from    *time.Time
		to      *time.Time
		want    bool
	}{
		{
			name:    "no window matches everything",
			booking: Booking{StartDate: date(2024, time.January, 10)},
			want:    true,
		},
		{
			name: "interval overlapping the window",
			booking: Booking{
				StartDate: date(2024, time.January, 10),
				EndDate:   datePtr(2024, time.January, 12),
			},
			from: datePtr(2024, time.January, 11),
			to:   datePtr(2024, time.January, 20),
			want: true,
		},
		{
			name: "excluded by the upper bound",
			booking: Booking{
				StartDate: date(2024, time.January, 10),
				EndDate:   datePtr(2024, time.January, 12),
			},
			to:   datePtr(2024, time.January, 5),
			want: false,
		},
		{
			name: "starting on the dateTo day is still included",
			booking: Booking{
				StartDate: date(2024, time.January, 20),
			},
			to:   datePtr(2024, time.January, 20),
			want: true,
		},
		{
			name: "excluded by the lower bound",
			booking: Booking{
				StartDate: date(2024, time.January, 1),
				EndDate:   datePtr(2024, time.January, 3),
			},
			from: datePtr(2024, time.January, 5),
			want: false,
		},
		{
			// Documents current behavior: a booking without an end date is
			// exempt from the lower bound, so an old single-day booking still
			// matches any later window as long as it passes the upper bound.
			name: "single-day booking before the window is still included",
			booking: Booking{
				StartDate: date(2024, time.January, 1),
			},
			from: datePtr(2024, time.June, 1),
			to:   datePtr(2024, time.June, 30),
			want: true,
		},
		{
			name: "single-day booking after the window is excluded",
			booking: Booking{
				StartDate: date(2024, time.July, 15),
			},
			from: datePtr(2024, time.June, 1),
			to:   datePtr(2024, time.June, 30),
			want: false,
		},
		{
			name: "end date on the dateFrom day is included",
			booking: Booking{
				StartDate: date(2024, time.January, 1),
				EndDate:   datePtr(2024, time.January, 5),
			},
			from: datePtr(2024, time.January, 5),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.InWindow(tt.from, tt.to))
		})
	}
}
