package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusAt(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	b := &Booking{StartDate: start, EndDate: end}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", start.Add(-time.Hour), BookingStatusUpcoming},
		{"at start", start, BookingStatusActive},
		{"mid range", start.AddDate(0, 0, 5), BookingStatusActive},
		{"at end", end, BookingStatusActive},
		{"after end", end.Add(time.Minute), BookingStatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.StatusAt(tc.now))
		})
	}
}
