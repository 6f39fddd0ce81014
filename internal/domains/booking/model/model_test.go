package model_test

import (
	"testing"
	"time"

	"lodge/internal/domains/booking/model"
)

func TestBookingNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		nights   int
	}{
		{
			name:     "single night",
			checkIn:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			nights:   1,
		},
		{
			name:     "week long stay",
			checkIn:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			nights:   7,
		},
		{
			name:     "stay across month boundary",
			checkIn:  time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			nights:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{
				CheckInDate:  tt.checkIn,
				CheckOutDate: tt.checkOut,
			}

			if got := booking.Nights(); got != tt.nights {
				t.Errorf("Nights() = %d, want %d", got, tt.nights)
			}
		})
	}
}
