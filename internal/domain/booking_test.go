package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		current BookingStatus
		next    BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}

func TestBookingOpen(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).Open())
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).Open())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).Open())
}
