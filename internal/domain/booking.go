package domain

import (
	"errors"
	"time"
)

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// OpenStatuses are the states that block another booking for the same
// account, service, and date. Cancelled bookings do not count against it.
var OpenStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// ErrOpenBookingExists is returned by the ledger when an insert or date
// change would collide with an existing open booking for the same tuple.
var ErrOpenBookingExists = errors.New("open booking already exists for account, service and date")

// Booking links an account to a service on a calendar date. Account and
// service are referenced by identifier only; booking operations never mutate
// either entity.
type Booking struct {
	ID          string
	AccountID   string
	ServiceID   string
	BookingDate Date
	Status      BookingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Open reports whether the booking still occupies its (account, service,
// date) slot.
func (b *Booking) Open() bool {
	for _, status := range OpenStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// CanTransition reports whether a status change is permitted. Cancelled is
// terminal.
func CanTransition(current, next BookingStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
