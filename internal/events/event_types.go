package events

import (
	"time"

	"github.com/spec-kit/booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated     EventType = "booking_created"
	EventBookingDateChanged EventType = "booking_date_changed"
	EventBookingCancelled   EventType = "booking_cancelled"
	EventServiceCreated     EventType = "service_created"
	EventServiceUpdated     EventType = "service_updated"
	EventServiceDeleted     EventType = "service_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	ServiceID   string `json:"service_id"`
	BookingDate string `json:"booking_date"`
}

// BookingDateChangedPayload payload.
type BookingDateChangedPayload struct {
	OldDate string `json:"old_date"`
	NewDate string `json:"new_date"`
}

// BookingCancelledPayload payload.
type BookingCancelledPayload struct {
	OldStatus domain.BookingStatus `json:"old_status"`
}

// ServiceChangedPayload payload for catalog create/update/delete.
type ServiceChangedPayload struct {
	Name   string               `json:"name"`
	Price  string               `json:"price"`
	Status domain.ServiceStatus `json:"status"`
}
