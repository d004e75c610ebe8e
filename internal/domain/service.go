package domain

import "time"

// ServiceStatus enumerates catalog visibility states.
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// Valid reports whether the status is a known member of the enumeration.
func (s ServiceStatus) Valid() bool {
	return s == ServiceStatusActive || s == ServiceStatusInactive
}

// Service is a bookable offering in the catalog.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       Money
	Status      ServiceStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available reports whether customers may book the service.
func (s *Service) Available() bool {
	return s.Status == ServiceStatusActive
}
