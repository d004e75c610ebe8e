package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/events"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// CatalogService manages the service catalog. Mutations are admin-only;
// enforcement lives in the route gate, this layer assumes an authorized
// caller.
type CatalogService struct {
	services   repository.ServiceRepository
	dispatcher events.Dispatcher
}

// ServiceInput describes create/update payloads.
type ServiceInput struct {
	Name        string
	Description string
	Price       domain.Money
	Status      domain.ServiceStatus
}

// NewCatalogService constructs the service.
func NewCatalogService(services repository.ServiceRepository, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{services: services, dispatcher: dispatcher}
}

// Create adds a service to the catalog. Name must be unique; price must be
// non-negative; status defaults to active.
func (s *CatalogService) Create(ctx context.Context, actorID string, input ServiceInput) (*domain.Service, error) {
	if err := s.validate(ctx, &input, ""); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Status:      input.Status,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, actorID, events.EventServiceCreated, svc)
	return svc, nil
}

// Update replaces a service's mutable fields, re-validating name uniqueness
// against every other record.
func (s *CatalogService) Update(ctx context.Context, actorID, serviceID string, input ServiceInput) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service not found")
		}
		return nil, err
	}

	if err := s.validate(ctx, &input, svc.ID); err != nil {
		return nil, err
	}

	svc.Name = input.Name
	svc.Description = input.Description
	svc.Price = input.Price
	svc.Status = input.Status
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, actorID, events.EventServiceUpdated, svc)
	return svc, nil
}

// Delete removes a service from the catalog. Blocked while any booking, in
// any status, still references it; the admin should deactivate instead.
func (s *CatalogService) Delete(ctx context.Context, actorID, serviceID string) error {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Service not found")
		}
		return err
	}

	referenced, err := s.services.HasBookings(ctx, svc.ID)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewInvalidState("Cannot delete service with existing bookings. Consider deactivating instead.")
	}

	if err := s.services.Delete(ctx, svc.ID); err != nil {
		return err
	}

	s.publishEvent(ctx, actorID, events.EventServiceDeleted, svc)
	return nil
}

// Get returns a service regardless of status (admin view).
func (s *CatalogService) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service not found")
		}
		return nil, err
	}
	return svc, nil
}

// List returns every service, newest first (admin view).
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx, repository.ServiceFilter{Order: repository.ServiceOrderCreatedDesc})
}

// ListActive returns bookable services sorted by name (customer view).
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx, repository.ServiceFilter{ActiveOnly: true, Order: repository.ServiceOrderNameAsc})
}

// GetActive returns a service only when it is bookable. Inactive services
// read as not found for customers.
func (s *CatalogService) GetActive(ctx context.Context, serviceID string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service not available")
		}
		return nil, err
	}
	if !svc.Available() {
		return nil, apperrors.NewNotFound("Service not available")
	}
	return svc, nil
}

func (s *CatalogService) validate(ctx context.Context, input *ServiceInput, excludeID string) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	details := map[string]any{}
	if input.Name == "" {
		details["name"] = []string{"Service name is required"}
	}
	if input.Description == "" {
		details["description"] = []string{"Service description is required"}
	}
	if input.Price.Negative() {
		details["price"] = []string{"Price cannot be negative"}
	}
	if input.Status == "" {
		input.Status = domain.ServiceStatusActive
	}
	if !input.Status.Valid() {
		details["status"] = []string{"Status must be either active or inactive"}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("The given data was invalid", details)
	}

	existing, err := s.services.GetByName(ctx, input.Name)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}
	if err == nil && existing.ID != excludeID {
		return apperrors.NewConflict("Service name already exists", map[string]any{
			"name": []string{"Service name already exists"},
		})
	}
	return nil
}

func (s *CatalogService) publishEvent(ctx context.Context, actorID string, eventType events.EventType, svc *domain.Service) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: svc.ID,
		Actor:     events.Actor{AccountID: actorID, Role: domain.RoleAdmin},
		Timestamp: time.Now(),
		Payload: events.ServiceChangedPayload{
			Name:   svc.Name,
			Price:  svc.Price.String(),
			Status: svc.Status,
		},
	})
}
