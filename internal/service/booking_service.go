package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/events"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// BookingService enforces the conflict rule and status transitions on the
// booking ledger.
type BookingService struct {
	bookings   repository.BookingRepository
	services   repository.ServiceRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	pageSize   int
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	ServiceRepo repository.ServiceRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
}

// BookingDetail is a booking enriched with its account and service for
// display. TotalAmount reflects the service's current price, not a snapshot
// taken at booking time.
type BookingDetail struct {
	Booking  domain.Booking
	Customer domain.Account
	Service  domain.Service
}

// TotalAmount derives the amount owed from the current service price.
func (d *BookingDetail) TotalAmount() domain.Money {
	return d.Service.Price
}

// AdminBookingQuery describes the admin listing filters.
type AdminBookingQuery struct {
	Status    *domain.BookingStatus
	ServiceID *string
	From      *domain.Date
	To        *domain.Date
	Page      int
	PageSize  int
}

// Pagination describes one page of an admin listing.
type Pagination struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies, adminPageSize int) *BookingService {
	if adminPageSize <= 0 {
		adminPageSize = 15
	}
	return &BookingService{
		bookings:   deps.BookingRepo,
		services:   deps.ServiceRepo,
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
		pageSize:   adminPageSize,
	}
}

// Create books a service for an account on a date. Preconditions are checked
// in order and the first failure wins: the service must exist, must be
// active, and no open booking may already occupy the (account, service,
// date) slot. The conflict check and the insert commit atomically.
func (s *BookingService) Create(ctx context.Context, accountID, serviceID string, date domain.Date) (*BookingDetail, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Service not found")
		}
		return nil, err
	}
	if !svc.Available() {
		return nil, apperrors.NewInvalidState("Selected service is not available")
	}

	booking := &domain.Booking{
		AccountID:   accountID,
		ServiceID:   serviceID,
		BookingDate: date,
		Status:      domain.BookingStatusPending,
	}
	if err := s.bookings.CreateIfNoConflict(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrOpenBookingExists) {
			return nil, duplicateBooking()
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingCreated,
		SubjectID: booking.ID,
		Actor:     events.Actor{AccountID: accountID, Role: domain.RoleCustomer},
		Payload: events.BookingCreatedPayload{
			ServiceID:   serviceID,
			BookingDate: date.String(),
		},
	})
	return s.detail(ctx, booking, svc)
}

// GetForAccount fetches a booking ensuring ownership.
func (s *BookingService) GetForAccount(ctx context.Context, accountID, bookingID string) (*BookingDetail, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := auth.DecisionError(auth.CheckOwnership(accountID, booking.AccountID)); err != nil {
		return nil, err
	}
	return s.detail(ctx, booking, nil)
}

// AmendDate moves a booking to a new date. Only the owner may amend, only
// while the booking is pending, and the new slot must be free.
func (s *BookingService) AmendDate(ctx context.Context, accountID, bookingID string, newDate domain.Date) (*BookingDetail, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := auth.DecisionError(auth.CheckOwnership(accountID, booking.AccountID)); err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, apperrors.NewInvalidState("Cannot modify booking that is not pending")
	}

	oldDate := booking.BookingDate
	if err := s.bookings.UpdateDateIfNoConflict(ctx, booking, newDate); err != nil {
		if errors.Is(err, domain.ErrOpenBookingExists) {
			return nil, duplicateBooking()
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingDateChanged,
		SubjectID: booking.ID,
		Actor:     events.Actor{AccountID: accountID, Role: domain.RoleCustomer},
		Payload: events.BookingDateChangedPayload{
			OldDate: oldDate.String(),
			NewDate: newDate.String(),
		},
	})
	return s.detail(ctx, booking, nil)
}

// Cancel moves a booking to the terminal cancelled status. Permitted only by
// the owner and only from pending or confirmed.
func (s *BookingService) Cancel(ctx context.Context, accountID, bookingID string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := auth.DecisionError(auth.CheckOwnership(accountID, booking.AccountID)); err != nil {
		return err
	}
	if !domain.CanTransition(booking.Status, domain.BookingStatusCancelled) {
		return apperrors.NewInvalidState("Cannot cancel booking in current status")
	}

	oldStatus := booking.Status
	booking.Status = domain.BookingStatusCancelled
	if err := s.bookings.UpdateStatus(ctx, booking); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingCancelled,
		SubjectID: booking.ID,
		Actor:     events.Actor{AccountID: accountID, Role: domain.RoleCustomer},
		Payload:   events.BookingCancelledPayload{OldStatus: oldStatus},
	})
	return nil
}

// ListForAccount returns the account's bookings, newest first.
func (s *BookingService) ListForAccount(ctx context.Context, accountID string) ([]BookingDetail, error) {
	bookings, err := s.bookings.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, bookings)
}

// ListAdmin returns all bookings matching the filter, newest first, with
// pagination metadata.
func (s *BookingService) ListAdmin(ctx context.Context, query AdminBookingQuery) ([]BookingDetail, Pagination, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	perPage := query.PageSize
	if perPage <= 0 {
		perPage = s.pageSize
	}

	filter := repository.BookingFilter{
		ServiceID: query.ServiceID,
		Status:    query.Status,
		From:      query.From,
		To:        query.To,
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	}

	total, err := s.bookings.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	bookings, err := s.bookings.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	details, err := s.details(ctx, bookings)
	if err != nil {
		return nil, Pagination{}, err
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return details, Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

func (s *BookingService) detail(ctx context.Context, booking *domain.Booking, svc *domain.Service) (*BookingDetail, error) {
	if svc == nil {
		loaded, err := s.services.GetByID(ctx, booking.ServiceID)
		if err != nil {
			return nil, err
		}
		svc = loaded
	}
	account, err := s.accounts.GetByID(ctx, booking.AccountID)
	if err != nil {
		return nil, err
	}
	return &BookingDetail{Booking: *booking, Customer: *account, Service: *svc}, nil
}

func (s *BookingService) details(ctx context.Context, bookings []domain.Booking) ([]BookingDetail, error) {
	result := make([]BookingDetail, 0, len(bookings))
	accountMemo := map[string]*domain.Account{}
	serviceMemo := map[string]*domain.Service{}

	for i := range bookings {
		booking := &bookings[i]

		account, ok := accountMemo[booking.AccountID]
		if !ok {
			loaded, err := s.accounts.GetByID(ctx, booking.AccountID)
			if err != nil {
				return nil, err
			}
			account = loaded
			accountMemo[booking.AccountID] = account
		}

		svc, ok := serviceMemo[booking.ServiceID]
		if !ok {
			loaded, err := s.services.GetByID(ctx, booking.ServiceID)
			if err != nil {
				return nil, err
			}
			svc = loaded
			serviceMemo[booking.ServiceID] = svc
		}

		result = append(result, BookingDetail{Booking: *booking, Customer: *account, Service: *svc})
	}
	return result, nil
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *BookingService) loadBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func duplicateBooking() error {
	return apperrors.NewConflict("You already have a booking for this service on the selected date", nil)
}
