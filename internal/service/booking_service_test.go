package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/events"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

type bookingFixture struct {
	svc      *BookingService
	accounts *fakeAccountRepo
	services *fakeServiceRepo
	bookings *fakeBookingRepo
	events   *recordingDispatcher
	customer *domain.Account
	other    *domain.Account
	haircut  *domain.Service
	massage  *domain.Service
	inactive *domain.Service
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	accounts := newFakeAccountRepo()
	services := newFakeServiceRepo()
	bookings := newFakeBookingRepo()
	dispatcher := &recordingDispatcher{}

	f := &bookingFixture{
		accounts: accounts,
		services: services,
		bookings: bookings,
		events:   dispatcher,
		customer: accounts.add(&domain.Account{Name: "Ada", Email: "ada@example.com", Role: domain.RoleCustomer, Active: true}),
		other:    accounts.add(&domain.Account{Name: "Bob", Email: "bob@example.com", Role: domain.RoleCustomer, Active: true}),
		haircut:  services.add(&domain.Service{Name: "Haircut", Description: "A haircut", Price: 2500, Status: domain.ServiceStatusActive}),
		massage:  services.add(&domain.Service{Name: "Massage", Description: "A massage", Price: 8000, Status: domain.ServiceStatusActive}),
		inactive: services.add(&domain.Service{Name: "Retired", Description: "Gone", Price: 1000, Status: domain.ServiceStatusInactive}),
	}
	f.svc = NewBookingService(BookingDependencies{
		BookingRepo: bookings,
		ServiceRepo: services,
		AccountRepo: accounts,
		Dispatcher:  dispatcher,
	}, 15)
	return f
}

func mustDate(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func requireDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, status, domainErr.HTTPStatus)
	assert.Equal(t, message, domainErr.Message)
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusPending, detail.Booking.Status)
	assert.Equal(t, "2026-09-10", detail.Booking.BookingDate.String())
	assert.Equal(t, f.haircut.Price, detail.TotalAmount())
	assert.Equal(t, f.customer.ID, detail.Customer.ID)
	assert.NotEmpty(t, detail.Booking.ID)

	require.Len(t, f.events.published, 1)
	assert.Equal(t, events.EventBookingCreated, f.events.published[0].Type)
	assert.Equal(t, detail.Booking.ID, f.events.published[0].SubjectID)
}

func TestCreateBookingUnknownService(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), f.customer.ID, "missing", mustDate(t, "2026-09-10"))
	requireDomainError(t, err, 404, "Service not found")
}

func TestCreateBookingInactiveService(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), f.customer.ID, f.inactive.ID, mustDate(t, "2026-09-10"))
	requireDomainError(t, err, 422, "Selected service is not available")
}

func TestCreateBookingConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	date := mustDate(t, "2026-09-10")

	_, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, date)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.customer.ID, f.haircut.ID, date)
	requireDomainError(t, err, 422, "You already have a booking for this service on the selected date")

	// a different date, a different service, or a different account is fine
	_, err = f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-11"))
	assert.NoError(t, err)
	_, err = f.svc.Create(ctx, f.customer.ID, f.massage.ID, date)
	assert.NoError(t, err)
	_, err = f.svc.Create(ctx, f.other.ID, f.haircut.ID, date)
	assert.NoError(t, err)
}

func TestCreateBookingAfterCancelReleasesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	date := mustDate(t, "2026-09-10")

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, date)
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, f.customer.ID, detail.Booking.ID))

	_, err = f.svc.Create(ctx, f.customer.ID, f.haircut.ID, date)
	assert.NoError(t, err)
}

func TestGetBookingOwnership(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	got, err := f.svc.GetForAccount(ctx, f.customer.ID, detail.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Booking.ID, got.Booking.ID)

	_, err = f.svc.GetForAccount(ctx, f.other.ID, detail.Booking.ID)
	requireDomainError(t, err, 403, "Unauthorized access to booking")
}

func TestAmendDate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	amended, err := f.svc.AmendDate(ctx, f.customer.ID, detail.Booking.ID, mustDate(t, "2026-09-12"))
	require.NoError(t, err)
	assert.Equal(t, "2026-09-12", amended.Booking.BookingDate.String())
	assert.Equal(t, domain.BookingStatusPending, amended.Booking.Status)
}

func TestAmendDateRejectsForeignBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	_, err = f.svc.AmendDate(ctx, f.other.ID, detail.Booking.ID, mustDate(t, "2026-09-12"))
	requireDomainError(t, err, 403, "Unauthorized access to booking")
}

func TestAmendDateRejectsNonPending(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, f.customer.ID, detail.Booking.ID))

	_, err = f.svc.AmendDate(ctx, f.customer.ID, detail.Booking.ID, mustDate(t, "2026-09-12"))
	requireDomainError(t, err, 422, "Cannot modify booking that is not pending")
}

func TestAmendDateConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	taken := mustDate(t, "2026-09-11")

	_, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, taken)
	require.NoError(t, err)
	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	_, err = f.svc.AmendDate(ctx, f.customer.ID, detail.Booking.ID, taken)
	requireDomainError(t, err, 422, "You already have a booking for this service on the selected date")
}

func TestCancel(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(ctx, f.customer.ID, detail.Booking.ID))

	stored, err := f.bookings.GetByID(ctx, detail.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, stored.Status)

	// cancelled is terminal
	err = f.svc.Cancel(ctx, f.customer.ID, detail.Booking.ID)
	requireDomainError(t, err, 422, "Cannot cancel booking in current status")
}

func TestListForAccountScopesToOwner(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.customer.ID, f.massage.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.other.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	own, err := f.svc.ListForAccount(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, d := range own {
		assert.Equal(t, f.customer.ID, d.Booking.AccountID)
	}
	// newest first
	assert.Equal(t, f.massage.ID, own[0].Booking.ServiceID)
}

func TestListAdminPagination(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	for day := 1; day <= 20; day++ {
		date := mustDate(t, "2026-09-01").Time().AddDate(0, 0, day-1)
		_, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, domain.DateOf(date))
		require.NoError(t, err)
	}

	details, pagination, err := f.svc.ListAdmin(ctx, AdminBookingQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, details, 15)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.LastPage)
	assert.Equal(t, 15, pagination.PerPage)
	assert.Equal(t, 20, pagination.Total)

	details, pagination, err = f.svc.ListAdmin(ctx, AdminBookingQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, details, 5)
	assert.Equal(t, 2, pagination.CurrentPage)
}

func TestListAdminEmptyPage(t *testing.T) {
	f := newBookingFixture(t)

	details, pagination, err := f.svc.ListAdmin(context.Background(), AdminBookingQuery{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Equal(t, 1, pagination.LastPage)
	assert.Equal(t, 0, pagination.Total)
}

func TestListAdminFilters(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	early, err := f.svc.Create(ctx, f.customer.ID, f.haircut.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.customer.ID, f.massage.ID, mustDate(t, "2026-10-05"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, f.customer.ID, early.Booking.ID))

	cancelled := domain.BookingStatusCancelled
	details, _, err := f.svc.ListAdmin(ctx, AdminBookingQuery{Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, early.Booking.ID, details[0].Booking.ID)

	details, _, err = f.svc.ListAdmin(ctx, AdminBookingQuery{ServiceID: &f.massage.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, f.massage.ID, details[0].Booking.ServiceID)

	from := mustDate(t, "2026-10-01")
	to := mustDate(t, "2026-10-31")
	details, pagination, err := f.svc.ListAdmin(ctx, AdminBookingQuery{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 1, pagination.Total)
	assert.Equal(t, "2026-10-05", details[0].Booking.BookingDate.String())
}

func TestGetBookingUnknownID(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.GetForAccount(context.Background(), f.customer.ID, "missing")
	requireDomainError(t, err, 404, "Booking not found")
}
