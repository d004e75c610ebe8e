package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/repository"
)

// In-memory repository fakes. They mirror the real repositories' contracts,
// including pgx.ErrNoRows for misses and the open-slot conflict sentinel.

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (f *fakeAccountRepo) add(account *domain.Account) *domain.Account {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.ID] = account
	return account
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.add(account)
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := f.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	account.UpdatedAt = time.Now()
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeServiceRepo struct {
	services    map[string]*domain.Service
	hasBookings map[string]bool
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*domain.Service{}, hasBookings: map[string]bool{}}
}

func (f *fakeServiceRepo) add(svc *domain.Service) *domain.Service {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	f.services[svc.ID] = svc
	return svc
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	f.add(svc)
	return nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return pgx.ErrNoRows
	}
	svc.UpdatedAt = time.Now()
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.services[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeServiceRepo) GetByName(_ context.Context, name string) (*domain.Service, error) {
	for _, svc := range f.services {
		if svc.Name == name {
			copied := *svc
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeServiceRepo) List(_ context.Context, filter repository.ServiceFilter) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(f.services))
	for _, svc := range f.services {
		if filter.ActiveOnly && svc.Status != domain.ServiceStatusActive {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Order == repository.ServiceOrderNameAsc {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeServiceRepo) HasBookings(_ context.Context, serviceID string) (bool, error) {
	return f.hasBookings[serviceID], nil
}

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking
	seq      int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
}

func (f *fakeBookingRepo) openConflict(accountID, serviceID string, date domain.Date, excludeID string) bool {
	for _, b := range f.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.AccountID == accountID && b.ServiceID == serviceID && b.BookingDate.Equal(date) && b.Open() {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) CreateIfNoConflict(_ context.Context, booking *domain.Booking) error {
	if f.openConflict(booking.AccountID, booking.ServiceID, booking.BookingDate, "") {
		return domain.ErrOpenBookingExists
	}
	booking.ID = uuid.NewString()
	f.seq++
	booking.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	booking.UpdatedAt = booking.CreatedAt
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) UpdateDateIfNoConflict(_ context.Context, booking *domain.Booking, newDate domain.Date) error {
	if f.openConflict(booking.AccountID, booking.ServiceID, newDate, booking.ID) {
		return domain.ErrOpenBookingExists
	}
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.BookingDate = newDate
	stored.UpdatedAt = time.Now()
	booking.BookingDate = newDate
	booking.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, booking *domain.Booking) error {
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = booking.Status
	stored.UpdatedAt = time.Now()
	booking.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Booking, error) {
	accID := accountID
	return f.ListWithFilter(context.Background(), repository.BookingFilter{AccountID: &accID})
}

func (f *fakeBookingRepo) matches(b *domain.Booking, filter repository.BookingFilter) bool {
	if filter.AccountID != nil && b.AccountID != *filter.AccountID {
		return false
	}
	if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
		return false
	}
	if filter.Status != nil && b.Status != *filter.Status {
		return false
	}
	if filter.From != nil && b.BookingDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && filter.To.Before(b.BookingDate) {
		return false
	}
	return true
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if f.matches(b, filter) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountWithFilter(_ context.Context, filter repository.BookingFilter) (int, error) {
	count := 0
	for _, b := range f.bookings {
		if f.matches(b, filter) {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now()
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	for _, session := range f.sessions {
		if session.TokenHash == tokenHash && session.Usable(time.Now()) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSessionRepo) Revoke(_ context.Context, id string) error {
	session, ok := f.sessions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllForAccount(_ context.Context, accountID string) error {
	now := time.Now()
	for _, session := range f.sessions {
		if session.AccountID == accountID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) live(accountID string) int {
	count := 0
	for _, session := range f.sessions {
		if session.AccountID == accountID && session.Usable(time.Now()) {
			count++
		}
	}
	return count
}

type fakeResetRepo struct {
	resets map[string]*domain.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: map[string]*domain.PasswordReset{}}
}

func (f *fakeResetRepo) Create(_ context.Context, reset *domain.PasswordReset) error {
	reset.ID = uuid.NewString()
	reset.CreatedAt = time.Now()
	stored := *reset
	f.resets[reset.ID] = &stored
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, token string) (*domain.PasswordReset, error) {
	for _, reset := range f.resets {
		if reset.Token == token {
			copied := *reset
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	reset, ok := f.resets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	reset.UsedAt = &now
	return nil
}
