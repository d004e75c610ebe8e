package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-service/internal/domain"
)

const uniqueViolationCode = "23505"

// BookingFilter captures admin search parameters. From/To bound the booking
// date inclusively.
type BookingFilter struct {
	AccountID *string
	ServiceID *string
	Status    *domain.BookingStatus
	From      *domain.Date
	To        *domain.Date
	Limit     int
	Offset    int
}

// BookingRepository encapsulates ledger persistence. The conflict-sensitive
// writes run check-then-write inside a transaction; a partial unique index on
// (account_id, service_id, booking_date) over open statuses backstops the
// check, so two concurrent requests for the same tuple cannot both commit.
type BookingRepository interface {
	CreateIfNoConflict(ctx context.Context, booking *domain.Booking) error
	UpdateDateIfNoConflict(ctx context.Context, booking *domain.Booking, newDate domain.Date) error
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Booking, error)
	ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	CountWithFilter(ctx context.Context, filter BookingFilter) (int, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) CreateIfNoConflict(ctx context.Context, booking *domain.Booking) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		conflict, err := openBookingExists(ctx, tx, booking.AccountID, booking.ServiceID, booking.BookingDate, nil)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrOpenBookingExists
		}

		const query = `
            INSERT INTO bookings (account_id, service_id, booking_date, status)
            VALUES ($1, $2, $3, $4)
            RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, query,
			booking.AccountID,
			booking.ServiceID,
			booking.BookingDate.Time(),
			booking.Status,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
		return mapUniqueViolation(err)
	})
}

func (r *bookingRepository) UpdateDateIfNoConflict(ctx context.Context, booking *domain.Booking, newDate domain.Date) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		conflict, err := openBookingExists(ctx, tx, booking.AccountID, booking.ServiceID, newDate, &booking.ID)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrOpenBookingExists
		}

		const query = `
            UPDATE bookings SET booking_date=$1, updated_at=NOW()
            WHERE id=$2
            RETURNING updated_at`
		if err := tx.QueryRow(ctx, query, newDate.Time(), booking.ID).Scan(&booking.UpdatedAt); err != nil {
			return mapUniqueViolation(err)
		}
		booking.BookingDate = newDate
		return nil
	})
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, booking.Status, booking.ID).Scan(&booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `
        SELECT id, account_id, service_id, booking_date, status, created_at, updated_at
        FROM bookings WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanBooking(row)
}

func (r *bookingRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Booking, error) {
	return r.ListWithFilter(ctx, BookingFilter{AccountID: &accountID})
}

func (r *bookingRepository) ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	base := `SELECT id, account_id, service_id, booking_date, status, created_at, updated_at FROM bookings`
	clauses, args := filterClauses(filter)

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) CountWithFilter(ctx context.Context, filter BookingFilter) (int, error) {
	clauses, args := filterClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s`, strings.Join(clauses, " AND "))

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func filterClauses(filter BookingFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("account_id=$%d", len(args)))
	}
	if filter.ServiceID != nil {
		args = append(args, *filter.ServiceID)
		clauses = append(clauses, fmt.Sprintf("service_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, filter.From.Time())
		clauses = append(clauses, fmt.Sprintf("booking_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, filter.To.Time())
		clauses = append(clauses, fmt.Sprintf("booking_date <= $%d", len(args)))
	}
	return clauses, args
}

func openBookingExists(ctx context.Context, tx pgx.Tx, accountID, serviceID string, date domain.Date, excludeID *string) (bool, error) {
	open := make([]string, len(domain.OpenStatuses))
	for i, status := range domain.OpenStatuses {
		open[i] = string(status)
	}
	query := `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE account_id=$1 AND service_id=$2 AND booking_date=$3
              AND status = ANY($4)`
	args := []any{accountID, serviceID, date.Time(), open}
	if excludeID != nil {
		args = append(args, *excludeID)
		query += fmt.Sprintf(" AND id != $%d", len(args))
	}
	query += ")"

	var exists bool
	err := tx.QueryRow(ctx, query, args...).Scan(&exists)
	return exists, err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrOpenBookingExists
	}
	return err
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		booking domain.Booking
		date    time.Time
	)
	if err := row.Scan(
		&booking.ID,
		&booking.AccountID,
		&booking.ServiceID,
		&date,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	booking.BookingDate = domain.DateOf(date)
	return &booking, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var (
			booking domain.Booking
			date    time.Time
		)
		if err := rows.Scan(
			&booking.ID,
			&booking.AccountID,
			&booking.ServiceID,
			&date,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		booking.BookingDate = domain.DateOf(date)
		result = append(result, booking)
	}
	return result, rows.Err()
}
