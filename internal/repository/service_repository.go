package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-service/internal/domain"
)

// ServiceOrder selects the sort applied when listing the catalog.
type ServiceOrder int

const (
	// ServiceOrderCreatedDesc is the admin view: newest first.
	ServiceOrderCreatedDesc ServiceOrder = iota
	// ServiceOrderNameAsc is the customer view: alphabetical.
	ServiceOrderNameAsc
)

// ServiceFilter captures catalog listing parameters.
type ServiceFilter struct {
	ActiveOnly bool
	Order      ServiceOrder
}

// ServiceRepository encapsulates catalog persistence.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]domain.Service, error)
	HasBookings(ctx context.Context, serviceID string) (bool, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (name, description, price_cents, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		service.Name,
		service.Description,
		int64(service.Price),
		service.Status,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET name=$1, description=$2, price_cents=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		service.Name,
		service.Description,
		int64(service.Price),
		service.Status,
		service.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `
        SELECT id, name, description, price_cents, status, created_at, updated_at
        FROM services WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *serviceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	const query = `
        SELECT id, name, description, price_cents, status, created_at, updated_at
        FROM services WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *serviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Service, error) {
	var (
		service domain.Service
		cents   int64
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&cents,
		&service.Status,
		&service.CreatedAt,
		&service.UpdatedAt,
	); err != nil {
		return nil, err
	}
	service.Price = domain.Money(cents)
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, filter ServiceFilter) ([]domain.Service, error) {
	query := `SELECT id, name, description, price_cents, status, created_at, updated_at FROM services`
	if filter.ActiveOnly {
		query += ` WHERE status='active'`
	}
	switch filter.Order {
	case ServiceOrderNameAsc:
		query += ` ORDER BY name ASC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var (
			service domain.Service
			cents   int64
		)
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&cents,
			&service.Status,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		service.Price = domain.Money(cents)
		result = append(result, service)
	}
	return result, rows.Err()
}

func (r *serviceRepository) HasBookings(ctx context.Context, serviceID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE service_id=$1)`, serviceID,
	).Scan(&exists)
	return exists, err
}
