package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// AdminBookingsHandler exposes the cross-account booking listing for admins.
type AdminBookingsHandler struct {
	bookings *service.BookingService
}

// NewAdminBookingsHandler constructs handler.
func NewAdminBookingsHandler(bookings *service.BookingService) *AdminBookingsHandler {
	return &AdminBookingsHandler{bookings: bookings}
}

// List handles GET /admin/bookings. Filters: status, service_id, from_date,
// to_date. Results are paginated newest first.
func (h *AdminBookingsHandler) List(c *fiber.Ctx) error {
	query, err := parseAdminQuery(c)
	if err != nil {
		return err
	}

	details, pagination, err := h.bookings.ListAdmin(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.JSON(dto.OKPaged("Bookings retrieved successfully", bookingResponses(details), dto.PaginationMeta{
		CurrentPage: pagination.CurrentPage,
		LastPage:    pagination.LastPage,
		PerPage:     pagination.PerPage,
		Total:       pagination.Total,
	}))
}

func parseAdminQuery(c *fiber.Ctx) (service.AdminBookingQuery, error) {
	query := service.AdminBookingQuery{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("per_page", 0),
	}

	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		switch status {
		case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
			query.Status = &status
		default:
			return query, apperrors.NewValidationError("The given data was invalid", map[string]any{
				"status": []string{"The selected status is invalid."},
			})
		}
	}
	if raw := c.Query("service_id"); raw != "" {
		serviceID := raw
		query.ServiceID = &serviceID
	}
	if raw := c.Query("from_date"); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			return query, apperrors.NewValidationError("The given data was invalid", map[string]any{
				"from_date": []string{"The from date is not a valid date."},
			})
		}
		query.From = &from
	}
	if raw := c.Query("to_date"); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			return query, apperrors.NewValidationError("The given data was invalid", map[string]any{
				"to_date": []string{"The to date is not a valid date."},
			})
		}
		query.To = &to
	}
	return query, nil
}
