package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// BookingsHandler exposes the customer-facing booking endpoints. Every route
// is principal-scoped: customers only ever see their own ledger.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

// List handles GET /bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	details, err := h.bookings.ListForAccount(c.UserContext(), principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Your bookings retrieved successfully", bookingResponses(details)))
}

// Create handles POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ServiceID == "" {
		return apperrors.NewValidationError("The given data was invalid", map[string]any{
			"service_id": []string{"The service id field is required."},
		})
	}
	date, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return err
	}

	detail, err := h.bookings.Create(c.UserContext(), principal.Account.ID, req.ServiceID, date)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("Booking created successfully", bookingResponse(detail)))
}

// Get handles GET /bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	detail, err := h.bookings.GetForAccount(c.UserContext(), principal.Account.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Booking retrieved successfully", bookingResponse(detail)))
}

// Update handles PUT /bookings/:id. Only the date is customer-mutable.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	date, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return err
	}

	detail, err := h.bookings.AmendDate(c.UserContext(), principal.Account.ID, c.Params("id"), date)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Booking updated successfully", bookingResponse(detail)))
}

// Cancel handles DELETE /bookings/:id.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	if err := h.bookings.Cancel(c.UserContext(), principal.Account.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OK("Booking cancelled successfully", nil))
}

// parseBookingDate validates the booking_date field: present, well-formed,
// and not in the past. Same-day bookings are allowed.
func parseBookingDate(value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, apperrors.NewValidationError("The given data was invalid", map[string]any{
			"booking_date": []string{"The booking date field is required."},
		})
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, apperrors.NewValidationError("The given data was invalid", map[string]any{
			"booking_date": []string{"The booking date is not a valid date."},
		})
	}
	today := domain.DateOf(time.Now())
	if date.Before(today) {
		return domain.Date{}, apperrors.NewValidationError("The given data was invalid", map[string]any{
			"booking_date": []string{"Booking date cannot be in the past."},
		})
	}
	return date, nil
}

func bookingResponse(d *service.BookingDetail) dto.BookingResponse {
	return dto.BookingResponse{
		ID:          d.Booking.ID,
		BookingDate: d.Booking.BookingDate.String(),
		Status:      string(d.Booking.Status),
		TotalAmount: d.TotalAmount().String(),
		CreatedAt:   d.Booking.CreatedAt.Format("2006-01-02 15:04:05"),
		Customer: dto.CustomerSummary{
			ID:    d.Customer.ID,
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
		},
		Service: dto.ServiceSummary{
			ID:     d.Service.ID,
			Name:   d.Service.Name,
			Price:  d.Service.Price.String(),
			Status: string(d.Service.Status),
		},
	}
}

func bookingResponses(details []service.BookingDetail) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(details))
	for i := range details {
		out = append(out, bookingResponse(&details[i]))
	}
	return out
}
