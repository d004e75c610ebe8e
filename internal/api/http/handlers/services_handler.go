package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// ServicesHandler exposes the admin catalog endpoints.
type ServicesHandler struct {
	catalog *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalog *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{catalog: catalog}
}

// List handles GET /services (admin view, inactive entries included).
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Services retrieved successfully", serviceResponses(services)))
}

// Get handles GET /services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	svc, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Service retrieved successfully", serviceResponse(svc)))
}

// Create handles POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	input, err := parseServiceRequest(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.Create(c.UserContext(), principal.Account.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("Service created successfully", serviceResponse(svc)))
}

// Update handles PUT /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	input, err := parseServiceRequest(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.Update(c.UserContext(), principal.Account.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Service updated successfully", serviceResponse(svc)))
}

// Delete handles DELETE /services/:id. Refused while any booking references
// the service.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	principal := auth.MustPrincipal(c)

	if err := h.catalog.Delete(c.UserContext(), principal.Account.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OK("Service deleted successfully", nil))
}

func parseServiceRequest(c *fiber.Ctx) (service.ServiceInput, error) {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ServiceInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = []string{"The name field is required."}
	}

	var price domain.Money
	if req.Price == "" {
		details["price"] = []string{"The price field is required."}
	} else {
		parsed, err := domain.ParseMoney(req.Price)
		if err != nil || parsed.Negative() {
			details["price"] = []string{"The price must be a non-negative amount."}
		} else {
			price = parsed
		}
	}

	status := domain.ServiceStatus(req.Status)
	if req.Status == "" {
		status = domain.ServiceStatusActive
	} else if !status.Valid() {
		details["status"] = []string{"The selected status is invalid."}
	}

	if len(details) > 0 {
		return service.ServiceInput{}, apperrors.NewValidationError("The given data was invalid", details)
	}
	return service.ServiceInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Status:      status,
	}, nil
}

func serviceResponse(svc *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price.String(),
		Status:      string(svc.Status),
		CreatedAt:   svc.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   svc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func serviceResponses(services []domain.Service) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, serviceResponse(&services[i]))
	}
	return out
}
