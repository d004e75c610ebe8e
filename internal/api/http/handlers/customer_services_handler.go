package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/service"
)

// CustomerServicesHandler exposes the browse-only catalog view. Only active
// services are visible here.
type CustomerServicesHandler struct {
	catalog *service.CatalogService
}

// NewCustomerServicesHandler constructs handler.
func NewCustomerServicesHandler(catalog *service.CatalogService) *CustomerServicesHandler {
	return &CustomerServicesHandler{catalog: catalog}
}

// List handles GET /user/services.
func (h *CustomerServicesHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Available services retrieved successfully", serviceResponses(services)))
}

// Get handles GET /user/services/:id.
func (h *CustomerServicesHandler) Get(c *fiber.Ctx) error {
	svc, err := h.catalog.GetActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Service retrieved successfully", serviceResponse(svc)))
}
