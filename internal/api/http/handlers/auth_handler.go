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

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateRegister(req); len(details) > 0 {
		return apperrors.NewValidationError("The given data was invalid", details)
	}

	account, token, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.OK("User registered successfully", dto.AuthData{
		User:      accountResponse(account),
		Token:     token,
		TokenType: "Bearer",
	}))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.OK("Login successful", dto.AuthData{
		User:      accountResponse(account),
		Token:     token,
		TokenType: "Bearer",
	}))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized. Please log in.")
	}
	if err := h.auth.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return c.JSON(dto.OK("Logged out successfully", nil))
}

// User handles GET /auth/user.
func (h *AuthHandler) User(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized. Please log in.")
	}
	return c.JSON(dto.OK("User profile retrieved successfully", accountResponse(principal.Account)))
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	reset, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	// delivery is out of scope; the token is returned directly
	return c.JSON(dto.OK("Password reset requested", fiber.Map{
		"token":      reset.Token,
		"expires_at": reset.ExpiresAt,
	}))
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || len(req.Password) < 8 {
		return apperrors.NewValidationError("token and password (min 8 chars) required", nil)
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(dto.OK("Password updated successfully", nil))
}

func validateRegister(req dto.RegisterRequest) map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = []string{"The name field is required."}
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		details["email"] = []string{"A valid email address is required."}
	}
	if len(req.Password) < 8 {
		details["password"] = []string{"The password must be at least 8 characters."}
	}
	return details
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   string(account.Role),
		Active: account.Active,
	}
}
