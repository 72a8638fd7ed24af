package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"accounts-api/internal/presenter"
	"accounts-api/internal/services"
)

// AuthHandler exposes the login/refresh/logout/me surface.
type AuthHandler struct {
	svc services.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req presenter.PasswordLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password required"})
	}

	tokens, err := h.svc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(presenter.NewAuthResponse(tokens))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req presenter.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "refreshToken required"})
	}

	tokens, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(presenter.NewAuthResponse(tokens))
}

// Logout revokes the caller's refresh token. The subject comes from the JWT
// middleware, which has already verified the access token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}
	if err := h.svc.Logout(c.Context(), userID); err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}

	u, err := h.svc.Me(c.Context(), userID)
	if err != nil {
		// The token subject no longer exists; the session is dead.
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
		}
		return h.renderError(c, err)
	}
	return c.JSON(presenter.NewUserResponse(u))
}

func (h *AuthHandler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "failed to authenticate user"})
	case errors.Is(err, services.ErrInvalidRefreshToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired refresh token"})
	default:
		h.log.Error("auth operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
