package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"accounts-api/internal/presenter"
	"accounts-api/internal/services"
)

// UserHandler exposes the account CRUD surface.
type UserHandler struct {
	svc services.AccountService
	log *zap.Logger
}

func NewUserHandler(svc services.AccountService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// ListUsers returns a page of users. Defaults: offset 0, limit 100.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	offset := int64(c.QueryInt("offset", 0))
	limit := int64(c.QueryInt("limit", 100))

	users, err := h.svc.List(c.Context(), offset, limit)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(presenter.NewUserListResponse(users))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	u, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(presenter.NewUserResponse(u))
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req presenter.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.MobilePhone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and mobilePhone required"})
	}

	u, err := h.svc.Create(c.Context(), req.User(), req.Password)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presenter.NewUserResponse(u))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	var req presenter.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	patch := req.Patch()
	if patch.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no fields to update"})
	}

	u, err := h.svc.Update(c.Context(), id, patch)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(presenter.NewUserResponse(u))
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return h.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseUserID(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (h *UserHandler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	case errors.Is(err, services.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "user already exists"})
	case errors.Is(err, services.ErrInternal):
		h.log.Error("user operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unable to delete user"})
	default:
		h.log.Error("user operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
