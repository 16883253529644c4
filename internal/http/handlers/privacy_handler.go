package handlers

import (
	"servio/internal/domain"
	applog "servio/internal/log"
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PrivacyHandler struct {
	Privacy *services.PrivacyService
}

func (h *PrivacyHandler) Get(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "id"})
	}
	p, err := h.Privacy.Get(userID)
	if err != nil {
		return fail(c, "privacy.get", err)
	}
	return c.JSON(p)
}

// Put replaces the full settings object.
func (h *PrivacyHandler) Put(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "id"})
	}
	var p domain.PrivacySettings
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if err := h.Privacy.Save(userID, p); err != nil {
		return fail(c, "privacy.save", err)
	}
	applog.Audit(c, "privacy.save", map[string]any{"user_id": userID})
	return c.JSON(p)
}

type toggleBody struct {
	Key string `json:"key"`
}

func (h *PrivacyHandler) Toggle(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "id"})
	}
	var body toggleBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}

	p, err := h.Privacy.Toggle(userID, body.Key)
	if err != nil {
		return fail(c, "privacy.toggle", err)
	}
	applog.Audit(c, "privacy.toggle", map[string]any{"user_id": userID, "key": body.Key})
	return c.JSON(p)
}
