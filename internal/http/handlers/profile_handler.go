package handlers

import (
	applog "servio/internal/log"
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "id"})
	}
	u, err := h.Profiles.Get(id)
	if err != nil {
		return fail(c, "profile.get", err)
	}
	return c.JSON(u)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "id"})
	}
	var in services.ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if in.Name != nil {
		if _, ok := validate.Name(*in.Name); !ok {
			return badRequest(c, "validation.fail", "name must be 1-60 characters", map[string]any{"field": "name"})
		}
	}

	u, err := h.Profiles.Update(id, in)
	if err != nil {
		return fail(c, "profile.update", err)
	}
	applog.Audit(c, "profile.update", map[string]any{"user_id": id})
	return c.JSON(u)
}
