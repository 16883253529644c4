package handlers

import (
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// Services handles GET /api/v1/categories/:name/services, the ranked
// browse-by-category listing.
func (h *CategoryHandler) Services(c *fiber.Ctx) error {
	name, ok := validate.Q(c.Params("name"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid category", map[string]any{"field": "name"})
	}
	out, err := h.Catalog.ListByCategory(name)
	if err != nil {
		return fail(c, "categories.services", err)
	}
	return c.JSON(fiber.Map{"services": out, "count": len(out)})
}
