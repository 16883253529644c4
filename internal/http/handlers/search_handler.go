package handlers

import (
	"strings"

	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search handles GET /api/v1/services?q=&category= and returns the ranked
// result set.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q != "" {
		var ok bool
		if q, ok = validate.Q(q); !ok {
			return badRequest(c, "validation.fail", "enter a valid keyword (letters/numbers only)", map[string]any{"field": "q"})
		}
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.Q(category); !ok {
			return badRequest(c, "validation.fail", "invalid category", map[string]any{"field": "category"})
		}
	}

	out, err := h.Catalog.Search(q, category)
	if err != nil {
		return fail(c, "search.error", err)
	}
	return c.JSON(fiber.Map{"services": out, "count": len(out)})
}
