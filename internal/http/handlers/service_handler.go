package handlers

import (
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"

	applog "servio/internal/log"
)

type ServiceHandler struct {
	Catalog *services.CatalogService
}

func (h *ServiceHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid service id", map[string]any{"field": "id"})
	}
	svc, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "service.get", err)
	}
	return c.JSON(svc)
}

type createListingBody struct {
	ProviderID  string  `json:"providerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"imageUrl"`
	Location    string  `json:"location"`
}

// Create accepts a provider listing; it stays pending until moderation
// approves it.
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var body createListingBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if _, ok := validate.ID(body.ProviderID); !ok {
		return badRequest(c, "validation.fail", "invalid provider id", map[string]any{"field": "providerId"})
	}
	currency, ok := validate.Currency(body.Currency)
	if !ok {
		return badRequest(c, "validation.fail", "currency must be a three-letter code", map[string]any{"field": "currency"})
	}

	svc, err := h.Catalog.CreateListing(body.ProviderID, services.NewListing{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Price:       body.Price,
		Currency:    currency,
		ImageURL:    body.ImageURL,
		Location:    body.Location,
	})
	if err != nil {
		return fail(c, "service.create", err)
	}
	applog.Audit(c, "service.create", map[string]any{"service_id": svc.ID, "provider_id": svc.ProviderID})
	return c.Status(fiber.StatusCreated).JSON(svc)
}
