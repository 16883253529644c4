package handlers

import (
	"servio/internal/domain"
	applog "servio/internal/log"
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	Requests *services.RequestService
}

type createRequestBody struct {
	ClientID      string  `json:"clientId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Budget        float64 `json:"budget"`
	Currency      string  `json:"currency"`
	Location      string  `json:"location"`
	PreferredDate string  `json:"preferredDate"`
	PreferredTime string  `json:"preferredTime"`
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if _, ok := validate.ID(body.ClientID); !ok {
		return badRequest(c, "validation.fail", "invalid client id", map[string]any{"field": "clientId"})
	}
	currency, ok := validate.Currency(body.Currency)
	if !ok {
		return badRequest(c, "validation.fail", "currency must be a three-letter code", map[string]any{"field": "currency"})
	}
	if body.PreferredDate != "" {
		if _, ok := validate.Date(body.PreferredDate); !ok {
			return badRequest(c, "validation.fail", "preferredDate must be YYYY-MM-DD", map[string]any{"field": "preferredDate"})
		}
	}
	if body.PreferredTime != "" {
		if _, ok := validate.TimeOfDay(body.PreferredTime); !ok {
			return badRequest(c, "validation.fail", "preferredTime must be HH:MM", map[string]any{"field": "preferredTime"})
		}
	}

	req, err := h.Requests.Create(body.ClientID, services.NewRequest{
		Title:         body.Title,
		Description:   body.Description,
		Category:      body.Category,
		Budget:        body.Budget,
		Currency:      currency,
		Location:      body.Location,
		PreferredDate: body.PreferredDate,
		PreferredTime: body.PreferredTime,
	})
	if err != nil {
		return fail(c, "request.create", err)
	}
	applog.Audit(c, "request.create", map[string]any{"request_id": req.ID})
	return c.Status(fiber.StatusCreated).JSON(req)
}

// List handles GET /api/v1/requests?mine=<clientId> (the client's own
// requests) or ?open=1 (the provider browse feed).
func (h *RequestHandler) List(c *fiber.Ctx) error {
	if mine := c.Query("mine"); mine != "" {
		clientID, ok := validate.ID(mine)
		if !ok {
			return badRequest(c, "validation.fail", "invalid client id", map[string]any{"field": "mine"})
		}
		out, err := h.Requests.MyRequests(clientID)
		if err != nil {
			return fail(c, "request.list", err)
		}
		return c.JSON(fiber.Map{"requests": out, "count": len(out)})
	}

	out, err := h.Requests.Browse()
	if err != nil {
		return fail(c, "request.browse", err)
	}
	return c.JSON(fiber.Map{"requests": out, "count": len(out)})
}

func (h *RequestHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid request id", map[string]any{"field": "id"})
	}
	req, err := h.Requests.Get(id)
	if err != nil {
		return fail(c, "request.get", err)
	}
	return c.JSON(req)
}

type placeBidBody struct {
	ProviderID        string  `json:"providerId"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency"`
	Message           string  `json:"message"`
	EstimatedDuration string  `json:"estimatedDuration"`
}

func (h *RequestHandler) PlaceBid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid request id", map[string]any{"field": "id"})
	}
	var body placeBidBody
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

	bid, err := h.Requests.PlaceBid(id, body.ProviderID, body.Price, currency, body.Message, body.EstimatedDuration)
	if err != nil {
		return fail(c, "bid.place", err)
	}
	applog.Audit(c, "bid.place", map[string]any{"request_id": id, "bid_id": bid.ID})
	return c.Status(fiber.StatusCreated).JSON(bid)
}

func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid request id", map[string]any{"field": "id"})
	}
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}

	req, err := h.Requests.UpdateStatus(id, domain.RequestStatus(body.Status))
	if err != nil {
		return fail(c, "request.status", err)
	}
	applog.Audit(c, "request.status", map[string]any{"request_id": req.ID, "status": req.Status})
	return c.JSON(req)
}

type acceptBidBody struct {
	BidID string `json:"bidId"`
}

func (h *RequestHandler) AcceptBid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid request id", map[string]any{"field": "id"})
	}
	var body acceptBidBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if _, ok := validate.ID(body.BidID); !ok {
		return badRequest(c, "validation.fail", "invalid bid id", map[string]any{"field": "bidId"})
	}

	req, err := h.Requests.AcceptBid(id, body.BidID)
	if err != nil {
		return fail(c, "bid.accept", err)
	}
	applog.Audit(c, "bid.accept", map[string]any{"request_id": req.ID, "bid_id": req.AcceptedBidID})
	return c.JSON(req)
}
