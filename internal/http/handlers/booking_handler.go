package handlers

import (
	"servio/internal/domain"
	applog "servio/internal/log"
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

type createBookingBody struct {
	ServiceID string `json:"serviceId"`
	ClientID  string `json:"clientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var body createBookingBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}
	if _, ok := validate.ID(body.ServiceID); !ok {
		return badRequest(c, "validation.fail", "invalid service id", map[string]any{"field": "serviceId"})
	}
	if _, ok := validate.ID(body.ClientID); !ok {
		return badRequest(c, "validation.fail", "invalid client id", map[string]any{"field": "clientId"})
	}

	b, err := h.Bookings.Create(body.ServiceID, body.ClientID, body.Date, body.Time, body.Notes)
	if err != nil {
		return fail(c, "booking.create", err)
	}
	applog.Audit(c, "booking.create", map[string]any{"booking_id": b.ID, "service_id": b.ServiceID})
	return c.Status(fiber.StatusCreated).JSON(b)
}

// List handles GET /api/v1/bookings?user=&role= and returns the
// upcoming/past partition.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Query("user"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid user id", map[string]any{"field": "user"})
	}
	role := c.Query("role", "client")

	out, err := h.Bookings.List(userID, role)
	if err != nil {
		return fail(c, "booking.list", err)
	}
	return c.JSON(out)
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid booking id", map[string]any{"field": "id"})
	}
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "validation.fail", "invalid request body", nil)
	}

	b, err := h.Bookings.UpdateStatus(id, domain.BookingStatus(body.Status))
	if err != nil {
		return fail(c, "booking.status", err)
	}
	applog.Audit(c, "booking.status", map[string]any{"booking_id": b.ID, "status": b.Status})
	return c.JSON(b)
}
