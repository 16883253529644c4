package handlers

import (
	applog "servio/internal/log"
	"servio/internal/repos"
	"servio/internal/services"
	"servio/internal/validate"

	"github.com/gofiber/fiber/v2"

	"servio/internal/domain"
)

type AdminHandler struct {
	Catalog  *services.CatalogService
	Services *repos.ServiceRepo
	Bookings *repos.BookingRepo
	Requests *repos.RequestRepo
	Users    *repos.UserRepo
}

// Dashboard renders the ops overview: entity counts, the moderation queue
// and recent activity.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	approved, err := h.Services.CountByStatus(domain.ServiceApproved)
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	pendingCount, err := h.Services.CountByStatus(domain.ServicePending)
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	bookings, err := h.Bookings.Count()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	requests, err := h.Requests.Count()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	users, err := h.Users.Count()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}

	pending, err := h.Services.ListPending()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	latestBookings, err := h.Bookings.ListLatest(10)
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	openRequests, err := h.Requests.ListOpen()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}

	return c.Render("dashboard", fiber.Map{
		"ApprovedServices": approved,
		"PendingServices":  pendingCount,
		"BookingCount":     bookings,
		"RequestCount":     requests,
		"UserCount":        users,
		"Pending":          pending,
		"LatestBookings":   latestBookings,
		"OpenRequests":     openRequests,
		"Token":            c.Query("token"),
	})
}

// ModerateService approves or rejects a pending listing from the dashboard.
func (h *AdminHandler) ModerateService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "validation.fail", "invalid service id", map[string]any{"field": "id"})
	}
	decision := c.FormValue("decision")
	if decision != "approve" && decision != "reject" {
		return badRequest(c, "validation.fail", "decision must be approve or reject", map[string]any{"field": "decision"})
	}

	if err := h.Catalog.Moderate(id, decision == "approve"); err != nil {
		return fail(c, "admin.moderate", err)
	}
	applog.Audit(c, "admin.moderate", map[string]any{"service_id": id, "decision": decision})
	return c.Redirect("/admin?token=" + c.FormValue("token"))
}
