package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"servio/internal/config"
	"servio/internal/http/handlers"
	applog "servio/internal/log"
	"servio/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Templates only back the admin dashboard; the API itself is JSON.
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg)

	// ---------- API ----------
	api := app.Group("/api/v1")

	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/:name/services", deps.CategoryHandler.Services)

	searchLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/services", searchLimiter, deps.SearchHandler.Search)
	api.Get("/services/:id", deps.ServiceHandler.Detail)
	api.Post("/services", deps.ServiceHandler.Create)

	api.Post("/bookings", deps.BookingHandler.Create)
	api.Get("/bookings", deps.BookingHandler.List)
	api.Patch("/bookings/:id/status", deps.BookingHandler.UpdateStatus)

	api.Post("/requests", deps.RequestHandler.Create)
	api.Get("/requests", deps.RequestHandler.List)
	api.Get("/requests/:id", deps.RequestHandler.Detail)
	api.Post("/requests/:id/bids", deps.RequestHandler.PlaceBid)
	api.Patch("/requests/:id/status", deps.RequestHandler.UpdateStatus)
	api.Post("/requests/:id/accept", deps.RequestHandler.AcceptBid)

	api.Get("/users/:id", deps.ProfileHandler.Get)
	api.Patch("/users/:id", deps.ProfileHandler.Update)
	api.Get("/users/:id/privacy", deps.PrivacyHandler.Get)
	api.Put("/users/:id/privacy", deps.PrivacyHandler.Put)
	api.Post("/users/:id/privacy/toggle", deps.PrivacyHandler.Toggle)

	// ---------- Admin ----------
	admin := app.Group("/admin", handlers.RequireAdminToken(cfg.AdminToken))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/services/:id/status", deps.AdminHandler.ModerateService)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
