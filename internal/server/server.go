// Package server exposes the configurator over HTTP: cost estimates, crop
// suggestions, the built model and the export documents.
package server

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/piwi3910/polyhouse/internal/config"
	"github.com/piwi3910/polyhouse/internal/crops"
)

// ============================================================
// Server
// ============================================================

type Server struct {
	cfg *config.Config
	app *fiber.App
}

// New assembles the fiber application. svc may be unconfigured, in which
// case crop suggestion requests fail with 500.
func New(cfg *config.Config, svc *crops.Service) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		AppName:      "Polyhouse Configurator",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(Logger())
	app.Use(CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe)

	// ============================================================
	// API Routes
	// ============================================================

	h := &Handlers{Crops: svc}
	api := app.Group("/api/v1")
	api.Post("/calculate-polyhouse", h.Calculate)
	api.Post("/crop-suggestions", h.CropSuggestions)
	api.Post("/model", h.Model)
	api.Post("/cut-list", h.CutList)
	api.Post("/report", h.Report)
	api.Post("/drawing", h.Drawing)
	api.Post("/bom", h.BOM)

	return &Server{cfg: cfg, app: app}
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails.
func (s *Server) Listen() error {
	addr := s.cfg.Addr()
	log.Printf("Starting Polyhouse Configurator on %s (env: %s)", addr, s.cfg.Environment)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
