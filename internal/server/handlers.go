package server

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/piwi3910/polyhouse/internal/builder"
	"github.com/piwi3910/polyhouse/internal/crops"
	"github.com/piwi3910/polyhouse/internal/cutlist"
	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/export"
	"github.com/piwi3910/polyhouse/internal/model"
)

// Content types of the export endpoints.
const (
	MIMEPDF  = "application/pdf"
	MIMEDXF  = "application/dxf"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ============================================================
// Health Check Handlers
// ============================================================

func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

func ReadinessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// ============================================================
// API Handlers
// ============================================================

// Handlers serves the /api/v1 routes.
type Handlers struct {
	Crops *crops.Service
}

// decodeConfig reads a configuration from the request body over the
// defaults, so partial documents are accepted.
func decodeConfig(c fiber.Ctx) (model.PolyhouseConfig, error) {
	cfg := model.DefaultConfig()
	if len(c.Body()) == 0 {
		return cfg, fmt.Errorf("request body required")
	}
	if err := json.Unmarshal(c.Body(), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg.Normalized(), nil
}

func badRequest(c fiber.Ctx, tag string, err error) error {
	log.Printf("[%s] bad request: %v", tag, err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func internalError(c fiber.Ctx, tag string, err error) error {
	log.Printf("[%s] %v", tag, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Calculate returns the cost and climate estimate for a configuration.
func (h *Handlers) Calculate(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "CALCULATE", err)
	}
	result := estimate.Calculate(cfg)
	log.Printf("[CALCULATE] %gx%g m %s in %s: INR %.0f", cfg.Length, cfg.Width, cfg.PolyhouseType, cfg.State, result.Cost.TotalCost)
	return c.JSON(result)
}

// CropSuggestions returns generated crop advice for {config, climate}.
func (h *Handlers) CropSuggestions(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return badRequest(c, "CROPS", fmt.Errorf("request body required"))
	}
	req := crops.Request{Config: model.DefaultConfig()}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "CROPS", fmt.Errorf("invalid request: %w", err))
	}

	text, err := h.Crops.Suggest(c.Context(), req)
	if err != nil {
		return internalError(c, "CROPS", err)
	}
	return c.JSON(fiber.Map{
		"suggestions": text,
	})
}

// Model returns the built scene description.
func (h *Handlers) Model(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "MODEL", err)
	}
	return c.JSON(builder.Build(cfg))
}

// CutList returns the stock cutting plan. The optional stock query
// parameter sets the bar length in metres and algorithm picks
// "first-fit" or "genetic".
func (h *Handlers) CutList(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "CUTLIST", err)
	}
	settings := cutlist.DefaultSettings()
	if v := c.Query("stock"); v != "" {
		stock, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "CUTLIST", fmt.Errorf("invalid stock length %q", v))
		}
		settings.StockLength = stock
	}
	if a := c.Query("algorithm"); a != "" {
		settings.Algorithm = cutlist.Algorithm(a)
	}
	if err := settings.Validate(); err != nil {
		return badRequest(c, "CUTLIST", err)
	}

	plan := cutlist.Optimize(builder.Build(cfg), settings)
	log.Printf("[CUTLIST] %d bars, %d splices, %.1f%% efficient", len(plan.Bars), plan.Splices, plan.Efficiency())
	return c.JSON(fiber.Map{
		"plan":       plan,
		"efficiency": plan.Efficiency(),
		"stockUsed":  plan.StockUsed(),
	})
}

// Report returns the PDF design report.
func (h *Handlers) Report(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "REPORT", err)
	}
	data, err := export.RenderPDF(export.Report{
		Model:       builder.Build(cfg),
		Result:      estimate.Calculate(cfg),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return internalError(c, "REPORT", err)
	}
	return sendFile(c, MIMEPDF, "polyhouse-report.pdf", data)
}

// Drawing returns the DXF drawing.
func (h *Handlers) Drawing(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "DRAWING", err)
	}
	data, err := export.RenderDXF(builder.Build(cfg))
	if err != nil {
		return internalError(c, "DRAWING", err)
	}
	return sendFile(c, MIMEDXF, "polyhouse.dxf", data)
}

// BOM returns the bill of materials workbook.
func (h *Handlers) BOM(c fiber.Ctx) error {
	cfg, err := decodeConfig(c)
	if err != nil {
		return badRequest(c, "BOM", err)
	}
	data, err := export.RenderXLSX(builder.Build(cfg), estimate.Calculate(cfg))
	if err != nil {
		return internalError(c, "BOM", err)
	}
	return sendFile(c, MIMEXLSX, "polyhouse-bom.xlsx", data)
}

func sendFile(c fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
