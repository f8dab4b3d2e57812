package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness reports whether an optional capability is usable.
type Readiness interface {
	Ready() error
}

type SystemHandler struct {
	classifier    Readiness
	adviceEnabled bool
}

func NewSystemHandler(classifier Readiness, adviceEnabled bool) *SystemHandler {
	return &SystemHandler{classifier: classifier, adviceEnabled: adviceEnabled}
}

func (h *SystemHandler) Register(app *fiber.App) {
	app.Get("/checkhealth", h.CheckHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// CheckHealth is always 200 while the process serves; disabled features are
// listed rather than failing the probe.
func (h *SystemHandler) CheckHealth(c fiber.Ctx) error {
	classification := "available"
	if err := h.classifier.Ready(); err != nil {
		classification = "unavailable"
	}
	advice := "available"
	if !h.adviceEnabled {
		advice = "not configured"
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":         "AgriVision service is healthy",
		"classification": classification,
		"advice":         advice,
	})
}
