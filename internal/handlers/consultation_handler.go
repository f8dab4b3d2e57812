package handlers

import (
	"log/slog"
	"net/http"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/models"
	"agrivision-service/internal/services"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type ConsultationHandler struct {
	consultationService services.IConsultationService
}

func NewConsultationHandler(consultationService services.IConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

func (h *ConsultationHandler) Register(app *fiber.App) {
	publicGr := app.Group(publicAPIPrefix)
	publicGr.Get("/languages", h.GetLanguages)
	publicGr.Post("/consultations", h.CreateConsultation)
}

func (h *ConsultationHandler) GetLanguages(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(directory.Languages()))
}

func (h *ConsultationHandler) CreateConsultation(c fiber.Ctx) error {
	var req models.ConsultationRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeBadRequest, "Invalid request body"))
	}

	resp, err := h.consultationService.Consult(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(resp))
}
