package handlers

import (
	"log/slog"
	"net/http"

	"agrivision-service/internal/models"
	"agrivision-service/internal/services"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type FeedbackHandler struct {
	feedbackService services.IFeedbackService
}

func NewFeedbackHandler(feedbackService services.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) Register(app *fiber.App) {
	app.Group(publicAPIPrefix).Post("/feedback", h.SubmitFeedback)
}

func (h *FeedbackHandler) SubmitFeedback(c fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeBadRequest, "Invalid request body"))
	}

	record, err := h.feedbackService.Submit(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(models.FeedbackResponse{
		Message:  "Thank you! Your feedback helps improve Agri-Vision AI.",
		Feedback: record,
	}))
}
