package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"agrivision-service/internal/services"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type ScanHandler struct {
	scanService services.IScanService
}

func NewScanHandler(scanService services.IScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

func (h *ScanHandler) Register(app *fiber.App) {
	scanGroup := app.Group(publicAPIPrefix + "/scans")
	scanGroup.Post("/", h.CreateScan)
	scanGroup.Get("/history", h.GetHistory)
}

// CreateScan classifies the uploaded leaf photo sent as multipart field "image".
func (h *ScanHandler) CreateScan(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeBadRequest, "multipart field 'image' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeBadRequest, "could not read uploaded image"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeBadRequest, "could not read uploaded image"))
	}

	resp, err := h.scanService.Scan(c.Context(), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(resp))
}

func (h *ScanHandler) GetHistory(c fiber.Ctx) error {
	limit, err := utils.GetQueryParamAsInt(c, "limit", services.HistoryViewSize)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeValidation, err.Error()))
	}

	entries, err := h.scanService.History(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(entries))
}
