package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"agrivision-service/internal/models"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

const publicAPIPrefix = "/agrivision/public/api/v1"

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c fiber.Ctx, err error) error {
	var (
		validationErr *models.ValidationError
		configErr     *models.ConfigurationError
		remoteErr     *models.RemoteServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeValidation, validationErr.Error()))
	case models.IsModelUnavailable(err):
		slog.Warn("classification unavailable", "error", err)
		return c.Status(http.StatusServiceUnavailable).JSON(utils.CreateErrorResponse(utils.CodeModelUnavailable,
			"Model folder not found. Leaf classification is unavailable."))
	case errors.As(err, &configErr):
		return c.Status(http.StatusServiceUnavailable).JSON(utils.CreateErrorResponse(utils.CodeConfiguration, configErr.Error()))
	case errors.As(err, &remoteErr):
		slog.Error("remote service failed", "service", remoteErr.Service, "error", remoteErr.Err)
		return c.Status(http.StatusBadGateway).JSON(utils.CreateErrorResponse(utils.CodeRemoteService,
			remoteErr.Service+" service is unavailable"))
	default:
		slog.Error("unexpected error", "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse(utils.CodeInternalServerError, "internal server error"))
	}
}
