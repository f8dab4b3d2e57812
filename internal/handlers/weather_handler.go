package handlers

import (
	"net/http"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/services"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type WeatherHandler struct {
	weatherService services.IWeatherService
}

func NewWeatherHandler(weatherService services.IWeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

func (h *WeatherHandler) Register(app *fiber.App) {
	weatherGroup := app.Group(publicAPIPrefix + "/weather")
	weatherGroup.Get("/states", h.GetStates)
	weatherGroup.Get("/districts", h.GetDistricts)
	weatherGroup.Get("/forecast", h.GetForecast)
}

func (h *WeatherHandler) GetStates(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(directory.Weather.States()))
}

func (h *WeatherHandler) GetDistricts(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(directory.Weather.Districts(c.Query("state"))))
}

func (h *WeatherHandler) GetForecast(c fiber.Ctx) error {
	state, district := c.Query("state"), c.Query("district")
	if utils.IsBlank(state) || utils.IsBlank(district) {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeValidation, "state and district are required"))
	}

	forecast, err := h.weatherService.ForecastForDistrict(c.Context(), state, district)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(forecast))
}
