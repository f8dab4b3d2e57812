package handlers

import (
	"net/http"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/models"
	"agrivision-service/internal/services"
	"agrivision-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type DirectoryHandler struct {
	directoryService services.IDirectoryService
}

func NewDirectoryHandler(directoryService services.IDirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

func (h *DirectoryHandler) Register(app *fiber.App) {
	publicGr := app.Group(publicAPIPrefix)

	directoryGroup := publicGr.Group("/directory")
	directoryGroup.Get("/states", h.GetStates)
	directoryGroup.Get("/districts", h.GetDistricts)
	directoryGroup.Get("/offices", h.GetOffice)
	directoryGroup.Get("/nearest", h.GetNearestDistrict)

	marketGroup := publicGr.Group("/market")
	marketGroup.Get("/search", h.SearchMarket)
	marketGroup.Get("/stores", h.FindStores)
}

// ============================================================================
// SUPPORT DIRECTORY
// ============================================================================

func (h *DirectoryHandler) GetStates(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(directory.Support.States()))
}

func (h *DirectoryHandler) GetDistricts(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(directory.Support.Districts(c.Query("state"))))
}

func (h *DirectoryHandler) GetOffice(c fiber.Ctx) error {
	resp, err := h.directoryService.OfficeLookup(c.Query("state"), c.Query("district"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(resp))
}

func (h *DirectoryHandler) GetNearestDistrict(c fiber.Ctx) error {
	lat, err := utils.GetQueryParamAsFloat(c, "lat", -90, 90)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeValidation, err.Error()))
	}
	lon, err := utils.GetQueryParamAsFloat(c, "lon", -180, 180)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse(utils.CodeValidation, err.Error()))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(h.directoryService.NearestDistrict(lat, lon)))
}

// ============================================================================
// MARKET
// ============================================================================

func (h *DirectoryHandler) SearchMarket(c fiber.Ctx) error {
	links, err := h.directoryService.MarketSearch(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(links))
}

func (h *DirectoryHandler) FindStores(c fiber.Ctx) error {
	req := models.StoreLookupRequest{
		StoreType: models.StoreType(c.Query("type", string(models.StorePesticideDealer))),
		Method:    models.SearchMethod(c.Query("method", string(models.SearchCurrentLocation))),
		State:     c.Query("state"),
		District:  c.Query("district"),
	}

	resp, err := h.directoryService.StoreLookup(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(resp))
}
