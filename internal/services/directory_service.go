package services

import (
	"fmt"
	"strings"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/models"
	"agrivision-service/shared/utils"
)

const googleMapsSearch = "https://www.google.com/maps/search/"

type IDirectoryService interface {
	OfficeLookup(state, district string) (*models.OfficeLookupResponse, error)
	MarketSearch(query string) (*models.MarketLinks, error)
	StoreLookup(req models.StoreLookupRequest) (*models.StoreLookupResponse, error)
	NearestDistrict(lat, lon float64) models.NearestDistrict
	ExpertContact(disease string) models.ExpertSection
}

type DirectoryService struct {
	whatsAppNumber string
}

func NewDirectoryService(whatsAppNumber string) *DirectoryService {
	return &DirectoryService{whatsAppNumber: whatsAppNumber}
}

func OfficeMapsURL(state, district string) string {
	return googleMapsSearch + utils.PlusJoin(fmt.Sprintf("District Agriculture Office %s %s", district, state))
}

func (s *DirectoryService) OfficeLookup(state, district string) (*models.OfficeLookupResponse, error) {
	if !directory.Support.Contains(state, district) {
		return nil, models.NewValidationError("district", fmt.Sprintf("%s is not a listed district of %s", district, state))
	}
	return &models.OfficeLookupResponse{
		State:      state,
		District:   district,
		MapsURL:    OfficeMapsURL(state, district),
		PortalURL:  directory.PortalURL(state),
		Helplines:  directory.Helplines(),
		Disclaimer: directory.KVKDisclaimer,
	}, nil
}

func (s *DirectoryService) MarketSearch(query string) (*models.MarketLinks, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("q", "search term is required")
	}
	q := utils.PlusJoin(query)
	return &models.MarketLinks{
		Query:     query,
		AmazonURL: "https://www.amazon.in/s?k=" + q + "+pesticide",
		MoglixURL: "https://www.moglix.com/search?q=" + q,
	}, nil
}

func (s *DirectoryService) StoreLookup(req models.StoreLookupRequest) (*models.StoreLookupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &models.StoreLookupResponse{StoreType: req.StoreType, Method: req.Method}
	switch req.Method {
	case models.SearchCurrentLocation:
		resp.MapsURL = googleMapsSearch + utils.PlusJoin(string(req.StoreType)) + "+near+me"
		resp.Message = fmt.Sprintf("Searching for %s near your current location.", req.StoreType)
	case models.SearchManual:
		if !directory.Stores.Contains(req.State, req.District) {
			return nil, models.NewValidationError("district", fmt.Sprintf("%s is not a listed district of %s", req.District, req.State))
		}
		resp.MapsURL = googleMapsSearch + utils.PlusJoin(fmt.Sprintf("%s in %s %s", req.StoreType, req.District, req.State))
		resp.Message = fmt.Sprintf("Searching for %s in %s, %s.", req.StoreType, req.District, req.State)
	}
	return resp, nil
}

func (s *DirectoryService) NearestDistrict(lat, lon float64) models.NearestDistrict {
	return directory.NearestWeatherLocation(lat, lon)
}

// ExpertContact builds the WhatsApp second opinion link for a diagnosis.
func (s *DirectoryService) ExpertContact(disease string) models.ExpertSection {
	message := fmt.Sprintf("Hello Expert, my crop was identified as %s by Agri-Vision AI. Can you verify this?", disease)
	return models.ExpertSection{
		Message:     message,
		WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, utils.PercentSpaces(message)),
	}
}
