package services

import (
	"testing"

	"agrivision-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficeLookup(t *testing.T) {
	svc := NewDirectoryService("911234567890")

	resp, err := svc.OfficeLookup("Uttar Pradesh", "Varanasi")

	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/search/District+Agriculture+Office+Varanasi+Uttar+Pradesh", resp.MapsURL)
	assert.Equal(t, "http://upagriculture.com/", resp.PortalURL)
	assert.Len(t, resp.Helplines, 2)
	assert.Equal(t, "1800-180-1551", resp.Helplines[0].Number)
}

func TestOfficeLookup_UnknownDistrict(t *testing.T) {
	_, err := NewDirectoryService("1").OfficeLookup("Bihar", "Pune")
	assert.True(t, models.IsValidationError(err))
}

func TestMarketSearch(t *testing.T) {
	links, err := NewDirectoryService("1").MarketSearch(" Neem Oil ")

	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.in/s?k=Neem+Oil+pesticide", links.AmazonURL)
	assert.Equal(t, "https://www.moglix.com/search?q=Neem+Oil", links.MoglixURL)
}

func TestMarketSearch_Blank(t *testing.T) {
	_, err := NewDirectoryService("1").MarketSearch("  ")
	assert.True(t, models.IsValidationError(err))
}

func TestStoreLookup(t *testing.T) {
	svc := NewDirectoryService("1")

	near, err := svc.StoreLookup(models.StoreLookupRequest{StoreType: models.StoreFertilizer, Method: models.SearchCurrentLocation})
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/search/Fertilizer+Shop+near+me", near.MapsURL)

	manual, err := svc.StoreLookup(models.StoreLookupRequest{
		StoreType: models.StoreSeeds, Method: models.SearchManual, State: "Punjab", District: "Patiala",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/search/Beej+Bhandar+(Seeds)+in+Patiala+Punjab", manual.MapsURL)
}

func TestStoreLookup_Rejects(t *testing.T) {
	svc := NewDirectoryService("1")

	tests := []models.StoreLookupRequest{
		{StoreType: "Hardware", Method: models.SearchCurrentLocation},
		{StoreType: models.StoreFertilizer, Method: "teleport"},
		{StoreType: models.StoreFertilizer, Method: models.SearchManual, State: "Punjab"},
		{StoreType: models.StoreFertilizer, Method: models.SearchManual, State: "Haryana", District: "Karnal"},
	}
	for _, req := range tests {
		_, err := svc.StoreLookup(req)
		assert.True(t, models.IsValidationError(err), "%+v", req)
	}
}

func TestExpertContact(t *testing.T) {
	expert := NewDirectoryService("911234567890").ExpertContact("Leaf Blight")

	assert.Equal(t,
		"https://wa.me/911234567890?text=Hello%20Expert,%20my%20crop%20was%20identified%20as%20Leaf%20Blight%20by%20Agri-Vision%20AI.%20Can%20you%20verify%20this?",
		expert.WhatsAppURL)
}

func TestNearestDistrict(t *testing.T) {
	nearest := NewDirectoryService("1").NearestDistrict(25.25, 87.02)
	assert.Equal(t, "Bhagalpur", nearest.District)
}
