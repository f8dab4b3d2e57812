package directory

import (
	"math"

	"agrivision-service/internal/models"

	"github.com/paulmach/orb/geo"
)

type table struct {
	states    []string
	districts map[string][]string
}

func newTable(states []string, districts map[string][]string) table {
	return table{states: states, districts: districts}
}

func (t table) States() []string {
	out := make([]string, len(t.states))
	copy(out, t.states)
	return out
}

// Districts returns the state's configured districts, or an empty list for an
// unknown state.
func (t table) Districts(state string) []string {
	list, ok := t.districts[state]
	if !ok {
		return []string{}
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func (t table) Contains(state, district string) bool {
	for _, d := range t.districts[state] {
		if d == district {
			return true
		}
	}
	return false
}

// Support is the government office / portal lookup table.
var Support = newTable(
	[]string{"Bihar", "Uttar Pradesh", "Punjab", "Maharashtra", "West Bengal", "Haryana", "Rajasthan"},
	map[string][]string{
		"Bihar":         {"Bhagalpur", "Patna", "Gaya", "Muzaffarpur", "Purnia", "Darbhanga", "Araria"},
		"Uttar Pradesh": {"Lucknow", "Varanasi", "Kanpur", "Agra", "Meerut", "Prayagraj"},
		"Punjab":        {"Amritsar", "Ludhiana", "Jalandhar", "Patiala", "Bathinda"},
		"Maharashtra":   {"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad"},
		"West Bengal":   {"Kolkata", "Howrah", "Darjeeling", "Hooghly", "Siliguri"},
		"Haryana":       {"Gurugram", "Faridabad", "Panipat", "Ambala", "Karnal"},
		"Rajasthan":     {"Jaipur", "Jodhpur", "Udaipur", "Kota", "Bikaner"},
	},
)

// Stores is the dealer locator table used for manual district selection.
var Stores = newTable(
	[]string{"Bihar", "Uttar Pradesh", "Punjab", "Maharashtra"},
	map[string][]string{
		"Bihar":         {"Bhagalpur", "Patna", "Gaya", "Muzaffarpur", "Purnia"},
		"Uttar Pradesh": {"Lucknow", "Varanasi", "Kanpur", "Agra", "Meerut"},
		"Punjab":        {"Amritsar", "Ludhiana", "Jalandhar", "Patiala"},
		"Maharashtra":   {"Mumbai", "Pune", "Nagpur", "Nashik"},
	},
)

var weatherStates = []string{"Bihar", "Uttar Pradesh", "Maharashtra", "West Bengal", "Punjab"}

var weatherLocations = []models.LocationEntry{
	{State: "Bihar", District: "Bhagalpur", Latitude: 25.2425, Longitude: 87.0145},
	{State: "Bihar", District: "Patna", Latitude: 25.5941, Longitude: 85.1376},
	{State: "Bihar", District: "Gaya", Latitude: 24.7914, Longitude: 85.0002},
	{State: "Bihar", District: "Muzaffarpur", Latitude: 26.1209, Longitude: 85.3647},
	{State: "Bihar", District: "Purnia", Latitude: 25.7771, Longitude: 87.4753},
	{State: "Uttar Pradesh", District: "Lucknow", Latitude: 26.8467, Longitude: 80.9462},
	{State: "Uttar Pradesh", District: "Varanasi", Latitude: 25.3176, Longitude: 82.9739},
	{State: "Uttar Pradesh", District: "Kanpur", Latitude: 26.4499, Longitude: 80.3319},
	{State: "Uttar Pradesh", District: "Prayagraj", Latitude: 25.4358, Longitude: 81.8463},
	{State: "Maharashtra", District: "Mumbai", Latitude: 19.0760, Longitude: 72.8777},
	{State: "Maharashtra", District: "Pune", Latitude: 18.5204, Longitude: 73.8567},
	{State: "Maharashtra", District: "Nagpur", Latitude: 21.1458, Longitude: 79.0882},
	{State: "West Bengal", District: "Kolkata", Latitude: 22.5726, Longitude: 88.3639},
	{State: "West Bengal", District: "Siliguri", Latitude: 26.7271, Longitude: 88.3953},
	{State: "Punjab", District: "Amritsar", Latitude: 31.6340, Longitude: 74.8723},
	{State: "Punjab", District: "Ludhiana", Latitude: 30.9010, Longitude: 75.8573},
}

// Weather is the forecast location table; every district has coordinates.
var Weather = func() table {
	districts := make(map[string][]string, len(weatherStates))
	for _, loc := range weatherLocations {
		districts[loc.State] = append(districts[loc.State], loc.District)
	}
	return newTable(weatherStates, districts)
}()

// WeatherLocation returns the coordinates of a forecast district.
func WeatherLocation(state, district string) (models.LocationEntry, bool) {
	for _, loc := range weatherLocations {
		if loc.State == state && loc.District == district {
			return loc, true
		}
	}
	return models.LocationEntry{}, false
}

// NearestWeatherLocation returns the configured district closest to the given
// position by great-circle distance.
func NearestWeatherLocation(lat, lon float64) models.NearestDistrict {
	from := models.LocationEntry{Latitude: lat, Longitude: lon}.Point()

	best := models.NearestDistrict{DistanceKm: math.Inf(1)}
	for _, loc := range weatherLocations {
		km := geo.Distance(from, loc.Point()) / 1000
		if km < best.DistanceKm {
			best = models.NearestDistrict{LocationEntry: loc, DistanceKm: km}
		}
	}
	best.DistanceKm = math.Round(best.DistanceKm*10) / 10
	return best
}
