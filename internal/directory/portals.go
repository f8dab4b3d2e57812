package directory

import "agrivision-service/internal/models"

// PortalFallback is returned for a state with no known portal.
const PortalFallback = "#"

var statePortals = map[string]string{
	"Bihar":         "https://dbtagriculture.bihar.gov.in/",
	"Uttar Pradesh": "http://upagriculture.com/",
	"Punjab":        "https://agri.punjab.gov.in/",
	"Maharashtra":   "https://krishi.maharashtra.gov.in/",
	"West Bengal":   "https://matirkatha.gov.in/",
	"Haryana":       "https://agriharyana.gov.in/",
	"Rajasthan":     "https://agriculture.rajasthan.gov.in/",
}

func PortalURL(state string) string {
	if url, ok := statePortals[state]; ok {
		return url
	}
	return PortalFallback
}

var helplines = []models.Helpline{
	{Name: "Kisan Call Center", Number: "1800-180-1551", Note: "Toll-Free, 24/7"},
	{Name: "PM-Kisan Help", Number: "011-24300606"},
}

func Helplines() []models.Helpline {
	out := make([]models.Helpline, len(helplines))
	copy(out, helplines)
	return out
}

// KVKDisclaimer is shown with every office lookup.
const KVKDisclaimer = "If the AI diagnosis seems unclear, visit your local Krishi Vigyan Kendra (KVK) with a leaf sample."
