package models

// ForecastDays is the number of daily entries shown in the spray forecast.
const ForecastDays = 5

// SprayRainThreshold is the highest rain probability (percent) still considered safe.
const SprayRainThreshold = 40.0

type ForecastDay struct {
	Date            string        `json:"date"`
	MaxTemperature  float64       `json:"max_temperature"`
	RainProbability float64       `json:"rain_probability_percent"`
	SprayAdvisory   SprayAdvisory `json:"spray_advisory"`
	ActionAdvice    string        `json:"action_advice"`
}

type ForecastResponse struct {
	State    string        `json:"state"`
	District string        `json:"district"`
	Days     []ForecastDay `json:"days"`
	Message  string        `json:"message"`
}

// OpenMeteoResponse holds the parts of the forecast payload this service reads.
type OpenMeteoResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Daily     *OpenMeteoDaily `json:"daily"`
}

type OpenMeteoDaily struct {
	Time                        []string   `json:"time"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
}
