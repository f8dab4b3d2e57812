package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agrivision-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sevenDayForecast = `{
	"latitude": 25.25, "longitude": 87.0, "timezone": "Asia/Kolkata",
	"daily": {
		"time": ["2025-07-01","2025-07-02","2025-07-03","2025-07-04","2025-07-05","2025-07-06","2025-07-07"],
		"temperature_2m_max": [33.1, 34.0, 31.5, 30.2, 29.9, 30.0, 31.0],
		"precipitation_probability_max": [10, 40, 41, 95, 0, 50, 60]
	}
}`

func TestSprayAdvisoryFor_Threshold(t *testing.T) {
	tests := []struct {
		rain float64
		want models.SprayAdvisory
	}{
		{0, models.SpraySafe},
		{39.9, models.SpraySafe},
		{40, models.SpraySafe},
		{40.1, models.SprayHighRisk},
		{100, models.SprayHighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SprayAdvisoryFor(tt.rain), "rain=%v", tt.rain)
	}
}

func TestForecast_FirstFiveDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "25.2425", q.Get("latitude"))
		assert.Equal(t, "87.0145", q.Get("longitude"))
		assert.Equal(t, "temperature_2m_max,precipitation_probability_max", q.Get("daily"))
		assert.Equal(t, "auto", q.Get("timezone"))
		_, _ = w.Write([]byte(sevenDayForecast))
	}))
	defer server.Close()

	svc := NewWeatherService(server.URL, 5*time.Second, nil, time.Minute)
	days, err := svc.Forecast(context.Background(), 25.2425, 87.0145)

	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, "2025-07-01", days[0].Date)
	assert.Equal(t, 33.1, days[0].MaxTemperature)
	assert.Equal(t, models.SpraySafe, days[1].SprayAdvisory)
	assert.Equal(t, models.SprayHighRisk, days[2].SprayAdvisory)
	assert.Equal(t, "High Rain Risk", days[3].ActionAdvice)
	assert.Equal(t, "2025-07-05", days[4].Date)
}

func TestForecast_MissingDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": true, "reason": "bad coordinates"}`))
	}))
	defer server.Close()

	days, err := NewWeatherService(server.URL, time.Second, nil, time.Minute).Forecast(context.Background(), 1, 2)

	assert.Nil(t, days)
	assert.True(t, models.IsRemoteServiceError(err))
}

func TestParseForecast_RejectsShortOrNullSeries(t *testing.T) {
	v := func(f float64) *float64 { return &f }

	short := &models.OpenMeteoResponse{Daily: &models.OpenMeteoDaily{
		Time:                        []string{"a", "b", "c", "d", "e"},
		Temperature2mMax:            []*float64{v(1), v(2), v(3), v(4), v(5)},
		PrecipitationProbabilityMax: []*float64{v(1), v(2), v(3), v(4)},
	}}
	_, err := ParseForecast(short)
	assert.Error(t, err)

	withNull := &models.OpenMeteoResponse{Daily: &models.OpenMeteoDaily{
		Time:                        []string{"a", "b", "c", "d", "e"},
		Temperature2mMax:            []*float64{v(1), v(2), nil, v(4), v(5)},
		PrecipitationProbabilityMax: []*float64{v(1), v(2), v(3), v(4), v(5)},
	}}
	_, err = ParseForecast(withNull)
	assert.Error(t, err)
}

func TestForecast_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewWeatherService(server.URL, time.Second, nil, time.Minute).Forecast(context.Background(), 1, 2)

	assert.True(t, models.IsRemoteServiceError(err))
}

func TestForecast_CachedPerCoordinate(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(sevenDayForecast))
	}))
	defer server.Close()

	svc := NewWeatherService(server.URL, time.Second, newMemoryCache(), time.Minute)
	_, err := svc.Forecast(context.Background(), 25.5941, 85.1376)
	require.NoError(t, err)
	days, err := svc.Forecast(context.Background(), 25.5941, 85.1376)
	require.NoError(t, err)

	assert.Len(t, days, 5)
	assert.Equal(t, int32(1), calls.Load())
}

func TestForecastForDistrict_UnknownDistrict(t *testing.T) {
	svc := NewWeatherService("http://unused.invalid", time.Second, nil, time.Minute)

	_, err := svc.ForecastForDistrict(context.Background(), "Bihar", "Atlantis")

	assert.True(t, models.IsValidationError(err))
}

func TestForecastForDistrict_UsesTableCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "18.5204", r.URL.Query().Get("latitude"))
		_, _ = w.Write([]byte(sevenDayForecast))
	}))
	defer server.Close()

	resp, err := NewWeatherService(server.URL, time.Second, nil, time.Minute).
		ForecastForDistrict(context.Background(), "Maharashtra", "Pune")

	require.NoError(t, err)
	assert.Equal(t, "Pune", resp.District)
	assert.Len(t, resp.Days, 5)
}
