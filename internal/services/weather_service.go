package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"
)

const weatherServiceName = "weather"

type IWeatherService interface {
	Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastDay, error)
	ForecastForDistrict(ctx context.Context, state, district string) (*models.ForecastResponse, error)
}

type WeatherService struct {
	baseURL  string
	client   *http.Client
	cache    Cache
	cacheTTL time.Duration
}

func NewWeatherService(baseURL string, timeout time.Duration, cache Cache, cacheTTL time.Duration) *WeatherService {
	return &WeatherService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// SprayAdvisoryFor is Safe iff the rain probability is at most the threshold.
func SprayAdvisoryFor(rainProbability float64) models.SprayAdvisory {
	if rainProbability <= models.SprayRainThreshold {
		return models.SpraySafe
	}
	return models.SprayHighRisk
}

// Forecast returns exactly five daily entries or an error, never a partial series.
func (w *WeatherService) Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastDay, error) {
	cacheKey := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if w.cache != nil {
		var cached []models.ForecastDay
		if err := w.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) == models.ForecastDays {
			metrics.CacheHits.WithLabelValues(weatherServiceName).Inc()
			return cached, nil
		}
	}

	raw, err := w.fetch(ctx, lat, lon)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(weatherServiceName).Inc()
		return nil, models.NewRemoteServiceError(weatherServiceName, err)
	}

	days, err := ParseForecast(raw)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(weatherServiceName).Inc()
		return nil, models.NewRemoteServiceError(weatherServiceName, err)
	}

	if w.cache != nil {
		if err := w.cache.Set(ctx, cacheKey, days, w.cacheTTL); err != nil {
			slog.Warn("failed to cache forecast", "error", err)
		}
	}
	return days, nil
}

func (w *WeatherService) ForecastForDistrict(ctx context.Context, state, district string) (*models.ForecastResponse, error) {
	loc, ok := directory.WeatherLocation(state, district)
	if !ok {
		return nil, models.NewValidationError("district", fmt.Sprintf("no coordinates for %s, %s", district, state))
	}

	days, err := w.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	return &models.ForecastResponse{
		State:    state,
		District: district,
		Days:     days,
		Message:  "Analysis complete. Review the 'Action Advice' before applying treatments.",
	}, nil
}

func (w *WeatherService) fetch(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,precipitation_probability_max")
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		slog.Error("error fetching weather data", "error", err)
		return nil, fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("weather API returned non-200 status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var weather models.OpenMeteoResponse
	if err := json.Unmarshal(body, &weather); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &weather, nil
}

// ParseForecast maps the first five daily entries. Missing or short arrays
// and null values are rejected.
func ParseForecast(raw *models.OpenMeteoResponse) ([]models.ForecastDay, error) {
	if raw == nil || raw.Daily == nil {
		return nil, errors.New("forecast has no daily section")
	}
	d := raw.Daily
	n := models.ForecastDays
	if len(d.Time) < n || len(d.Temperature2mMax) < n || len(d.PrecipitationProbabilityMax) < n {
		return nil, fmt.Errorf("forecast has fewer than %d daily entries", n)
	}

	days := make([]models.ForecastDay, 0, n)
	for i := range n {
		temp, rain := d.Temperature2mMax[i], d.PrecipitationProbabilityMax[i]
		if temp == nil || rain == nil {
			return nil, fmt.Errorf("forecast entry %d has missing values", i)
		}
		advisory := SprayAdvisoryFor(*rain)
		days = append(days, models.ForecastDay{
			Date:            d.Time[i],
			MaxTemperature:  *temp,
			RainProbability: *rain,
			SprayAdvisory:   advisory,
			ActionAdvice:    advisory.Label(),
		})
	}
	return days, nil
}
