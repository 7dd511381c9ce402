package repository

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
)

const (
	providerAccuWeather = "accuweather"
	maxForecastDays     = 5
)

// ForecastRepository resolves a city to a daily forecast through AccuWeather.
type ForecastRepository interface {
	GetForecast(ctx context.Context, city string) ([]model.ForecastDay, error)
}

type forecastRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewForecastRepository(baseURL, apiKey string, httpClient ...*http.Client) ForecastRepository {
	return &forecastRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: pickClient(httpClient),
	}
}

// GetForecast searches for city, then fetches the 5-day forecast for the first match.
// Shorter forecasts are returned as-is.
func (r *forecastRepository) GetForecast(ctx context.Context, city string) ([]model.ForecastDay, error) {
	if r.apiKey == "" {
		return nil, upstreamError(providerAccuWeather, ErrUpstreamUnavailable, ErrAPIKeyMissing)
	}

	key, err := r.searchLocationKey(ctx, city)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("apikey", r.apiKey)
	query.Set("metric", "true")

	endpoint := r.baseURL + "/forecasts/v1/daily/5day/" + url.PathEscape(key)
	resp, err := get(ctx, r.httpClient, providerAccuWeather, endpoint, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(providerAccuWeather, ErrUpstreamUnavailable, resp)
	}

	var data model.AccuWeatherDailyForecast
	if err := decodeJSON(providerAccuWeather, resp, &data); err != nil {
		return nil, err
	}

	if data.DailyForecasts == nil {
		return nil, upstreamError(providerAccuWeather, ErrMalformedResponse, nil)
	}

	days := *data.DailyForecasts
	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}
	forecast := make([]model.ForecastDay, 0, len(days))
	for _, d := range days {
		forecast = append(forecast, model.ForecastDay{
			Date:        d.Date,
			MinTemp:     d.Temperature.Minimum.Value,
			MaxTemp:     d.Temperature.Maximum.Value,
			DayPhrase:   d.Day.IconPhrase,
			NightPhrase: d.Night.IconPhrase,
		})
	}
	return forecast, nil
}

func (r *forecastRepository) searchLocationKey(ctx context.Context, city string) (string, error) {
	query := url.Values{}
	query.Set("apikey", r.apiKey)
	query.Set("q", city)

	resp, err := get(ctx, r.httpClient, providerAccuWeather, r.baseURL+"/locations/v1/cities/search", query)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(providerAccuWeather, ErrUpstreamUnavailable, resp)
	}

	var locations []model.AccuWeatherLocation
	if err := decodeJSON(providerAccuWeather, resp, &locations); err != nil {
		return "", err
	}
	if len(locations) == 0 {
		return "", upstreamError(providerAccuWeather, ErrCityNotFound, nil)
	}
	if locations[0].Key == "" {
		return "", upstreamError(providerAccuWeather, ErrMalformedResponse, nil)
	}
	return locations[0].Key, nil
}
