package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
)

const providerOpenWeatherMap = "openweathermap"

// WeatherRepository reads current conditions and air quality from OpenWeatherMap.
type WeatherRepository interface {
	GetCurrentWeather(ctx context.Context, city string) (*model.WeatherSnapshot, error)
	GetAirQuality(ctx context.Context, coord model.Coord) (int, error)
}

type weatherRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherRepository creates a new OpenWeatherMap repository instance
func NewWeatherRepository(baseURL, apiKey string, httpClient ...*http.Client) WeatherRepository {
	return &weatherRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: pickClient(httpClient),
	}
}

// GetCurrentWeather fetches /weather for city in metric units.
// Any non-200 answer is reported as ErrWeatherNotFound.
func (r *weatherRepository) GetCurrentWeather(ctx context.Context, city string) (*model.WeatherSnapshot, error) {
	if r.apiKey == "" {
		return nil, upstreamError(providerOpenWeatherMap, ErrUpstreamUnavailable, ErrAPIKeyMissing)
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", r.apiKey)
	query.Set("units", "metric")

	resp, err := get(ctx, r.httpClient, providerOpenWeatherMap, r.baseURL+"/weather", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(providerOpenWeatherMap, ErrWeatherNotFound, resp)
	}

	var data model.OpenWeatherMapResponse
	if err := decodeJSON(providerOpenWeatherMap, resp, &data); err != nil {
		return nil, err
	}
	if data.Main == nil || data.Coord == nil {
		return nil, upstreamError(providerOpenWeatherMap, ErrMalformedResponse, nil)
	}

	return toWeatherSnapshot(&data), nil
}

func toWeatherSnapshot(data *model.OpenWeatherMapResponse) *model.WeatherSnapshot {
	snapshot := &model.WeatherSnapshot{
		City:        data.Name,
		Country:     data.Sys.Country,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		Description: "No description",
		Pressure:    data.Main.Pressure,
		WindSpeed:   data.Wind.Speed,
		Coord:       model.Coord{Lat: data.Coord.Lat, Lon: data.Coord.Lon},
	}
	if snapshot.City == "" {
		snapshot.City = "Unknown"
	}
	if len(data.Weather) > 0 {
		if data.Weather[0].Description != "" {
			snapshot.Description = data.Weather[0].Description
		}
		snapshot.Icon = data.Weather[0].Icon
	}

	// prefer the 3h accumulation, then 1h
	if data.Rain != nil {
		switch {
		case data.Rain.ThreeHour != nil:
			snapshot.Rain = *data.Rain.ThreeHour
		case data.Rain.OneHour != nil:
			snapshot.Rain = *data.Rain.OneHour
		}
	}
	return snapshot
}

// GetAirQuality returns the 1..5 AQI of the first air_pollution sample.
func (r *weatherRepository) GetAirQuality(ctx context.Context, coord model.Coord) (int, error) {
	if r.apiKey == "" {
		return 0, upstreamError(providerOpenWeatherMap, ErrUpstreamUnavailable, ErrAPIKeyMissing)
	}

	query := url.Values{}
	query.Set("lat", formatCoord(coord.Lat))
	query.Set("lon", formatCoord(coord.Lon))
	query.Set("appid", r.apiKey)

	resp, err := get(ctx, r.httpClient, providerOpenWeatherMap, r.baseURL+"/air_pollution", query)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, statusError(providerOpenWeatherMap, ErrUpstreamUnavailable, resp)
	}

	var data model.OpenWeatherMapAirPollution
	if err := decodeJSON(providerOpenWeatherMap, resp, &data); err != nil {
		return 0, err
	}
	if len(data.List) == 0 {
		return 0, upstreamError(providerOpenWeatherMap, ErrMalformedResponse, nil)
	}
	return data.List[0].Main.AQI, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
