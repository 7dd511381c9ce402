package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
)

const londonWeather = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 15.2, "feels_like": 14.8, "temp_min": 12, "temp_max": 18, "pressure": 1013, "humidity": 65},
	"wind": {"speed": 4.1, "deg": 240},
	"rain": {"1h": 0.3, "3h": 1.2},
	"sys": {"country": "GB"},
	"name": "London",
	"cod": 200
}`

func TestNewWeatherRepository(t *testing.T) {
	repo := NewWeatherRepository("http://example.invalid", "key")
	if repo == nil {
		t.Error("Expected repository to be created")
	}
}

func TestWeatherRepository_GetCurrentWeather_Success(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client := MockClient(func(req *http.Request) *http.Response {
		gotPath = req.URL.Path
		gotQuery = req.URL.Query()
		return JSONResponse(http.StatusOK, londonWeather)
	})
	repo := NewWeatherRepository("http://owm.test/data/2.5/", "testkey", client)

	weather, err := repo.GetCurrentWeather(context.Background(), "London")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/data/2.5/weather" {
		t.Errorf("Expected path /data/2.5/weather, got %s", gotPath)
	}
	if gotQuery["q"][0] != "London" || gotQuery["appid"][0] != "testkey" || gotQuery["units"][0] != "metric" {
		t.Errorf("Unexpected query %v", gotQuery)
	}

	if weather.City != "London" || weather.Country != "GB" {
		t.Errorf("Expected London, GB, got %s, %s", weather.City, weather.Country)
	}
	if weather.Temperature != 15.2 || weather.FeelsLike != 14.8 {
		t.Errorf("Unexpected temperatures %v / %v", weather.Temperature, weather.FeelsLike)
	}
	if weather.Humidity != 65 || weather.Pressure != 1013 || weather.WindSpeed != 4.1 {
		t.Errorf("Unexpected humidity/pressure/wind %d/%d/%v", weather.Humidity, weather.Pressure, weather.WindSpeed)
	}
	if weather.Description != "light rain" || weather.Icon != "10d" {
		t.Errorf("Unexpected description/icon %q/%q", weather.Description, weather.Icon)
	}
	if weather.Rain != 1.2 {
		t.Errorf("Expected 3h rain 1.2, got %v", weather.Rain)
	}
	if weather.Coord != (model.Coord{Lat: 51.5085, Lon: -0.1257}) {
		t.Errorf("Unexpected coord %+v", weather.Coord)
	}
}

func TestWeatherRepository_GetCurrentWeather_EncodesCity(t *testing.T) {
	var rawQuery string
	client := MockClient(func(req *http.Request) *http.Response {
		rawQuery = req.URL.RawQuery
		return JSONResponse(http.StatusOK, londonWeather)
	})
	repo := NewWeatherRepository("http://owm.test", "k", client)

	_, _ = repo.GetCurrentWeather(context.Background(), "São Paulo&appid=evil")

	if want := "q=S%C3%A3o+Paulo%26appid%3Devil"; !strings.Contains(rawQuery, want) {
		t.Errorf("Expected encoded city %s in %s", want, rawQuery)
	}
}

func TestWeatherRepository_GetCurrentWeather_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCity string
		wantDesc string
		wantIcon string
		wantRain float64
	}{
		{
			name:     "no rain no weather no name",
			body:     `{"coord": {"lat": 1, "lon": 2}, "main": {"temp": 20}, "sys": {"country": "XX"}}`,
			wantCity: "Unknown",
			wantDesc: "No description",
			wantIcon: "",
			wantRain: 0,
		},
		{
			name:     "only 1h rain",
			body:     `{"name": "Bergen", "coord": {"lat": 1, "lon": 2}, "main": {"temp": 8}, "weather": [{"description": "", "icon": "09n"}], "rain": {"1h": 0.7}}`,
			wantCity: "Bergen",
			wantDesc: "No description",
			wantIcon: "09n",
			wantRain: 0.7,
		},
		{
			name:     "empty rain object",
			body:     `{"name": "Oslo", "coord": {"lat": 1, "lon": 2}, "main": {"temp": 8}, "weather": [{"description": "mist", "icon": "50d"}], "rain": {}}`,
			wantCity: "Oslo",
			wantDesc: "mist",
			wantIcon: "50d",
			wantRain: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusOK, tt.body)
			})
			repo := NewWeatherRepository("http://owm.test", "k", client)

			weather, err := repo.GetCurrentWeather(context.Background(), "x")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if weather.City != tt.wantCity {
				t.Errorf("Expected city %q, got %q", tt.wantCity, weather.City)
			}
			if weather.Description != tt.wantDesc {
				t.Errorf("Expected description %q, got %q", tt.wantDesc, weather.Description)
			}
			if weather.Icon != tt.wantIcon {
				t.Errorf("Expected icon %q, got %q", tt.wantIcon, weather.Icon)
			}
			if weather.Rain != tt.wantRain {
				t.Errorf("Expected rain %v, got %v", tt.wantRain, weather.Rain)
			}
		})
	}
}

func TestWeatherRepository_GetCurrentWeather_ErrorCases(t *testing.T) {
	tests := []struct {
		name     string
		client   *http.Client
		apiKey   string
		wantKind error
	}{
		{
			name: "city not found",
			client: MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusNotFound, `{"cod": "404", "message": "city not found"}`)
			}),
			apiKey:   "k",
			wantKind: ErrWeatherNotFound,
		},
		{
			name: "invalid key",
			client: MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusUnauthorized, `{"cod": 401, "message": "Invalid API key"}`)
			}),
			apiKey:   "k",
			wantKind: ErrWeatherNotFound,
		},
		{
			name:     "network failure",
			client:   &http.Client{Transport: ErrorRoundTripper{Err: errors.New("connection refused")}},
			apiKey:   "k",
			wantKind: ErrUpstreamUnavailable,
		},
		{
			name: "invalid json",
			client: MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusOK, `{not json`)
			}),
			apiKey:   "k",
			wantKind: ErrMalformedResponse,
		},
		{
			name: "missing main",
			client: MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusOK, `{"name": "London", "coord": {"lat": 1, "lon": 2}}`)
			}),
			apiKey:   "k",
			wantKind: ErrMalformedResponse,
		},
		{
			name: "missing coord",
			client: MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(http.StatusOK, `{"name": "London", "main": {"temp": 1}}`)
			}),
			apiKey:   "k",
			wantKind: ErrMalformedResponse,
		},
		{
			name: "api key missing",
			client: MockClient(func(req *http.Request) *http.Response {
				t.Error("Expected no request without an API key")
				return JSONResponse(http.StatusOK, londonWeather)
			}),
			apiKey:   "",
			wantKind: ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewWeatherRepository("http://owm.test", tt.apiKey, tt.client)

			weather, err := repo.GetCurrentWeather(context.Background(), "London")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if weather != nil {
				t.Errorf("Expected no partial data, got %+v", weather)
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("Expected %v, got %v", tt.wantKind, err)
			}
			var upstreamErr *UpstreamError
			if !errors.As(err, &upstreamErr) {
				t.Fatalf("Expected *UpstreamError, got %T", err)
			}
			if upstreamErr.Provider != "openweathermap" {
				t.Errorf("Expected provider openweathermap, got %s", upstreamErr.Provider)
			}
			if err.Error() != tt.wantKind.Error() {
				t.Errorf("Expected generic message %q, got %q", tt.wantKind.Error(), err.Error())
			}
		})
	}
}

func TestWeatherRepository_GetCurrentWeather_APIKeyMissingCause(t *testing.T) {
	repo := NewWeatherRepository("http://owm.test", "")

	_, err := repo.GetCurrentWeather(context.Background(), "London")
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("Expected ErrAPIKeyMissing cause, got %v", err)
	}
}

func TestWeatherRepository_GetAirQuality(t *testing.T) {
	var gotQuery map[string][]string
	client := MockClient(func(req *http.Request) *http.Response {
		if req.URL.Path != "/air_pollution" {
			t.Errorf("Expected /air_pollution, got %s", req.URL.Path)
		}
		gotQuery = req.URL.Query()
		return JSONResponse(http.StatusOK, `{"list": [{"main": {"aqi": 2}, "dt": 1700000000}, {"main": {"aqi": 5}}]}`)
	})
	repo := NewWeatherRepository("http://owm.test", "k", client)

	aqi, err := repo.GetAirQuality(context.Background(), model.Coord{Lat: 51.5085, Lon: -0.1257})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if aqi != 2 {
		t.Errorf("Expected first sample aqi 2, got %d", aqi)
	}
	if gotQuery["lat"][0] != "51.5085" || gotQuery["lon"][0] != "-0.1257" || gotQuery["appid"][0] != "k" {
		t.Errorf("Unexpected query %v", gotQuery)
	}
}

func TestWeatherRepository_GetAirQuality_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{"empty list", http.StatusOK, `{"list": []}`, ErrMalformedResponse},
		{"bad json", http.StatusOK, `[`, ErrMalformedResponse},
		{"server error", http.StatusInternalServerError, `{}`, ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := MockClient(func(req *http.Request) *http.Response {
				return JSONResponse(tt.status, tt.body)
			})
			repo := NewWeatherRepository("http://owm.test", "k", client)

			_, err := repo.GetAirQuality(context.Background(), model.Coord{})
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("Expected %v, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestWeatherRepository_ConcurrentAccess(t *testing.T) {
	client := MockClient(func(req *http.Request) *http.Response {
		return JSONResponse(http.StatusOK, `{"name": "`+req.URL.Query().Get("q")+`", "coord": {"lat": 1, "lon": 2}, "main": {"temp": 18}}`)
	})
	repo := NewWeatherRepository("http://owm.test", "k", client)
	cities := []string{"London", "Paris", "Tokyo", "Sydney", "Lima"}

	var wg sync.WaitGroup
	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()
			weather, err := repo.GetCurrentWeather(context.Background(), city)
			if err != nil {
				t.Errorf("Request for %s failed: %v", city, err)
				return
			}
			if weather.City != city {
				t.Errorf("Expected %s, got %s", city, weather.City)
			}
		}(city)
	}
	wg.Wait()
}

func TestUpstreamError_Detail(t *testing.T) {
	err := &UpstreamError{Provider: "accuweather", Kind: ErrCityNotFound}
	if got := err.Detail(); got != "accuweather: city not found" {
		t.Errorf("Unexpected detail %q", got)
	}
	err.Err = errors.New("boom")
	if got := err.Detail(); got != "accuweather: city not found: boom" {
		t.Errorf("Unexpected detail %q", got)
	}
}
