package handler

import (
	"errors"
	"net/http"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/middleware"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"github.com/fakhrymubarak/city-dashboard/internal/service"
)

const genericWeatherError = "failed to retrieve data"

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
}

func NewWeatherHandler(svc service.WeatherServiceInterface) *WeatherHandler {
	return &WeatherHandler{
		WeatherService: svc,
	}
}

// HandleGetWeather serves POST /get-weather with body {"city": "..."}.
// Success returns the aggregated payload unwrapped.
func (h *WeatherHandler) HandleGetWeather(w http.ResponseWriter, r *http.Request) {
	var req model.WeatherRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.WeatherService.AggregateWeather(r.Context(), req.City)
	if err != nil {
		status, errMsg := weatherErrorStatus(err)
		userID, _ := middleware.UserIDFromContext(r.Context())
		config.GetLogger().Warnw("Weather request failed", "user", userID, "city", req.City, "status", status)
		writeError(w, status, errMsg)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// weatherErrorStatus maps an aggregation error to a status and a caller-safe message.
func weatherErrorStatus(err error) (int, string) {
	if errors.Is(err, service.ErrEmptyCity) {
		return http.StatusBadRequest, err.Error()
	}

	var upstreamErr *repository.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return http.StatusInternalServerError, genericWeatherError
	}
	switch {
	case errors.Is(err, repository.ErrCityNotFound), errors.Is(err, repository.ErrWeatherNotFound):
		return http.StatusNotFound, upstreamErr.Error()
	default:
		return http.StatusInternalServerError, upstreamErr.Error()
	}
}
