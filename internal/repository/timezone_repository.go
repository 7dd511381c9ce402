package repository

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
)

const providerTimezoneDB = "timezonedb"

// TimezoneRepository looks up the zone of a coordinate through TimezoneDB.
type TimezoneRepository interface {
	GetTimezone(ctx context.Context, coord model.Coord) (*model.TimezoneInfo, error)
}

type timezoneRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTimezoneRepository(baseURL, apiKey string, httpClient ...*http.Client) TimezoneRepository {
	return &timezoneRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: pickClient(httpClient),
	}
}

func (r *timezoneRepository) GetTimezone(ctx context.Context, coord model.Coord) (*model.TimezoneInfo, error) {
	if r.apiKey == "" {
		return nil, upstreamError(providerTimezoneDB, ErrUpstreamUnavailable, ErrAPIKeyMissing)
	}

	query := url.Values{}
	query.Set("key", r.apiKey)
	query.Set("format", "json")
	query.Set("by", "position")
	query.Set("lat", formatCoord(coord.Lat))
	query.Set("lng", formatCoord(coord.Lon))

	resp, err := get(ctx, r.httpClient, providerTimezoneDB, r.baseURL+"/get-time-zone", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(providerTimezoneDB, ErrUpstreamUnavailable, resp)
	}

	var data model.TimezoneDBResponse
	if err := decodeJSON(providerTimezoneDB, resp, &data); err != nil {
		return nil, err
	}
	// TimezoneDB answers 200 with status FAILED for bad keys or positions
	if data.Status != "OK" {
		return nil, upstreamError(providerTimezoneDB, ErrUpstreamUnavailable, errors.New(data.Message))
	}

	return &model.TimezoneInfo{ZoneName: data.ZoneName, LocalTime: data.Formatted}, nil
}
