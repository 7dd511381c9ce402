package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyCity = errors.New("city is required")

// WeatherServiceInterface is what the HTTP layer needs from the aggregator.
type WeatherServiceInterface interface {
	AggregateWeather(ctx context.Context, city string) (*model.AggregatedWeatherResponse, error)
}

// WeatherService merges current weather, forecast, timezone and air quality
// for one city. It holds no per-request state and is safe for concurrent use.
type WeatherService struct {
	WeatherRepo  repository.WeatherRepository
	ForecastRepo repository.ForecastRepository
	TimezoneRepo repository.TimezoneRepository
	FlagTemplate string
}

func NewWeatherService(
	weatherRepo repository.WeatherRepository,
	forecastRepo repository.ForecastRepository,
	timezoneRepo repository.TimezoneRepository,
	flagTemplate string,
) *WeatherService {
	return &WeatherService{
		WeatherRepo:  weatherRepo,
		ForecastRepo: forecastRepo,
		TimezoneRepo: timezoneRepo,
		FlagTemplate: flagTemplate,
	}
}

// AggregateWeather runs the forecast lookup alongside current weather; the
// timezone and air quality lookups start once the weather coordinate is known.
// The first failure cancels the rest and no partial response is returned.
func (s *WeatherService) AggregateWeather(ctx context.Context, city string) (*model.AggregatedWeatherResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}

	var (
		weather  *model.WeatherSnapshot
		forecast []model.ForecastDay
		timezone *model.TimezoneInfo
		aqi      int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		days, err := s.ForecastRepo.GetForecast(gctx, city)
		if err != nil {
			return err
		}
		forecast = days
		return nil
	})

	g.Go(func() error {
		current, err := s.WeatherRepo.GetCurrentWeather(gctx, city)
		if err != nil {
			return err
		}
		weather = current

		byCoord, cctx := errgroup.WithContext(gctx)
		byCoord.Go(func() error {
			tz, err := s.TimezoneRepo.GetTimezone(cctx, current.Coord)
			if err != nil {
				return err
			}
			timezone = tz
			return nil
		})
		byCoord.Go(func() error {
			index, err := s.WeatherRepo.GetAirQuality(cctx, current.Coord)
			if err != nil {
				return err
			}
			aqi = index
			return nil
		})
		return byCoord.Wait()
	})

	if err := g.Wait(); err != nil {
		logAggregateFailure(city, err)
		return nil, err
	}

	return model.NewAggregatedWeatherResponse(*weather, forecast, *timezone, aqi, s.FlagTemplate), nil
}

func logAggregateFailure(city string, err error) {
	var upstreamErr *repository.UpstreamError
	if errors.As(err, &upstreamErr) {
		config.GetLogger().Errorw("Weather aggregation failed",
			"city", city,
			"provider", upstreamErr.Provider,
			"error", upstreamErr.Detail(),
		)
		return
	}
	config.GetLogger().Errorw("Weather aggregation failed", "city", city, "error", err)
}
