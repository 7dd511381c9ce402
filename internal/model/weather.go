package model

import (
	"fmt"
	"strings"
)

// Coord is a geographic position in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherSnapshot is the current conditions for a city.
type WeatherSnapshot struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"windSpeed"`
	Rain        float64 `json:"rain"`
	Coord       Coord   `json:"coord"`
}

// ForecastDay is one entry of the daily forecast, in provider order.
type ForecastDay struct {
	Date        string  `json:"date"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	DayPhrase   string  `json:"dayPhrase"`
	NightPhrase string  `json:"nightPhrase"`
}

type TimezoneInfo struct {
	ZoneName  string `json:"zoneName"`
	LocalTime string `json:"localTime"`
}

// AggregatedWeatherResponse is the body returned by POST /get-weather.
type AggregatedWeatherResponse struct {
	Weather         WeatherSnapshot `json:"weather"`
	Forecast        []ForecastDay   `json:"forecast"`
	Timezone        TimezoneInfo    `json:"timezone"`
	AirQuality      int             `json:"airQuality"`
	AirQualityLabel string          `json:"airQualityLabel"`
	Flag            string          `json:"flag"`
	MapCoord        Coord           `json:"mapCoord"`
}

// WeatherRequest is the body accepted by POST /get-weather.
type WeatherRequest struct {
	City string `json:"city"`
}

var airQualityLabels = []string{"Good", "Fair", "Moderate", "Poor", "Very Poor"}

// AirQualityLabel maps an AQI category (1-5) to its display text.
// Anything outside that range is "Unknown".
func AirQualityLabel(aqi int) string {
	if aqi < 1 || aqi > len(airQualityLabels) {
		return "Unknown"
	}
	return airQualityLabels[aqi-1]
}

// FlagURL fills tmpl with the lower-cased country code. An empty code yields "".
func FlagURL(tmpl, countryCode string) string {
	if countryCode == "" {
		return ""
	}
	return fmt.Sprintf(tmpl, strings.ToLower(countryCode))
}

// NewAggregatedWeatherResponse assembles the response so that MapCoord always
// mirrors the weather coordinate and Forecast is never nil.
func NewAggregatedWeatherResponse(weather WeatherSnapshot, forecast []ForecastDay, tz TimezoneInfo, aqi int, flagTemplate string) *AggregatedWeatherResponse {
	if forecast == nil {
		forecast = []ForecastDay{}
	}
	return &AggregatedWeatherResponse{
		Weather:         weather,
		Forecast:        forecast,
		Timezone:        tz,
		AirQuality:      aqi,
		AirQualityLabel: AirQualityLabel(aqi),
		Flag:            FlagURL(flagTemplate, weather.Country),
		MapCoord:        weather.Coord,
	}
}
