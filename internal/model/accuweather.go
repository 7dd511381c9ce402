package model

// AccuWeatherLocation is one match of the city search endpoint.
type AccuWeatherLocation struct {
	Key           string `json:"Key"`
	LocalizedName string `json:"LocalizedName"`
	Country       struct {
		ID string `json:"ID"`
	} `json:"Country"`
}

type accuWeatherValue struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

type accuWeatherHalfDay struct {
	Icon       int    `json:"Icon"`
	IconPhrase string `json:"IconPhrase"`
}

// AccuWeatherDay is one entry of DailyForecasts.
type AccuWeatherDay struct {
	Date        string `json:"Date"`
	Temperature struct {
		Minimum accuWeatherValue `json:"Minimum"`
		Maximum accuWeatherValue `json:"Maximum"`
	} `json:"Temperature"`
	Day   accuWeatherHalfDay `json:"Day"`
	Night accuWeatherHalfDay `json:"Night"`
}

// AccuWeatherDailyForecast is the payload of /forecasts/v1/daily/5day/{key}.
// DailyForecasts is nil when the field is absent from the body.
type AccuWeatherDailyForecast struct {
	DailyForecasts *[]AccuWeatherDay `json:"DailyForecasts"`
}
