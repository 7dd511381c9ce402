package model

// OpenWeatherMapResponse is the payload of /data/2.5/weather.
// Sections that must be present are pointers so a missing one can be detected.
type OpenWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
		SeaLevel  int     `json:"sea_level"`
		GrndLevel int     `json:"grnd_level"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Rain *struct {
		OneHour   *float64 `json:"1h"`
		ThreeHour *float64 `json:"3h"`
	} `json:"rain"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// OpenWeatherMapAirPollution is the payload of /data/2.5/air_pollution.
type OpenWeatherMapAirPollution struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Dt int64 `json:"dt"`
	} `json:"list"`
}
