// Package domain holds the weather forecast types
package domain

// Current is the latest observed/interpolated state
type Current struct {
	Temperature   float64 `json:"temperature"`
	ApparentTemp  float64 `json:"apparentTemperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WeatherCode   int     `json:"weatherCode"`
	IsDay         bool    `json:"isDay"`
	Precipitation float64 `json:"precipitation"`
}

// Day is one forecast day
type Day struct {
	Date          string  `json:"date"`
	TempMin       float64 `json:"tempMin"`
	TempMax       float64 `json:"tempMax"`
	WeatherCode   int     `json:"weatherCode"`
	Precipitation float64 `json:"precipitation"`
	PrecipProb    float64 `json:"precipitationProbability"`
}

// Hourly carries the raw hourly series for the dashboard charts.
// The upstream arrays are passed through untouched, index-aligned.
type Hourly struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature"`
	PrecipProb  []float64 `json:"precipitationProbability"`
	WeatherCode []int     `json:"weatherCode"`
}

// Report is the full normalized weather payload
type Report struct {
	Current  Current `json:"current"`
	Forecast []Day   `json:"forecast"`
	Hourly   Hourly  `json:"hourly"`
}
