// Package service contains the weather forecast workflows
package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/weather/domain"
)

const (
	defaultTTL   = 10 * time.Minute
	forecastDays = 6
)

// Service defines the weather service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the weather service
type Svc struct {
	client    *upstream.Client
	baseURL   string
	latitude  string
	longitude string
	timezone  string
	cell      *cache.Cell[domain.Report]
	log       logger.Logger
}

// Config carries the upstream settings read from env
type Config struct {
	BaseURL   string
	Latitude  string
	Longitude string
	Timezone  string
	TTL       time.Duration
}

// FromConf reads the WEATHER_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("WEATHER_")
	return Config{
		BaseURL:   c.MayString("API_URL", "https://api.open-meteo.com/v1"),
		Latitude:  c.MayString("LATITUDE", "47.2184"),
		Longitude: c.MayString("LONGITUDE", "-1.5536"),
		Timezone:  c.MayString("TIMEZONE", "Europe/Paris"),
		TTL:       c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs a weather service
func New(cfg Config, client *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = upstream.New(upstream.Options{Integration: "weather"})
	}
	return &Svc{
		client:    client,
		baseURL:   cfg.BaseURL,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		timezone:  cfg.Timezone,
		cell:      cache.NewCell[domain.Report]("weather", cfg.TTL),
		log:       *logger.Named("weather"),
	}
}

// Report returns the cached forecast for the configured coordinates
func (s *Svc) Report(ctx context.Context) (domain.Report, error) {
	return s.cell.Get(ctx, s.fetch)
}

// forecastResponse mirrors the open-meteo payload shape
type forecastResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		ApparentTemp  float64 `json:"apparent_temperature"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
		IsDay         int     `json:"is_day"`
		Precipitation float64 `json:"precipitation"`
	} `json:"current"`
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		WeatherCode   []int     `json:"weather_code"`
		Precipitation []float64 `json:"precipitation_sum"`
		PrecipProb    []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		PrecipProb  []float64 `json:"precipitation_probability"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"hourly"`
}

func (s *Svc) fetch(ctx context.Context) (domain.Report, error) {
	q := url.Values{}
	q.Set("latitude", s.latitude)
	q.Set("longitude", s.longitude)
	q.Set("timezone", s.timezone)
	q.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code,is_day,precipitation")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code,precipitation_sum,precipitation_probability_max")
	q.Set("hourly", "temperature_2m,precipitation_probability,weather_code")
	q.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

	var resp forecastResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/forecast?"+q.Encode(), &resp); err != nil {
		return domain.Report{}, err
	}
	return normalize(resp), nil
}

// normalize flattens the column-oriented daily arrays into per-day rows.
// Days beyond the shortest column are dropped rather than zero-padded.
func normalize(resp forecastResponse) domain.Report {
	report := domain.Report{
		Current: domain.Current{
			Temperature:   resp.Current.Temperature,
			ApparentTemp:  resp.Current.ApparentTemp,
			Humidity:      resp.Current.Humidity,
			WindSpeed:     resp.Current.WindSpeed,
			WeatherCode:   resp.Current.WeatherCode,
			IsDay:         resp.Current.IsDay == 1,
			Precipitation: resp.Current.Precipitation,
		},
		Hourly: domain.Hourly{
			Time:        resp.Hourly.Time,
			Temperature: resp.Hourly.Temperature,
			PrecipProb:  resp.Hourly.PrecipProb,
			WeatherCode: resp.Hourly.WeatherCode,
		},
	}

	days := len(resp.Daily.Time)
	for _, col := range []int{len(resp.Daily.TempMax), len(resp.Daily.TempMin), len(resp.Daily.WeatherCode)} {
		if col < days {
			days = col
		}
	}
	if days > forecastDays {
		days = forecastDays
	}
	for i := 0; i < days; i++ {
		day := domain.Day{
			Date:        resp.Daily.Time[i],
			TempMax:     resp.Daily.TempMax[i],
			TempMin:     resp.Daily.TempMin[i],
			WeatherCode: resp.Daily.WeatherCode[i],
		}
		if i < len(resp.Daily.Precipitation) {
			day.Precipitation = resp.Daily.Precipitation[i]
		}
		if i < len(resp.Daily.PrecipProb) {
			day.PrecipProb = resp.Daily.PrecipProb[i]
		}
		report.Forecast = append(report.Forecast, day)
	}
	return report
}
