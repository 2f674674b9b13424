package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"homeboard/internal/adapters/upstream"
)

const forecastBody = `{
	"current":{"temperature_2m":12.4,"apparent_temperature":10.1,
		"relative_humidity_2m":78,"wind_speed_10m":17.3,
		"weather_code":61,"is_day":1,"precipitation":0.3},
	"daily":{
		"time":["2025-03-10","2025-03-11","2025-03-12","2025-03-13","2025-03-14","2025-03-15","2025-03-16"],
		"temperature_2m_max":[13.1,14.0,11.2,9.8,12.5,15.0,16.2],
		"temperature_2m_min":[6.0,7.2,4.1,3.0,5.5,8.0,9.1],
		"weather_code":[61,3,2,71,61,0,1],
		"precipitation_sum":[2.1,0,0,0.4],
		"precipitation_probability_max":[80,10,5]},
	"hourly":{
		"time":["2025-03-10T00:00","2025-03-10T01:00"],
		"temperature_2m":[7.1,6.8],
		"precipitation_probability":[20,25],
		"weather_code":[2,3]}
}`

func newSvc(t *testing.T) (*Svc, *int32) {
	t.Helper()
	var fetches int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		q := r.URL.Query()
		if q.Get("latitude") != "47.2184" || q.Get("timezone") != "Europe/Paris" {
			http.Error(w, "bad coordinates", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(forecastBody))
	}))
	t.Cleanup(ts.Close)

	s := New(Config{
		BaseURL:   ts.URL,
		Latitude:  "47.2184",
		Longitude: "-1.5536",
		Timezone:  "Europe/Paris",
		TTL:       time.Hour,
	}, upstream.New(upstream.Options{Integration: "weather", HTTP: ts.Client()}))
	return s, &fetches
}

func TestReport_NormalizesForecast(t *testing.T) {
	s, _ := newSvc(t)

	report, err := s.Report(context.Background())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Current.Temperature != 12.4 || !report.Current.IsDay || report.Current.WeatherCode != 61 {
		t.Errorf("current = %+v", report.Current)
	}
	// upstream returns 7 daily rows, the report keeps 6
	if len(report.Forecast) != 6 {
		t.Fatalf("forecast = %d days, want 6", len(report.Forecast))
	}
	first := report.Forecast[0]
	if first.Date != "2025-03-10" || first.TempMax != 13.1 || first.TempMin != 6.0 {
		t.Errorf("first day = %+v", first)
	}
	if first.Precipitation != 2.1 || first.PrecipProb != 80 {
		t.Errorf("first day precipitation = %v prob %v", first.Precipitation, first.PrecipProb)
	}
	// short precipitation columns leave later days at zero
	if report.Forecast[5].Precipitation != 0 || report.Forecast[5].PrecipProb != 0 {
		t.Errorf("day beyond short columns = %+v", report.Forecast[5])
	}
	if len(report.Hourly.Time) != 2 || report.Hourly.Temperature[1] != 6.8 {
		t.Errorf("hourly passthrough = %+v", report.Hourly)
	}
}

func TestReport_CachedWithinTTL(t *testing.T) {
	s, fetches := newSvc(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Report(ctx); err != nil {
			t.Fatalf("Report: %v", err)
		}
	}
	if got := atomic.LoadInt32(fetches); got != 1 {
		t.Errorf("upstream fetches = %d, want 1", got)
	}
}

func TestNormalize_RaggedDailyColumns(t *testing.T) {
	var resp forecastResponse
	resp.Daily.Time = []string{"2025-03-10", "2025-03-11", "2025-03-12"}
	resp.Daily.TempMax = []float64{10, 11}
	resp.Daily.TempMin = []float64{1, 2, 3}
	resp.Daily.WeatherCode = []int{0, 1, 2}

	report := normalize(resp)
	if len(report.Forecast) != 2 {
		t.Fatalf("forecast = %d days, want 2 (shortest column)", len(report.Forecast))
	}
}
