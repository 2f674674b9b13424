package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homeboard/internal/adapters/upstream"
)

// newFixture serves daily readings for the last `daysWithData` days up to
// and including today, and fails contract lookups, which must stay non-fatal
func newFixture(t *testing.T, today time.Time, daysWithData int) (*Svc, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "contracts") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var rows []string
		for i := daysWithData - 1; i >= 0; i-- {
			d := today.AddDate(0, 0, -i)
			rows = append(rows, fmt.Sprintf(`{"date":%q,"value":"1000"}`, d.Format("2006-01-02")))
		}
		body := `{"meter_reading":{"reading_type":{"unit":"Wh"},"interval_reading":[` + strings.Join(rows, ",") + `]}}`
		_, _ = w.Write([]byte(body))
	}))

	s := New(Config{
		BaseURL:      srv.URL,
		UsagePointID: "pt1",
		TTL:          10 * time.Minute,
		Location:     time.UTC,
	}, upstream.New(upstream.Options{Integration: "electricity-test", HTTP: srv.Client()}))
	s.now = func() time.Time { return today }
	return s, srv.Close
}

func TestWidgetData_FifteenDayChartZeroFills(t *testing.T) {
	today := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	s, done := newFixture(t, today, 7)
	defer done()

	data, err := s.WidgetData(context.Background(), 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.DailyChartData) != 15 {
		t.Fatalf("chart length %d want 15", len(data.DailyChartData))
	}
	// the 8 oldest days have no readings and must be zero
	for i := 0; i < 8; i++ {
		if data.DailyChartData[i].Value != 0 {
			t.Errorf("day %d (%s) should be zero, got %v", i, data.DailyChartData[i].Date, data.DailyChartData[i].Value)
		}
	}
	for i := 8; i < 15; i++ {
		if data.DailyChartData[i].Value != 1 {
			t.Errorf("day %d (%s) should be 1 kWh, got %v", i, data.DailyChartData[i].Date, data.DailyChartData[i].Value)
		}
	}
}

func TestWidgetData_Aggregates(t *testing.T) {
	today := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	s, done := newFixture(t, today, 14)
	defer done()

	data, err := s.WidgetData(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if data.Today != 1 || data.Yesterday != 1 || data.DayBeforeYesterday != 1 {
		t.Errorf("recent days: %v %v %v", data.Today, data.Yesterday, data.DayBeforeYesterday)
	}
	if data.WeekTotal != 7 {
		t.Errorf("weekTotal %v want 7", data.WeekTotal)
	}
	if data.PreviousWeekTotal != 7 {
		t.Errorf("previousWeekTotal %v want 7", data.PreviousWeekTotal)
	}
	if data.WeekAverage != 1 {
		t.Errorf("weekAverage %v", data.WeekAverage)
	}
	// contract endpoint failed; partial degradation only
	if data.ContractInfo != nil {
		t.Errorf("contract info should be absent, got %+v", data.ContractInfo)
	}
}

func TestWidgetData_CachedPerWindow(t *testing.T) {
	today := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "daily_consumption") {
			hits++
		}
		_, _ = w.Write([]byte(`{"meter_reading":{"interval_reading":[]}}`))
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, TTL: 10 * time.Minute, Location: time.UTC},
		upstream.New(upstream.Options{Integration: "electricity-test", HTTP: srv.Client()}))
	s.now = func() time.Time { return today }

	for range 3 {
		if _, err := s.WidgetData(context.Background(), 7); err != nil {
			t.Fatal(err)
		}
	}
	// two consumption fetches (daily + monthly) on the first call only
	if hits != 2 {
		t.Fatalf("expected 2 upstream fetches, got %d", hits)
	}
}
