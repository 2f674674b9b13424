// Package service contains the electricity consumption workflows
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/electricity/domain"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultChartDays = 7
	maxChartDays     = 31
	monthlyWindow    = 12 // months on the monthly chart
)

// Service defines the electricity service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the electricity service
type Svc struct {
	client  *upstream.Client
	baseURL string
	usageID string
	cells   *cache.Keyed[domain.WidgetData]
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
}

// Config carries the upstream settings read from env
type Config struct {
	BaseURL      string
	Token        string
	UsagePointID string
	TTL          time.Duration
	Location     *time.Location
}

// FromConf reads the ELEC_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("ELEC_")
	return Config{
		BaseURL:      c.MayString("API_URL", "https://api.enedis.fr/metering_data_dc/v5"),
		Token:        c.MayString("API_TOKEN", ""),
		UsagePointID: c.MayString("USAGE_POINT_ID", ""),
		TTL:          c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs an electricity service
func New(cfg Config, httpClient *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if httpClient == nil {
		httpClient = upstream.New(upstream.Options{
			Integration: "electricity",
			Headers:     map[string]string{"Authorization": "Bearer " + cfg.Token},
		})
	}
	return &Svc{
		client:  httpClient,
		baseURL: cfg.BaseURL,
		usageID: cfg.UsagePointID,
		cells:   cache.NewKeyed[domain.WidgetData]("electricity", cfg.TTL),
		loc:     cfg.Location,
		log:     *logger.Named("electricity"),
		now:     time.Now,
	}
}

// WidgetData returns the cached aggregate for the requested chart window
func (s *Svc) WidgetData(ctx context.Context, dailyChartDays int) (domain.WidgetData, error) {
	if dailyChartDays <= 0 {
		dailyChartDays = defaultChartDays
	}
	if dailyChartDays > maxChartDays {
		dailyChartDays = maxChartDays
	}
	key := strconv.Itoa(dailyChartDays)
	return s.cells.Get(ctx, key, func(ctx context.Context) (domain.WidgetData, error) {
		return s.build(ctx, dailyChartDays)
	})
}

// build runs the fetch+normalize pipeline for one chart window
func (s *Svc) build(ctx context.Context, chartDays int) (domain.WidgetData, error) {
	today := s.today()

	// the daily window must cover the chart plus both aggregate weeks
	windowDays := chartDays
	if windowDays < 15 {
		windowDays = 15
	}
	daily, err := s.fetchReadings(ctx, today.AddDate(0, 0, -windowDays), today.AddDate(0, 0, 1))
	if err != nil {
		return domain.WidgetData{}, err
	}

	out := domain.WidgetData{
		Today:              s.sumRange(daily, today, today),
		Yesterday:          s.sumRange(daily, today.AddDate(0, 0, -1), today.AddDate(0, 0, -1)),
		DayBeforeYesterday: s.sumRange(daily, today.AddDate(0, 0, -2), today.AddDate(0, 0, -2)),
		WeekTotal:          s.sumRange(daily, today.AddDate(0, 0, -6), today),
		PreviousWeekTotal:  s.sumRange(daily, today.AddDate(0, 0, -13), today.AddDate(0, 0, -7)),
		DailyChartData:     s.dailyChart(daily, today, chartDays),
	}
	out.WeekAverage = round2(out.WeekTotal / 7)

	// monthly chart and contract info degrade independently
	monthly, err := s.fetchReadings(ctx, today.AddDate(0, -monthlyWindow, 0), today.AddDate(0, 0, 1))
	if err != nil {
		s.log.Warn().Err(err).Msg("monthly consumption unavailable")
		out.MonthlyChartData = []domain.MonthPoint{}
	} else {
		out.MonthlyChartData = s.monthlyChart(monthly, today)
	}

	if info, err := s.fetchContract(ctx); err != nil {
		s.log.Warn().Err(err).Msg("contract info unavailable")
	} else {
		out.ContractInfo = info
	}
	return out, nil
}

// fetchReadings loads and normalizes daily consumption for [start, end)
func (s *Svc) fetchReadings(ctx context.Context, start, end time.Time) ([]reading, error) {
	url := fmt.Sprintf("%s/daily_consumption?usage_point_id=%s&start=%s&end=%s",
		s.baseURL, s.usageID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	var raw json.RawMessage
	if err := s.client.GetJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	return extractReadings(raw), nil
}

func (s *Svc) fetchContract(ctx context.Context) (*domain.ContractInfo, error) {
	url := fmt.Sprintf("%s/contracts?usage_point_id=%s", s.baseURL, s.usageID)
	var resp struct {
		Customer struct {
			UsagePoints []struct {
				Contracts struct {
					SubscribedPower string `json:"subscribed_power"`
					OffpeakHours    string `json:"offpeak_hours"`
					ContractType    string `json:"contract_type"`
				} `json:"contracts"`
			} `json:"usage_point"`
		} `json:"customer"`
	}
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if len(resp.Customer.UsagePoints) == 0 {
		return nil, fmt.Errorf("no usage point in contract response")
	}
	c := resp.Customer.UsagePoints[0].Contracts
	return &domain.ContractInfo{
		SubscribedPower: c.SubscribedPower,
		OffpeakHours:    c.OffpeakHours,
		ContractType:    c.ContractType,
	}, nil
}

func (s *Svc) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// sumRange totals readings whose date falls in [from, to] inclusive
func (s *Svc) sumRange(readings []reading, from, to time.Time) float64 {
	total := 0.0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		for _, r := range readings {
			if dateMatches(r.Date, day) {
				total += r.Value
			}
		}
	}
	return round2(total)
}

// dailyChart builds the last chartDays days, zero-filling missing readings
func (s *Svc) dailyChart(readings []reading, today time.Time, chartDays int) []domain.ChartPoint {
	out := make([]domain.ChartPoint, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		day := d.Format("2006-01-02")
		value := 0.0
		for _, r := range readings {
			if dateMatches(r.Date, day) {
				value += r.Value
			}
		}
		out = append(out, domain.ChartPoint{
			Date:      day,
			DateLabel: d.Format("02/01"),
			Value:     round2(value),
		})
	}
	return out
}

// monthlyChart groups readings by month over the trailing window
func (s *Svc) monthlyChart(readings []reading, today time.Time) []domain.MonthPoint {
	out := make([]domain.MonthPoint, 0, monthlyWindow)
	for i := monthlyWindow - 1; i >= 0; i-- {
		m := today.AddDate(0, -i, 0)
		prefix := m.Format("2006-01")
		value := 0.0
		for _, r := range readings {
			if dateMatches(r.Date, prefix) {
				value += r.Value
			}
		}
		out = append(out, domain.MonthPoint{
			Month:      prefix,
			MonthLabel: m.Format("01/2006"),
			Value:      round2(value),
		})
	}
	return out
}
