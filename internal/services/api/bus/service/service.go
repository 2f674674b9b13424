// Package service contains the bus waiting-time workflows
package service

import (
	"context"
	"fmt"
	"time"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/bus/domain"
)

const (
	defaultTTL = 30 * time.Second
	minTTL     = 2 * time.Second
	maxTTL     = 60 * time.Second
)

// Service defines the bus service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the bus service
type Svc struct {
	client   *upstream.Client
	baseURL  string
	stopID   string
	stopName string
	cell     *cache.Cell[domain.StopBoard]
	log      logger.Logger
	now      func() time.Time
}

// Config carries the upstream settings read from env
type Config struct {
	BaseURL  string
	StopID   string
	StopName string
	TTL      time.Duration
}

// FromConf reads the BUS_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("BUS_")
	return Config{
		BaseURL:  c.MayString("API_URL", "https://open.tan.fr/ewp"),
		StopID:   c.MayString("STOP_ID", ""),
		StopName: c.MayString("STOP_NAME", ""),
		TTL:      c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs a bus service. The TTL is clamped so a misconfigured
// env var can neither hammer the upstream nor serve minute-old boards.
func New(cfg Config, client *upstream.Client) *Svc {
	if cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	if cfg.TTL > maxTTL {
		cfg.TTL = maxTTL
	}
	if client == nil {
		client = upstream.New(upstream.Options{Integration: "bus"})
	}
	return &Svc{
		client:   client,
		baseURL:  cfg.BaseURL,
		stopID:   cfg.StopID,
		stopName: cfg.StopName,
		cell:     cache.NewCell[domain.StopBoard]("bus", cfg.TTL),
		log:      *logger.Named("bus"),
		now:      time.Now,
	}
}

// Board returns the waiting-time board for the configured stop
func (s *Svc) Board(ctx context.Context) (domain.StopBoard, error) {
	return s.cell.Get(ctx, s.fetch)
}

// waiting is one raw waiting-time row from the transit API
type waiting struct {
	Sens     int    `json:"sens"`
	Terminus string `json:"terminus"`
	Temps    string `json:"temps"`
	RealTime string `json:"tempsReel"`
	Ligne    struct {
		NumLigne string `json:"numLigne"`
	} `json:"ligne"`
	Arret struct {
		CodeArret string `json:"codeArret"`
	} `json:"arret"`
}

func (s *Svc) fetch(ctx context.Context) (domain.StopBoard, error) {
	u := fmt.Sprintf("%s/tempsattente.json/%s", s.baseURL, s.stopID)

	var rows []waiting
	if err := s.client.GetJSON(ctx, u, &rows); err != nil {
		return domain.StopBoard{}, err
	}

	board := domain.StopBoard{
		Departures: make([]domain.Departure, 0, len(rows)),
		StopName:   s.stopName,
		StopID:     s.stopID,
		LastUpdate: s.now().Format(time.RFC3339),
	}
	for _, r := range rows {
		if r.Ligne.NumLigne == "" {
			continue
		}
		board.Departures = append(board.Departures, domain.Departure{
			Line:       r.Ligne.NumLigne,
			Direction:  r.Terminus,
			WaitTime:   r.Temps,
			IsRealTime: r.RealTime == "true",
		})
	}
	return board, nil
}
