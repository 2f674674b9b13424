// Package service merges the family calendar feed with the scraped venue
// listing into one day-expanded event stream.
package service

import (
	"context"
	"sort"
	"time"

	"homeboard/internal/adapters/icsfeed"
	"homeboard/internal/adapters/pullrouge"
	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/core/event"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/events/domain"
)

const (
	defaultTTL        = 10 * time.Minute
	defaultWindowDays = 60
)

// Service defines the merged-calendar contract
type Service interface {
	domain.ServicePort
}

// calendarFeed is the slice of icsfeed.Feed the service needs, a seam for tests
type calendarFeed interface {
	Load(ctx context.Context, from, to time.Time) ([]event.Span, error)
}

// venueFeed is the slice of pullrouge.Scraper the service needs
type venueFeed interface {
	Events(ctx context.Context) []event.Normalized
}

// Svc implements the merged events service
type Svc struct {
	calendar   calendarFeed
	venue      venueFeed
	cell       *cache.Cell[[]event.Span]
	windowDays int
	loc        *time.Location
	log        logger.Logger
	now        func() time.Time
}

// Config carries the calendar settings read from env
type Config struct {
	ICSURL     string
	WindowDays int
	TTL        time.Duration
	Location   *time.Location
}

// FromConf reads the CAL_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("CAL_")
	return Config{
		ICSURL:     c.MayString("ICS_URL", ""),
		WindowDays: c.MayInt("WINDOW_DAYS", defaultWindowDays),
		TTL:        c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs the merged events service. Either source may be nil when
// its integration is not configured; the other still serves.
func New(cfg Config, venue venueFeed, client *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = defaultWindowDays
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	var calendar calendarFeed
	if cfg.ICSURL != "" {
		if client == nil {
			client = upstream.New(upstream.Options{Integration: "calendar"})
		}
		calendar = icsfeed.New(cfg.ICSURL, client)
	}
	return &Svc{
		calendar:   calendar,
		venue:      venue,
		cell:       cache.NewCell[[]event.Span]("calendar", cfg.TTL),
		windowDays: cfg.WindowDays,
		loc:        cfg.Location,
		log:        *logger.Named("events"),
		now:        time.Now,
	}
}

// NewPullRouge builds the default venue feed from PULLROUGE_* settings
func NewPullRouge(cfg config.Conf) venueFeed {
	c := cfg.Prefix("PULLROUGE_")
	url := c.MayString("URL", "")
	if url == "" {
		return nil
	}
	return pullrouge.New(pullrouge.Options{
		URL:      url,
		DumpPath: c.MayString("DUMP_PATH", "pullrouge.json"),
		TTL:      c.MayDuration("CACHE_TTL", 30*time.Minute),
	})
}

// Events returns the merged stream. A calendar failure degrades to the
// venue listing alone rather than failing the whole feed.
func (s *Svc) Events(ctx context.Context) ([]event.Normalized, error) {
	merged := []event.Normalized{}

	if s.calendar != nil {
		spans, err := s.cell.Get(ctx, func(ctx context.Context) ([]event.Span, error) {
			from := s.today()
			return s.calendar.Load(ctx, from, from.AddDate(0, 0, s.windowDays))
		})
		if err != nil {
			s.log.Warn().Err(err).Msg("calendar feed unavailable, serving venue events only")
		}
		for _, sp := range spans {
			merged = append(merged, event.ExpandDays(sp, s.loc)...)
		}
	}
	if s.venue != nil {
		merged = append(merged, s.venue.Events(ctx)...)
	}

	today := s.today().Format("2006-01-02")
	kept := merged[:0]
	for _, ev := range merged {
		if ev.Date >= today {
			kept = append(kept, ev)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Date != kept[j].Date {
			return kept[i].Date < kept[j].Date
		}
		return kept[i].Time < kept[j].Time
	})
	return kept, nil
}

func (s *Svc) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}
