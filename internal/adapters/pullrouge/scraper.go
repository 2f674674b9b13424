// Package pullrouge scrapes the Pull Rouge venue website for upcoming
// concerts. The page is loosely structured text, so parsing is best-effort
// line reconstruction. This is the only integration that falls back to
// stale data: scrape failure serves the cached value, then the on-disk
// dump, then an empty list.
package pullrouge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/core/event"
	"homeboard/internal/platform/logger"
)

const defaultTTL = 30 * time.Minute

// Scraper fetches, parses, and caches the venue listing
type Scraper struct {
	url      string
	dumpPath string
	client   *upstream.Client
	cell     *cache.Cell[[]event.Span]
	loc      *time.Location
	log      logger.Logger
	now      func() time.Time
}

// Options configures a Scraper
type Options struct {
	URL      string
	DumpPath string // JSON dump written after each successful scrape
	TTL      time.Duration
	Location *time.Location
	Client   *upstream.Client
}

// New builds a Scraper
func New(o Options) *Scraper {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return &Scraper{
		url:      o.URL,
		dumpPath: o.DumpPath,
		client:   o.Client,
		cell:     cache.NewCell[[]event.Span]("pullrouge", o.TTL),
		loc:      o.Location,
		log:      *logger.Named("pullrouge"),
		now:      time.Now,
	}
}

// Events returns the current listing as expanded day events.
// Never errors: a failed scrape falls back to the last in-memory value,
// then the dump file, then an empty list.
func (s *Scraper) Events(ctx context.Context) []event.Normalized {
	spans, err := s.cell.GetStale(ctx, s.scrape)
	if err != nil {
		spans = s.fallback(err)
	}
	var out []event.Normalized
	for _, sp := range spans {
		out = append(out, event.ExpandDays(sp, s.loc)...)
	}
	return out
}

// scrape fetches the page, extracts text and parses concerts into spans
func (s *Scraper) scrape(ctx context.Context) ([]event.Span, error) {
	body, err := s.client.GetBytes(ctx, s.url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("pullrouge document: %w", err)
	}

	var b strings.Builder
	doc.Find("main, article, .content, body").First().Find("p, h1, h2, h3, h4, li, br").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(strings.TrimSpace(sel.Text()))
		b.WriteString("\n")
	})

	concerts := parseListing(b.String(), s.now(), s.loc)
	spans := make([]event.Span, 0, len(concerts))
	for i, c := range concerts {
		spans = append(spans, s.toSpan(i, c))
	}

	s.persist(spans)
	s.log.Info().Int("events", len(spans)).Msg("scrape succeeded")
	return spans, nil
}

func (s *Scraper) toSpan(i int, c concert) event.Span {
	start := c.Date
	allDay := true
	if c.Time != "" {
		if t, err := time.ParseInLocation("15:04", c.Time, s.loc); err == nil {
			start = start.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
			allDay = false
		}
	}
	desc := ""
	if c.Price != "" {
		desc = "Prix: " + c.Price
	}
	return event.Span{
		ID:          fmt.Sprintf("pullrouge-%s-%d", c.Date.Format("20060102"), i),
		Title:       c.Artist,
		Location:    c.Venue,
		Description: desc,
		Start:       start,
		End:         start.Add(3 * time.Hour),
		AllDay:      allDay,
		Source:      event.SourcePullRouge,
		Type:        "Musique",
	}
}

// fallback serves the dump file when a failed scrape has no cached value
func (s *Scraper) fallback(cause error) []event.Span {
	s.log.Warn().Err(cause).Msg("scrape failed with empty cache, trying dump")
	return s.loadDump()
}

// persist writes the dump file; failure is logged, never fatal
func (s *Scraper) persist(spans []event.Span) {
	if s.dumpPath == "" {
		return
	}
	raw, err := json.Marshal(spans)
	if err == nil {
		err = os.WriteFile(s.dumpPath, raw, 0o644)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.dumpPath).Msg("dump write failed")
	}
}

func (s *Scraper) loadDump() []event.Span {
	if s.dumpPath == "" {
		return nil
	}
	raw, err := os.ReadFile(s.dumpPath)
	if err != nil {
		return nil
	}
	var spans []event.Span
	if err := json.Unmarshal(raw, &spans); err != nil {
		s.log.Warn().Err(err).Str("path", s.dumpPath).Msg("dump unreadable")
		return nil
	}
	return spans
}
