// Package service contains the Nantes public events workflows
package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/core/event"
	"homeboard/internal/core/textfold"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/nantes/domain"
)

const (
	defaultTTL   = 10 * time.Minute
	defaultLimit = 50
	fetchLimit   = 100 // upstream page size
)

// Service defines the nantes service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the nantes service
type Svc struct {
	client  *upstream.Client
	baseURL string
	dataset string
	cells   *cache.Keyed[[]event.Normalized]
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
}

// Config carries the upstream settings read from env
type Config struct {
	BaseURL  string
	Dataset  string
	TTL      time.Duration
	Location *time.Location
}

// FromConf reads the NANTES_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("NANTES_")
	return Config{
		BaseURL: c.MayString("API_URL", "https://data.nantesmetropole.fr/api/explore/v2.1"),
		Dataset: c.MayString("DATASET", "793866443-agenda-evenements-nantes-nantes-metropole"),
		TTL:     c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs a nantes service
func New(cfg Config, client *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if client == nil {
		client = upstream.New(upstream.Options{Integration: "nantes"})
	}
	return &Svc{
		client:  client,
		baseURL: cfg.BaseURL,
		dataset: cfg.Dataset,
		cells:   cache.NewKeyed[[]event.Normalized]("nantes", cfg.TTL),
		loc:     cfg.Location,
		log:     *logger.Named("nantes"),
		now:     time.Now,
	}
}

// Events returns the filtered, limited page for the requested window.
// The cache key is the date-bounded window; filters apply after the cache.
func (s *Svc) Events(ctx context.Context, q domain.EventsQuery) (domain.EventsPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	key := "window:" + q.DateMax
	all, err := s.cells.Get(ctx, key, func(ctx context.Context) ([]event.Normalized, error) {
		return s.fetchWindow(ctx, q.DateMax)
	})
	if err != nil {
		return domain.EventsPage{}, err
	}

	filtered := filterCategories(all, q)
	page := domain.EventsPage{Events: filtered, HasMore: false}
	if len(filtered) > q.Limit {
		page.Events = filtered[:q.Limit]
		page.HasMore = true
	}
	if page.Events == nil {
		page.Events = []event.Normalized{}
	}
	return page, nil
}

// Categories returns the distinct category list of the unbounded window
func (s *Svc) Categories(ctx context.Context) ([]string, error) {
	all, err := s.cells.Get(ctx, "window:", func(ctx context.Context) ([]event.Normalized, error) {
		return s.fetchWindow(ctx, "")
	})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, ev := range all {
		for _, c := range splitTypes(ev.Type) {
			if c != "" && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// record is one raw open-data row: a single timing of an event
type record struct {
	IDManif     string `json:"id_manif"`
	Nom         string `json:"nom"`
	Lieu        string `json:"lieu"`
	Description string `json:"description"`
	Date        string `json:"date"`
	HeureDebut  string `json:"heure_debut"`
	HeureFin    string `json:"heure_fin"`
	Categorie   string `json:"rubrique"`
	URL         string `json:"url_site"`
	Media       string `json:"media_url"`
}

type recordsResponse struct {
	TotalCount int      `json:"total_count"`
	Results    []record `json:"results"`
}

// fetchWindow loads the raw records up to dateMax and normalizes them
func (s *Svc) fetchWindow(ctx context.Context, dateMax string) ([]event.Normalized, error) {
	today := s.today()

	where := fmt.Sprintf("date >= date'%s'", today.Format("2006-01-02"))
	if dateMax != "" {
		where += fmt.Sprintf(" AND date <= date'%s'", dateMax)
	}
	u := fmt.Sprintf("%s/catalog/datasets/%s/records?where=%s&limit=%d&order_by=date",
		s.baseURL, s.dataset, url.QueryEscape(where), fetchLimit)

	var resp recordsResponse
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return s.normalize(resp.Results, today), nil
}

// normalize groups records by event id, expands each timing across its days
// and silently drops events already over. Malformed rows are skipped.
func (s *Svc) normalize(records []record, today time.Time) []event.Normalized {
	grouped := make(map[string][]record)
	var order []string
	for _, r := range records {
		if r.IDManif == "" || r.Date == "" {
			continue
		}
		if _, ok := grouped[r.IDManif]; !ok {
			order = append(order, r.IDManif)
		}
		grouped[r.IDManif] = append(grouped[r.IDManif], r)
	}

	var out []event.Normalized
	for _, id := range order {
		for i, r := range grouped[id] {
			span, ok := s.toSpan(r, i)
			if !ok {
				continue
			}
			for _, ev := range event.ExpandDays(span, s.loc) {
				if ev.Date < today.Format("2006-01-02") {
					continue
				}
				out = append(out, ev)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// toSpan builds the timing span for one record
func (s *Svc) toSpan(r record, timing int) (event.Span, bool) {
	day, err := time.ParseInLocation("2006-01-02", r.Date, s.loc)
	if err != nil {
		return event.Span{}, false
	}
	start, allDay := day, true
	end := day.Add(23*time.Hour + 59*time.Minute)
	if t, err := time.Parse("15:04", r.HeureDebut); err == nil {
		start = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		allDay = false
		end = start.Add(2 * time.Hour)
	}
	if t, err := time.Parse("15:04", r.HeureFin); err == nil {
		end = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
	}

	return event.Span{
		ID:          fmt.Sprintf("%s-t%d", r.IDManif, timing),
		Title:       r.Nom,
		Location:    r.Lieu,
		Description: r.Description,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Source:      event.SourceNantes,
		Type:        r.Categorie,
		URL:         r.URL,
		Image:       r.Media,
	}, true
}

// filterCategories applies the tri-state category filter
func filterCategories(events []event.Normalized, q domain.EventsQuery) []event.Normalized {
	if !q.HasCatList {
		return events
	}
	if len(q.Categories) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(q.Categories))
	for _, c := range q.Categories {
		wanted[textfold.Fold(c)] = true
	}
	var out []event.Normalized
	for _, ev := range events {
		for _, t := range splitTypes(ev.Type) {
			if wanted[textfold.Fold(t)] {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// splitTypes breaks the comma-separated category field
func splitTypes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func (s *Svc) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}
