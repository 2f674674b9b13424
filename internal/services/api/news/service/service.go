// Package service contains the news headline workflows
package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/platform/config"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/news/domain"
)

const (
	defaultTTL      = 15 * time.Minute
	defaultCategory = "general"
)

// Service defines the news service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the news service
type Svc struct {
	client   *upstream.Client
	baseURL  string
	apiKey   string
	country  string
	rssFeeds []string
	parser   *gofeed.Parser
	cells    *cache.Keyed[domain.Feed]
	log      logger.Logger
	now      func() time.Time
}

// Config carries the upstream settings read from env
type Config struct {
	BaseURL  string
	APIKey   string
	Country  string
	RSSFeeds []string // fallback feeds used when no API key is configured
	TTL      time.Duration
}

// FromConf reads the NEWS_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("NEWS_")
	return Config{
		BaseURL:  c.MayString("API_URL", "https://newsapi.org/v2"),
		APIKey:   c.MayString("API_KEY", ""),
		Country:  c.MayString("COUNTRY", "fr"),
		RSSFeeds: c.MayCSV("RSS_FEEDS", nil),
		TTL:      c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs a news service
func New(cfg Config, client *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = upstream.New(upstream.Options{Integration: "news"})
	}
	return &Svc{
		client:   client,
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		country:  cfg.Country,
		rssFeeds: cfg.RSSFeeds,
		parser:   gofeed.NewParser(),
		cells:    cache.NewKeyed[domain.Feed]("news", cfg.TTL),
		log:      *logger.Named("news"),
		now:      time.Now,
	}
}

// Headlines returns the cached headline feed for a category.
// Without an API key the RSS fallback ignores the category, so all
// categories share one cache slot.
func (s *Svc) Headlines(ctx context.Context, category string) (domain.Feed, error) {
	if category == "" {
		category = defaultCategory
	}
	if s.apiKey == "" {
		return s.cells.Get(ctx, "rss", s.fetchRSS)
	}
	return s.cells.Get(ctx, category, func(ctx context.Context) (domain.Feed, error) {
		return s.fetchHeadlines(ctx, category)
	})
}

// upstream NewsAPI-style top-headlines shape
type headlinesResponse struct {
	TotalResults int `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (s *Svc) fetchHeadlines(ctx context.Context, category string) (domain.Feed, error) {
	u := fmt.Sprintf("%s/top-headlines?country=%s&category=%s&apiKey=%s",
		s.baseURL, url.QueryEscape(s.country), url.QueryEscape(category), s.apiKey)
	var resp headlinesResponse
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		return domain.Feed{}, err
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		clean := cleanTitle(a.Title)
		if clean == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       a.Title,
			CleanTitle:  clean,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			Author:      a.Author,
			PublishedAt: a.PublishedAt,
		})
	}
	return domain.Feed{
		Articles:     articles,
		TotalResults: resp.TotalResults,
		LastUpdate:   s.now().Format(time.RFC3339),
	}, nil
}

// fetchRSS is the keyless fallback: parse the configured RSS feeds and map
// their items onto the same article shape
func (s *Svc) fetchRSS(ctx context.Context) (domain.Feed, error) {
	var articles []domain.Article
	for _, feedURL := range s.rssFeeds {
		body, err := s.client.GetBytes(ctx, feedURL)
		if err != nil {
			s.log.Warn().Err(err).Str("feed", feedURL).Msg("rss feed unavailable")
			continue
		}
		parsed, err := s.parser.ParseString(string(body))
		if err != nil {
			s.log.Warn().Err(err).Str("feed", feedURL).Msg("rss feed unparsable")
			continue
		}
		for _, item := range parsed.Items {
			clean := cleanTitle(item.Title)
			if clean == "" {
				continue
			}
			a := domain.Article{
				Title:       item.Title,
				CleanTitle:  clean,
				Description: item.Description,
				Source:      parsed.Title,
				URL:         item.Link,
			}
			if item.Author != nil {
				a.Author = item.Author.Name
			}
			if item.Image != nil {
				a.URLToImage = item.Image.URL
			}
			if item.PublishedParsed != nil {
				a.PublishedAt = item.PublishedParsed.Format(time.RFC3339)
			}
			articles = append(articles, a)
		}
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return domain.Feed{
		Articles:     articles,
		TotalResults: len(articles),
		LastUpdate:   s.now().Format(time.RFC3339),
	}, nil
}

// bracketRe matches the "[Direct]", "(Vidéo)" style annotations feeds
// prepend or append to titles
var bracketRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

// cleanTitle strips bracket annotations and squashes leftover whitespace.
// An empty result means the title was nothing but annotation; the article
// is invalid and must be dropped.
func cleanTitle(title string) string {
	out := bracketRe.ReplaceAllString(title, "")
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimSpace(strings.Trim(out, "-–: "))
}
