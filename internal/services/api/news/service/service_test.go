package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeboard/internal/adapters/upstream"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Une grève annoncée [Direct]", "Une grève annoncée"},
		{"[Vidéo] (Exclusif) Le match", "Le match"},
		{"Sans annotation", "Sans annotation"},
		{"[Direct]", ""},
		{"(Vidéo) [Live]", ""},
		{"Titre - [mise à jour]", "Titre"},
	}
	for _, tc := range tests {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Errorf("cleanTitle(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestHeadlines_DropsAnnotationOnlyTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "sports" {
			t.Errorf("category query missing: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"totalResults":3,"articles":[
			{"title":"Match reporté [Direct]","source":{"name":"A"},"url":"u1","publishedAt":"2026-03-01T10:00:00Z"},
			{"title":"[Direct]","source":{"name":"B"},"url":"u2","publishedAt":"2026-03-01T10:00:00Z"},
			{"title":"Victoire","source":{"name":"C"},"url":"u3","publishedAt":"2026-03-01T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, APIKey: "k", TTL: time.Minute},
		upstream.New(upstream.Options{Integration: "news-test", HTTP: srv.Client()}))

	feed, err := s.Headlines(context.Background(), "sports")
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Articles) != 2 {
		t.Fatalf("expected annotation-only article dropped, got %d articles", len(feed.Articles))
	}
	if feed.Articles[0].CleanTitle != "Match reporté" {
		t.Errorf("cleanTitle: %q", feed.Articles[0].CleanTitle)
	}
	if feed.TotalResults != 3 {
		t.Errorf("totalResults should mirror upstream: %d", feed.TotalResults)
	}
}

func TestHeadlines_CachedPerCategory(t *testing.T) {
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Query().Get("category")]++
		_, _ = w.Write([]byte(`{"totalResults":0,"articles":[]}`))
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, APIKey: "k", TTL: time.Minute},
		upstream.New(upstream.Options{Integration: "news-test", HTTP: srv.Client()}))

	for range 2 {
		if _, err := s.Headlines(context.Background(), "sports"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Headlines(context.Background(), "general"); err != nil {
			t.Fatal(err)
		}
	}
	if hits["sports"] != 1 || hits["general"] != 1 {
		t.Fatalf("each category fetched once: %v", hits)
	}
}

func TestHeadlines_RSSFallbackWithoutAPIKey(t *testing.T) {
	const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Flux Test</title>
<item><title>Premier article</title><link>http://x/1</link><description>d</description></item>
<item><title>[pub]</title><link>http://x/2</link></item>
</channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rss))
	}))
	defer srv.Close()

	s := New(Config{RSSFeeds: []string{srv.URL}, TTL: time.Minute},
		upstream.New(upstream.Options{Integration: "news-test", HTTP: srv.Client()}))

	feed, err := s.Headlines(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Articles) != 1 {
		t.Fatalf("expected 1 article from rss, got %d", len(feed.Articles))
	}
	a := feed.Articles[0]
	if a.Source != "Flux Test" || a.CleanTitle != "Premier article" || a.URL != "http://x/1" {
		t.Fatalf("bad rss mapping: %+v", a)
	}
}

func TestHeadlines_RSSFallbackSharesOneCacheSlot(t *testing.T) {
	const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Flux Test</title>
<item><title>Premier article</title><link>http://x/1</link></item>
</channel></rss>`
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(rss))
	}))
	defer srv.Close()

	s := New(Config{RSSFeeds: []string{srv.URL}, TTL: time.Minute},
		upstream.New(upstream.Options{Integration: "news-test", HTTP: srv.Client()}))

	// the category does not reach the feeds, so it must not fragment the cache
	for _, cat := range []string{"", "sports", "business"} {
		if _, err := s.Headlines(context.Background(), cat); err != nil {
			t.Fatal(err)
		}
	}
	if hits != 1 {
		t.Fatalf("keyless fallback should fetch once, got %d fetches", hits)
	}
}
