// Package domain holds news feed types
package domain

// Article is one normalized headline
type Article struct {
	Title       string `json:"title"`
	CleanTitle  string `json:"cleanTitle"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt"`
}

// Feed is the payload of GET /api/news
type Feed struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"totalResults"`
	LastUpdate   string    `json:"lastUpdate"`
}
