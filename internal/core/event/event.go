// Package event defines the normalized calendar event shape shared by the
// calendar, Nantes and PullRouge integrations, plus multi-day expansion.
package event

import (
	"fmt"
	"time"
)

// Source identifies where an event came from
type Source string

// Known event sources
const (
	SourceGoogle    Source = "google"
	SourceNantes    Source = "nantes"
	SourcePullRouge Source = "pullrouge"
)

// Normalized is the stable event shape served to the dashboard.
// Multi-day source events are expanded into one Normalized per calendar day.
type Normalized struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Time        string `json:"time,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Date        string `json:"date"`
	IsAllDay    bool   `json:"isAllDay"`
	Source      Source `json:"source"`
	Type        string `json:"type,omitempty"`
	Organizer   string `json:"organizer,omitempty"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Span is a source event before day expansion
type Span struct {
	ID          string
	Title       string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Source      Source
	Type        string
	Organizer   string
	URL         string
	Image       string
}

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// ExpandDays splits a span into one event per calendar day it touches.
// The day sequence covers [start, end] with no gaps: the first day keeps the
// real start time, the last day keeps the capped end time, interior days are
// all-day. Single-day spans come back unchanged with the span's own times.
// Day boundaries are evaluated in loc.
func ExpandDays(s Span, loc *time.Location) []Normalized {
	if loc == nil {
		loc = time.Local
	}
	start := s.Start.In(loc)
	end := s.End.In(loc)
	if end.Before(start) {
		end = start
	}

	firstDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	lastDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	// Count by calendar days, not duration: a DST day is 23 or 25 hours long,
	// so dividing the wall-clock difference by 24h would miscount across a
	// spring-forward transition.
	days := 1
	for d := firstDay; d.Before(lastDay); d = d.AddDate(0, 0, 1) {
		days++
	}

	out := make([]Normalized, 0, days)
	for i := 0; i < days; i++ {
		day := firstDay.AddDate(0, 0, i)
		ev := Normalized{
			ID:          s.ID,
			Title:       s.Title,
			Location:    s.Location,
			Description: s.Description,
			Start:       start.Format(time.RFC3339),
			End:         end.Format(time.RFC3339),
			Date:        day.Format(dayLayout),
			Source:      s.Source,
			Type:        s.Type,
			Organizer:   s.Organizer,
			URL:         s.URL,
			Image:       s.Image,
		}
		if days > 1 {
			ev.ID = fmt.Sprintf("%s-%d", s.ID, i)
		}
		switch {
		case s.AllDay:
			ev.IsAllDay = true
		case days == 1:
			ev.Time = start.Format(timeLayout)
			ev.EndTime = end.Format(timeLayout)
		case i == 0:
			ev.Time = start.Format(timeLayout)
		case i == days-1:
			ev.EndTime = end.Format(timeLayout)
		default:
			ev.IsAllDay = true
		}
		out = append(out, ev)
	}
	return out
}
