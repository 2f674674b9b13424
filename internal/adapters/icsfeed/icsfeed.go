// Package icsfeed loads an ICS calendar feed and expands its events,
// including RRULE recurrences, into concrete spans for a date window.
package icsfeed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/event"
	perr "homeboard/internal/platform/errors"
	"homeboard/internal/platform/logger"
)

// occurrence cap per recurring event; guards against pathological rules
const maxOccurrences = 1000

// Feed fetches and expands one ICS calendar URL
type Feed struct {
	url    string
	client *upstream.Client
	log    logger.Logger
}

// New builds a feed reader for url
func New(url string, client *upstream.Client) *Feed {
	return &Feed{url: url, client: client, log: *logger.Named("icsfeed")}
}

// Load fetches the feed and returns the spans overlapping [from, to].
// Individual malformed VEVENTs are skipped, not fatal.
func (f *Feed) Load(ctx context.Context, from, to time.Time) ([]event.Span, error) {
	body, err := f.client.GetBytes(ctx, f.url)
	if err != nil {
		return nil, err
	}
	return f.expand(body, from, to)
}

func (f *Feed) expand(body []byte, from, to time.Time) ([]event.Span, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "ics parse")
	}

	var out []event.Span
	for _, ve := range cal.Events() {
		spans, err := f.expandEvent(ve, from, to)
		if err != nil {
			f.log.Debug().Err(err).Msg("skipping malformed vevent")
			continue
		}
		out = append(out, spans...)
	}
	return out, nil
}

func (f *Feed) expandEvent(ve *ical.VEvent, from, to time.Time) ([]event.Span, error) {
	uid := propValue(ve, ical.ComponentPropertyUniqueId)
	if uid == "" {
		return nil, fmt.Errorf("missing uid")
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("dtstart: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil || end.Before(start) {
		end = start
	}

	base := event.Span{
		ID:          uid,
		Title:       propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
		Organizer:   strings.TrimPrefix(propValue(ve, ical.ComponentPropertyOrganizer), "mailto:"),
		Start:       start,
		End:         end,
		AllDay:      isAllDay(ve),
		Source:      event.SourceGoogle,
	}

	rawRule := propValue(ve, ical.ComponentPropertyRrule)
	if rawRule == "" {
		if overlaps(base.Start, base.End, from, to) {
			return []event.Span{base}, nil
		}
		return nil, nil
	}

	rule, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("rrule: %w", err)
	}
	rule.DTStart(start)

	duration := end.Sub(start)
	excluded := exdates(ve)

	var out []event.Span
	for i, occ := range rule.Between(from.Add(-duration), to, true) {
		if i >= maxOccurrences {
			f.log.Warn().Str("uid", uid).Msg("recurrence cap reached")
			break
		}
		if _, skip := excluded[occ.Unix()]; skip {
			continue
		}
		s := base
		s.ID = fmt.Sprintf("%s-%s", uid, occ.Format("20060102"))
		s.Start = occ
		s.End = occ.Add(duration)
		out = append(out, s)
	}
	return out, nil
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

// isAllDay detects VALUE=DATE or a date-only DTSTART
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// exdates collects EXDATE instants keyed by unix second
func exdates(ve *ical.VEvent) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out[t.Unix()] = struct{}{}
			}
		}
	}
	return out
}

func parseICSTime(v string) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !aStart.After(bEnd)
}
