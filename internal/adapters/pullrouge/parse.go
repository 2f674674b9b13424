package pullrouge

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// concert is one parsed listing before normalization
type concert struct {
	Date   time.Time
	Time   string
	Artist string
	Venue  string
	Price  string
}

var frenchMonths = map[string]time.Month{
	"janvier": time.January, "février": time.February, "fevrier": time.February,
	"mars": time.March, "avril": time.April, "mai": time.May,
	"juin": time.June, "juillet": time.July, "août": time.August, "aout": time.August,
	"septembre": time.September, "octobre": time.October,
	"novembre": time.November, "décembre": time.December, "decembre": time.December,
}

var (
	// "samedi 14 mars 2026" or "14 mars 2026"; year optional
	dateRe = regexp.MustCompile(`(?i)(?:lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)?\s*(\d{1,2})(?:er)?\s+([a-zéûôà]+)\.?\s*(\d{4})?`)
	// "20h30", "20h", "20:30"
	timeRe = regexp.MustCompile(`(\d{1,2})[h:](\d{2})?`)
	// "12€", "12,50 €", "gratuit"
	priceRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?\s*€|gratuit|prix libre)`)
)

// parseDate turns a French listing date line into a time, in loc.
// A missing year resolves to the next occurrence of that day from ref.
func parseDate(line string, ref time.Time, loc *time.Location) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := frenchMonths[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	year := ref.Year()
	if m[3] != "" {
		year, err = strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if m[3] == "" && d.Before(time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)) {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

// parseListing walks the extracted text lines and accumulates concert
// entries. A new date line or a blank line flushes the entry in progress.
// Entries without both a date and an artist are dropped.
func parseListing(text string, ref time.Time, loc *time.Location) []concert {
	var out []concert
	var cur *concert

	flush := func() {
		if cur != nil && cur.Artist != "" {
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}

		if d, ok := parseDate(line, ref, loc); ok {
			flush()
			cur = &concert{Date: d}
			if m := timeRe.FindStringSubmatch(line); m != nil {
				cur.Time = formatTime(m)
			}
			continue
		}
		if cur == nil {
			continue
		}

		if m := priceRe.FindString(line); m != "" {
			cur.Price = strings.TrimSpace(m)
			if cur.Venue == "" && line != m {
				cur.Venue = strings.TrimSpace(strings.Replace(line, m, "", 1))
			}
			continue
		}
		if m := timeRe.FindStringSubmatch(line); m != nil && cur.Time == "" && len(line) <= 8 {
			cur.Time = formatTime(m)
			continue
		}

		switch {
		case cur.Artist == "":
			cur.Artist = line
		case cur.Venue == "":
			cur.Venue = line
		}
	}
	flush()
	return out
}

func formatTime(m []string) string {
	h, _ := strconv.Atoi(m[1])
	if h > 23 {
		return ""
	}
	min := "00"
	if m[2] != "" {
		min = m[2]
	}
	return strconv.Itoa(h) + ":" + min
}
