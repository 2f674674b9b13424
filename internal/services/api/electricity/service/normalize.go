package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// reading is one extracted daily consumption value in kWh
type reading struct {
	Date  string
	Value float64
}

// rawReading tolerates the field-name variants seen across meter APIs
type rawReading map[string]json.RawMessage

// readingStrategy probes one known location for the reading array.
// It returns nil (not empty) when the shape does not match, so the
// next strategy in the list is tried.
type readingStrategy func(raw json.RawMessage) []rawReading

// readingStrategies is the probe order. First non-nil result wins.
var readingStrategies = []readingStrategy{
	topLevelArray,
	meterReadingField,
	intervalReadingField,
	readingsField,
	firstObjectKey,
}

func topLevelArray(raw json.RawMessage) []rawReading {
	var arr []rawReading
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

// meterReadingField handles .meter_reading as an array or as an object
// wrapping .interval_reading
func meterReadingField(raw json.RawMessage) []rawReading {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil
	}
	mr, ok := top["meter_reading"]
	if !ok {
		return nil
	}
	if arr := topLevelArray(mr); arr != nil {
		return arr
	}
	return intervalReadingField(mr)
}

func intervalReadingField(raw json.RawMessage) []rawReading {
	var obj struct {
		IntervalReading []rawReading `json:"interval_reading"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.IntervalReading == nil {
		return nil
	}
	return obj.IntervalReading
}

func readingsField(raw json.RawMessage) []rawReading {
	var obj struct {
		Readings []rawReading `json:"readings"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Readings == nil {
		return nil
	}
	return obj.Readings
}

// firstObjectKey is the last resort: the payload's first key holds either
// the array itself or an object containing .interval_reading
func firstObjectKey(raw json.RawMessage) []rawReading {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil
	}
	for _, v := range top {
		if arr := topLevelArray(v); arr != nil {
			return arr
		}
		if arr := intervalReadingField(v); arr != nil {
			return arr
		}
	}
	return nil
}

var (
	valueKeys = []string{"value", "Value", "energy", "Energy"}
	dateKeys  = []string{"date", "Date", "start", "Start"}
)

// extractReadings runs the strategy list and normalizes fields and units.
// The Wh flag is derived once per batch from meter_reading.reading_type.unit
// and applied uniformly; missing arrays mean zero readings, never an error.
func extractReadings(raw json.RawMessage) []reading {
	var rows []rawReading
	for _, probe := range readingStrategies {
		if rows = probe(raw); rows != nil {
			break
		}
	}
	if rows == nil {
		return nil
	}

	divisor := 1.0
	if batchUnitIsWh(raw) {
		divisor = 1000
	}

	out := make([]reading, 0, len(rows))
	for _, row := range rows {
		v, ok := readValue(row)
		if !ok {
			continue
		}
		d, ok := readDate(row)
		if !ok {
			continue
		}
		out = append(out, reading{Date: d, Value: round2(v / divisor)})
	}
	return out
}

// batchUnitIsWh checks meter_reading.reading_type.unit == "Wh" once per batch
func batchUnitIsWh(raw json.RawMessage) bool {
	var top struct {
		MeterReading struct {
			ReadingType struct {
				Unit string `json:"unit"`
			} `json:"reading_type"`
		} `json:"meter_reading"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return false
	}
	return top.MeterReading.ReadingType.Unit == "Wh"
}

func readValue(row rawReading) (float64, bool) {
	for _, k := range valueKeys {
		raw, ok := row[k]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f, true
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func readDate(row rawReading) (string, bool) {
	for _, k := range dateKeys {
		raw, ok := row[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, true
		}
	}
	return "", false
}

// dateMatches tolerates reading dates carrying a time suffix
func dateMatches(readingDate, day string) bool {
	return readingDate == day || strings.HasPrefix(readingDate, day)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
