// Package domain holds the bus departure types
package domain

// Departure is one upcoming departure at the watched stop
type Departure struct {
	Line       string `json:"line"`
	Direction  string `json:"direction"`
	WaitTime   string `json:"waitTime"`
	IsRealTime bool   `json:"isRealTime"`
}

// StopBoard is the normalized waiting-time board for one stop
type StopBoard struct {
	Departures []Departure `json:"departures"`
	StopName   string      `json:"stopName"`
	StopID     string      `json:"stopId"`
	LastUpdate string      `json:"lastUpdate"`
}
