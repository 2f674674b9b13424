// Package domain holds the spotify proxy types
package domain

// Status reports whether the user holds a live server-side session
type Status struct {
	Authenticated bool   `json:"authenticated"`
	AuthURL       string `json:"authUrl,omitempty"`
}

// PlayInput optionally targets a device and a playback context
type PlayInput struct {
	DeviceID   string `json:"deviceId,omitempty"`
	ContextURI string `json:"contextUri,omitempty"`
}

// TransferInput moves playback to another device
type TransferInput struct {
	DeviceID string `json:"deviceId" validate:"required"`
}
