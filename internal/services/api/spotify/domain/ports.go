package domain

import (
	"context"
	"encoding/json"
)

// ServicePort exposes the spotify proxy to transports and sibling modules.
// Listing payloads pass through as raw JSON; the dashboard renders them as-is.
type ServicePort interface {
	Status(ctx context.Context, userID string) Status
	AuthURL(userID string) string
	Callback(ctx context.Context, state, code string) (string, error)

	Play(ctx context.Context, userID string, in PlayInput) error
	Pause(ctx context.Context, userID string) error
	Next(ctx context.Context, userID string) error
	Previous(ctx context.Context, userID string) error

	Devices(ctx context.Context, userID string) (json.RawMessage, error)
	Transfer(ctx context.Context, userID string, in TransferInput) error
	Playlists(ctx context.Context, userID string) (json.RawMessage, error)
	PlaylistTracks(ctx context.Context, userID, playlistID string) (json.RawMessage, error)
}
