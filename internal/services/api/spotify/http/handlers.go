// Package http provides http transport for the spotify proxy
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"homeboard/internal/modkit/httpkit"
	perr "homeboard/internal/platform/errors"
	"homeboard/internal/services/api/spotify/domain"
	svc "homeboard/internal/services/api/spotify/service"
)

// Register mounts spotify endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/status", h.status)
	httpkit.Get(r, "/auth", h.auth)
	httpkit.Get(r, "/callback", h.callback)
	httpkit.PostJSON[domain.PlayInput](r, "/play", h.play)
	httpkit.Post(r, "/pause", h.pause)
	httpkit.Post(r, "/next", h.next)
	httpkit.Post(r, "/previous", h.previous)
	httpkit.Get(r, "/devices", h.devices)
	httpkit.PostJSON[domain.TransferInput](r, "/transfer", h.transfer)
	httpkit.Get(r, "/playlists", h.playlists)
	httpkit.Get(r, "/playlists/{playlistID}/tracks", h.tracks)
}

type handlers struct{ svc svc.Service }

// userID identifies the family member; the dashboard sends one per seat
func userID(r *stdhttp.Request) string {
	if id := r.URL.Query().Get("userId"); id != "" {
		return id
	}
	return "default"
}

// @Summary Session status for a user
// @Tags Spotify
// @Produce json
// @Param userId query string false "user id"
// @Success 200 {object} domain.Status "ok"
// @Router /spotify/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context(), userID(r)), nil
}

// @Summary Start the authorization dance
// @Tags Spotify
// @Produce json
// @Param userId query string false "user id"
// @Success 200 {object} map[string]string "ok"
// @Router /spotify/auth [get]
func (h *handlers) auth(r *stdhttp.Request) (any, error) {
	return map[string]string{"url": h.svc.AuthURL(userID(r))}, nil
}

// @Summary OAuth redirect target
// @Tags Spotify
// @Produce json
// @Param state query string true "state issued by /auth"
// @Param code query string true "authorization code"
// @Success 200 {object} map[string]string "ok"
// @Router /spotify/callback [get]
func (h *handlers) callback(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	if q.Get("error") != "" {
		return nil, perr.Newf(perr.ErrorCodeUnauthorized, "authorization refused: %s", q.Get("error"))
	}
	user, err := h.svc.Callback(r.Context(), q.Get("state"), q.Get("code"))
	if err != nil {
		return nil, err
	}
	return map[string]string{"userId": user}, nil
}

// @Summary Start or resume playback
// @Tags Spotify
// @Accept json
// @Produce json
// @Param payload body domain.PlayInput true "target"
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/play [post]
func (h *handlers) play(r *stdhttp.Request, in domain.PlayInput) (any, error) {
	if err := h.svc.Play(r.Context(), userID(r), in); err != nil {
		return nil, err
	}
	return map[string]any{"playing": true}, nil
}

// @Summary Pause playback
// @Tags Spotify
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/pause [post]
func (h *handlers) pause(r *stdhttp.Request) (any, error) {
	if err := h.svc.Pause(r.Context(), userID(r)); err != nil {
		return nil, err
	}
	return map[string]any{"playing": false}, nil
}

// @Summary Skip to the next track
// @Tags Spotify
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/next [post]
func (h *handlers) next(r *stdhttp.Request) (any, error) {
	if err := h.svc.Next(r.Context(), userID(r)); err != nil {
		return nil, err
	}
	return map[string]any{"skipped": true}, nil
}

// @Summary Skip to the previous track
// @Tags Spotify
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/previous [post]
func (h *handlers) previous(r *stdhttp.Request) (any, error) {
	if err := h.svc.Previous(r.Context(), userID(r)); err != nil {
		return nil, err
	}
	return map[string]any{"skipped": true}, nil
}

// @Summary Playback devices
// @Tags Spotify
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/devices [get]
func (h *handlers) devices(r *stdhttp.Request) (any, error) {
	raw, err := h.svc.Devices(r.Context(), userID(r))
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": raw}, nil
}

// @Summary Transfer playback to a device
// @Tags Spotify
// @Accept json
// @Produce json
// @Param payload body domain.TransferInput true "device"
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/transfer [post]
func (h *handlers) transfer(r *stdhttp.Request, in domain.TransferInput) (any, error) {
	if err := h.svc.Transfer(r.Context(), userID(r), in); err != nil {
		return nil, err
	}
	return map[string]any{"deviceId": in.DeviceID}, nil
}

// @Summary User playlists
// @Tags Spotify
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/playlists [get]
func (h *handlers) playlists(r *stdhttp.Request) (any, error) {
	raw, err := h.svc.Playlists(r.Context(), userID(r))
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": raw}, nil
}

// @Summary Tracks of one playlist
// @Tags Spotify
// @Produce json
// @Param playlistID path string true "playlist id"
// @Success 200 {object} map[string]any "ok"
// @Router /spotify/playlists/{playlistID}/tracks [get]
func (h *handlers) tracks(r *stdhttp.Request) (any, error) {
	raw, err := h.svc.PlaylistTracks(r.Context(), userID(r), chi.URLParam(r, "playlistID"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": raw}, nil
}
