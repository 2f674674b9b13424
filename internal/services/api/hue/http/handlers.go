// Package http provides http transport for hue
package http

import (
	stdhttp "net/http"

	"homeboard/internal/modkit/httpkit"
	"homeboard/internal/services/api/hue/domain"
	svc "homeboard/internal/services/api/hue/service"
)

// Register mounts hue endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/room", h.roomStatus)
	httpkit.PostJSON[domain.ToggleRoomInput](r, "/room/toggle", h.toggleRoom)
	httpkit.PostJSON[domain.BrightnessInput](r, "/room/brightness", h.setBrightness)
	httpkit.PostJSON[domain.ToggleLightInput](r, "/light/toggle", h.toggleLight)
	httpkit.PostJSON[domain.SceneInput](r, "/scene/activate", h.activateScene)
}

type handlers struct{ svc svc.Service }

// @Summary Room light status
// @Tags Hue
// @Produce json
// @Param room query string true "room name"
// @Success 200 {object} domain.RoomView "ok"
// @Router /hue/room [get]
func (h *handlers) roomStatus(r *stdhttp.Request) (any, error) {
	view, err := h.svc.RoomStatus(r.Context(), r.URL.Query().Get("room"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": view}, nil
}

// @Summary Toggle every light in a room
// @Tags Hue
// @Accept json
// @Produce json
// @Param payload body domain.ToggleRoomInput true "Room"
// @Success 200 {object} domain.RoomView "ok"
// @Router /hue/room/toggle [post]
func (h *handlers) toggleRoom(r *stdhttp.Request, in domain.ToggleRoomInput) (any, error) {
	view, err := h.svc.ToggleRoom(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": view}, nil
}

// @Summary Set room brightness
// @Tags Hue
// @Accept json
// @Produce json
// @Param payload body domain.BrightnessInput true "Room and level"
// @Success 200 {object} domain.RoomView "ok"
// @Router /hue/room/brightness [post]
func (h *handlers) setBrightness(r *stdhttp.Request, in domain.BrightnessInput) (any, error) {
	view, err := h.svc.SetRoomBrightness(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": view}, nil
}

// @Summary Toggle a single light
// @Tags Hue
// @Accept json
// @Produce json
// @Param payload body domain.ToggleLightInput true "Light and state"
// @Success 200 {object} map[string]any "ok"
// @Router /hue/light/toggle [post]
func (h *handlers) toggleLight(r *stdhttp.Request, in domain.ToggleLightInput) (any, error) {
	if err := h.svc.ToggleLight(r.Context(), in); err != nil {
		return nil, err
	}
	return map[string]any{"lightId": in.LightID, "on": in.TurnOn}, nil
}

// @Summary Activate a scene
// @Tags Hue
// @Accept json
// @Produce json
// @Param payload body domain.SceneInput true "Scene"
// @Success 200 {object} map[string]any "ok"
// @Router /hue/scene/activate [post]
func (h *handlers) activateScene(r *stdhttp.Request, in domain.SceneInput) (any, error) {
	if err := h.svc.ActivateScene(r.Context(), in); err != nil {
		return nil, err
	}
	return map[string]any{"sceneId": in.SceneID}, nil
}
