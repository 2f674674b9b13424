// Package service contains the Hue lighting workflows
package service

import (
	"context"
	"time"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/core/cache"
	"homeboard/internal/core/textfold"
	"homeboard/internal/platform/config"
	perr "homeboard/internal/platform/errors"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/hue/domain"
)

// room state is near-real-time: the slider UX tolerates at most 2s staleness
const defaultTTL = 2 * time.Second

// Service defines the Hue service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the Hue service
type Svc struct {
	bridge *bridge
	cells  *cache.Keyed[domain.RoomView]
	log    logger.Logger
}

// Config carries the bridge settings read from env
type Config struct {
	BridgeURL string
	AppKey    string
	V1User    string
	TTL       time.Duration
}

// FromConf reads the HUE_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("HUE_")
	return Config{
		BridgeURL: c.MayString("BRIDGE_URL", ""),
		AppKey:    c.MayString("APP_KEY", ""),
		V1User:    c.MayString("V1_USER", ""),
		TTL:       c.MayDuration("CACHE_TTL", defaultTTL),
	}
}

// New constructs a Hue service
func New(cfg Config, client *upstream.Client) *Svc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = upstream.New(upstream.Options{
			Integration: "hue",
			Headers:     map[string]string{"hue-application-key": cfg.AppKey},
		})
	}
	return &Svc{
		bridge: &bridge{client: client, baseURL: cfg.BridgeURL, v1User: cfg.V1User},
		cells:  cache.NewKeyed[domain.RoomView]("hue", cfg.TTL),
		log:    *logger.Named("hue"),
	}
}

// RoomStatus returns the aggregate room state, cached per room name
func (s *Svc) RoomStatus(ctx context.Context, room string) (domain.RoomView, error) {
	if room == "" {
		return domain.RoomView{}, perr.Newf(perr.ErrorCodeInvalidArgument, "room is required")
	}
	key := textfold.Fold(room)
	return s.cells.Get(ctx, key, func(ctx context.Context) (domain.RoomView, error) {
		return s.fetchRoom(ctx, room)
	})
}

// ToggleRoom flips the room's grouped light and returns the fresh state.
// The cache entry is invalidated before the re-read so the dashboard never
// sees pre-toggle state.
func (s *Svc) ToggleRoom(ctx context.Context, in domain.ToggleRoomInput) (domain.RoomView, error) {
	view, err := s.RoomStatus(ctx, in.Room)
	if err != nil {
		return domain.RoomView{}, err
	}
	if view.GroupedLight == nil {
		return domain.RoomView{}, perr.Newf(perr.ErrorCodeNotFound, "room %q has no grouped light", in.Room)
	}
	body := map[string]any{"on": map[string]bool{"on": !view.GroupedLight.On}}
	if err := s.bridge.put(ctx, "grouped_light", view.GroupedLight.ID, body); err != nil {
		return domain.RoomView{}, err
	}
	s.cells.InvalidateKey(textfold.Fold(in.Room))
	return s.RoomStatus(ctx, in.Room)
}

// SetRoomBrightness sets the room's brightness and turns it on
func (s *Svc) SetRoomBrightness(ctx context.Context, in domain.BrightnessInput) (domain.RoomView, error) {
	view, err := s.RoomStatus(ctx, in.Room)
	if err != nil {
		return domain.RoomView{}, err
	}
	if view.GroupedLight == nil {
		return domain.RoomView{}, perr.Newf(perr.ErrorCodeNotFound, "room %q has no grouped light", in.Room)
	}
	body := map[string]any{
		"on":      map[string]bool{"on": in.Brightness > 0},
		"dimming": map[string]float64{"brightness": in.Brightness},
	}
	if err := s.bridge.put(ctx, "grouped_light", view.GroupedLight.ID, body); err != nil {
		return domain.RoomView{}, err
	}
	s.cells.InvalidateKey(textfold.Fold(in.Room))
	return s.RoomStatus(ctx, in.Room)
}

// ToggleLight switches one light on or off
func (s *Svc) ToggleLight(ctx context.Context, in domain.ToggleLightInput) error {
	body := map[string]any{"on": map[string]bool{"on": in.TurnOn}}
	if err := s.bridge.put(ctx, "light", in.LightID, body); err != nil {
		return err
	}
	// a single light change can affect any room aggregate
	s.cells.Invalidate()
	return nil
}

// ActivateScene recalls a scene on the bridge
func (s *Svc) ActivateScene(ctx context.Context, in domain.SceneInput) error {
	body := map[string]any{"recall": map[string]string{"action": "active"}}
	if err := s.bridge.put(ctx, "scene", in.SceneID, body); err != nil {
		return err
	}
	s.cells.Invalidate()
	return nil
}

// fetchRoom loads the bridge state and aggregates the requested room
func (s *Svc) fetchRoom(ctx context.Context, room string) (domain.RoomView, error) {
	rooms, err := s.bridge.list(ctx, "room")
	if err != nil {
		return domain.RoomView{}, err
	}
	var target *resource
	for i := range rooms {
		if textfold.Equal(rooms[i].Metadata.Name, room) {
			target = &rooms[i]
			break
		}
	}
	if target == nil {
		return domain.RoomView{}, perr.Newf(perr.ErrorCodeNotFound, "room %q not found", room)
	}

	grouped, err := s.bridge.list(ctx, "grouped_light")
	if err != nil {
		return domain.RoomView{}, err
	}
	groupedLight := groupedFor(target, grouped)

	lights, err := s.bridge.list(ctx, "light")
	if err != nil {
		return domain.RoomView{}, err
	}
	devices, err := s.bridge.list(ctx, "device")
	if err != nil {
		return domain.RoomView{}, err
	}

	st := bridgeState{room: target, groupedLight: groupedLight, lights: lights, devices: devices}
	ids := resolveLights(st)
	if len(ids) == 0 {
		// last resort: the legacy v1 group table
		groups, gerr := s.bridge.v1Groups(ctx)
		if gerr != nil {
			s.log.Debug().Err(gerr).Msg("v1 group lookup failed")
		}
		st.v1Groups = groups
		ids = resolveLights(st)
	}

	views := lightViews(ids, lights)
	view := domain.RoomView{
		Room:   target.Metadata.Name,
		Lights: views,
		Status: aggregate(views, groupedLight),
	}
	if groupedLight != nil {
		view.GroupedLight = groupedView(groupedLight)
	}
	return view, nil
}

// groupedFor finds the grouped light owned by the room directly or via the
// room's services list
func groupedFor(room *resource, grouped []resource) *resource {
	for i := range grouped {
		g := &grouped[i]
		if g.Owner != nil && g.Owner.RID == room.ID {
			return g
		}
		for _, svc := range room.Services {
			if svc.RType == "grouped_light" && svc.RID == g.ID {
				return g
			}
		}
	}
	return nil
}

func lightViews(ids []string, lights []resource) []domain.LightView {
	out := make([]domain.LightView, 0, len(ids))
	for _, id := range ids {
		for i := range lights {
			l := &lights[i]
			if l.ID != id {
				continue
			}
			v := domain.LightView{ID: l.ID, Name: l.Metadata.Name}
			if l.On != nil {
				v.On = l.On.On
			}
			if l.Dimming != nil {
				v.Brightness = l.Dimming.Brightness
			}
			if l.Color != nil {
				xy := l.Color.XY
				v.ColorXY = &xy
			}
			out = append(out, v)
			break
		}
	}
	return out
}

func groupedView(g *resource) *domain.GroupedLightView {
	v := &domain.GroupedLightView{ID: g.ID}
	if g.On != nil {
		v.On = g.On.On
	}
	if g.Dimming != nil {
		v.Brightness = g.Dimming.Brightness
	}
	if g.Color != nil {
		xy := g.Color.XY
		v.ColorXY = &xy
	}
	return v
}

// aggregate recomputes RoomLightStatus from the light set. Color comes from
// the grouped light when it reports one (authoritative for scenes), else
// from the brightness-weighted per-light average.
func aggregate(lights []domain.LightView, grouped *resource) domain.RoomLightStatus {
	st := domain.RoomLightStatus{LightsCount: len(lights)}

	var brightnessSum float64
	for _, l := range lights {
		if l.On {
			st.LightsOn++
			brightnessSum += l.Brightness
		}
	}
	st.AnyOn = st.LightsOn > 0
	st.AllOn = st.LightsOn == len(lights) && len(lights) > 0
	st.AllOff = st.LightsOn == 0
	if st.LightsOn > 0 {
		st.Brightness = brightnessSum / float64(st.LightsOn)
	}

	var xy *domain.XY
	if grouped != nil && grouped.Color != nil {
		c := grouped.Color.XY
		xy = &c
	} else {
		xy = averageXY(lights)
	}
	if xy != nil {
		st.ColorXY = xy
		hex := xyToHex(*xy, st.Brightness)
		st.Color = &hex
	}
	return st
}
