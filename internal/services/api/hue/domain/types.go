// Package domain holds Hue lighting types
package domain

// XY is a CIE chromaticity coordinate pair
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoomLightStatus is the aggregate state of a room, recomputed each fetch
type RoomLightStatus struct {
	AllOn       bool    `json:"allOn"`
	AnyOn       bool    `json:"anyOn"`
	AllOff      bool    `json:"allOff"`
	Brightness  float64 `json:"brightness"`
	LightsCount int     `json:"lightsCount"`
	LightsOn    int     `json:"lightsOn"`
	Color       *string `json:"color"`
	ColorXY     *XY     `json:"colorXY"`
}

// LightView is one light as served to the dashboard
type LightView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	On         bool    `json:"on"`
	Brightness float64 `json:"brightness"`
	ColorXY    *XY     `json:"colorXY,omitempty"`
}

// GroupedLightView is the room-level grouped light resource
type GroupedLightView struct {
	ID         string  `json:"id"`
	On         bool    `json:"on"`
	Brightness float64 `json:"brightness"`
	ColorXY    *XY     `json:"colorXY,omitempty"`
}

// RoomView is the payload of GET /api/hue/room
type RoomView struct {
	Room         string            `json:"room"`
	Status       RoomLightStatus   `json:"status"`
	Lights       []LightView       `json:"lights"`
	GroupedLight *GroupedLightView `json:"groupedLight"`
}

// ToggleRoomInput toggles every light in a room
type ToggleRoomInput struct {
	Room string `json:"room" validate:"required"`
}

// BrightnessInput sets a room's brightness percentage
type BrightnessInput struct {
	Room       string  `json:"room" validate:"required"`
	Brightness float64 `json:"brightness" validate:"min=0,max=100"`
}

// ToggleLightInput switches a single light
type ToggleLightInput struct {
	LightID string `json:"lightId" validate:"required"`
	TurnOn  bool   `json:"turnOn"`
}

// SceneInput activates a scene
type SceneInput struct {
	SceneID string `json:"sceneId" validate:"required"`
}
