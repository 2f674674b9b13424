package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	RoomStatus(ctx context.Context, room string) (RoomView, error)
	ToggleRoom(ctx context.Context, in ToggleRoomInput) (RoomView, error)
	SetRoomBrightness(ctx context.Context, in BrightnessInput) (RoomView, error)
	ToggleLight(ctx context.Context, in ToggleLightInput) error
	ActivateScene(ctx context.Context, in SceneInput) error
}
