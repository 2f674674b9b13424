package service

import (
	"reflect"
	"testing"
)

func roomFixture() *resource {
	return &resource{
		ID:   "room-1",
		Type: "room",
		Metadata: struct {
			Name string `json:"name"`
		}{Name: "Salon"},
	}
}

func TestResolveLights_RoomChildrenWinsFirst(t *testing.T) {
	room := roomFixture()
	room.Children = []ref{{RID: "dev-1", RType: "device"}}

	st := bridgeState{
		room: room,
		devices: []resource{{
			ID:       "dev-1",
			Services: []ref{{RID: "light-1", RType: "light"}, {RID: "zgb-1", RType: "zigbee_connectivity"}},
		}},
		// a competing strategy could also answer; first one must win
		lights: []resource{{ID: "light-9", ServiceID: "gl-1"}},
	}

	if got := resolveLights(st); !reflect.DeepEqual(got, []string{"light-1"}) {
		t.Fatalf("resolved %v want [light-1]", got)
	}
}

func TestResolveLights_FallsThroughToServiceID(t *testing.T) {
	st := bridgeState{
		room:         roomFixture(),
		groupedLight: &resource{ID: "gl-1"},
		lights: []resource{
			{ID: "light-1", ServiceID: "gl-1"},
			{ID: "light-2", ServiceID: "gl-other"},
		},
	}

	if got := resolveLights(st); !reflect.DeepEqual(got, []string{"light-1"}) {
		t.Fatalf("resolved %v want [light-1]", got)
	}
}

func TestResolveLights_ServiceRefsMatchRoomOrGroupedLight(t *testing.T) {
	st := bridgeState{
		room:         roomFixture(),
		groupedLight: &resource{ID: "gl-1"},
		lights: []resource{
			{ID: "light-1", Services: []ref{{RID: "room-1"}}},
			{ID: "light-2", Services: []ref{{RID: "gl-1"}}},
			{ID: "light-3", Services: []ref{{RID: "elsewhere"}}},
		},
	}

	if got := resolveLights(st); !reflect.DeepEqual(got, []string{"light-1", "light-2"}) {
		t.Fatalf("resolved %v", got)
	}
}

func TestResolveLights_LegacyV1LastResort(t *testing.T) {
	st := bridgeState{
		room: roomFixture(),
		lights: []resource{
			{ID: "light-1", IDV1: "/lights/3"},
			{ID: "light-2", IDV1: "/lights/7"},
		},
		v1Groups: map[string]v1Group{
			"1": {Name: "salon", Lights: []string{"3"}},
		},
	}

	if got := resolveLights(st); !reflect.DeepEqual(got, []string{"light-1"}) {
		t.Fatalf("resolved %v want [light-1]", got)
	}
}

func TestResolveLights_NothingMatches(t *testing.T) {
	st := bridgeState{room: roomFixture(), lights: []resource{{ID: "light-1"}}}
	if got := resolveLights(st); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
