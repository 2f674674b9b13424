package service

import (
	"context"
	"fmt"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/services/api/hue/domain"
)

// ref is a CLIP v2 resource reference
type ref struct {
	RID   string `json:"rid"`
	RType string `json:"rtype"`
}

// resource is the subset of a CLIP v2 resource the service reads
type resource struct {
	ID       string `json:"id"`
	IDV1     string `json:"id_v1,omitempty"`
	Type     string `json:"type"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	On *struct {
		On bool `json:"on"`
	} `json:"on,omitempty"`
	Dimming *struct {
		Brightness float64 `json:"brightness"`
	} `json:"dimming,omitempty"`
	Color *struct {
		XY domain.XY `json:"xy"`
	} `json:"color,omitempty"`
	Owner     *ref   `json:"owner,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	Children  []ref  `json:"children,omitempty"`
	Services  []ref  `json:"services,omitempty"`
}

type clipResponse struct {
	Data []resource `json:"data"`
}

// v1Group is the legacy API group shape used by the last-resort resolver
type v1Group struct {
	Name   string   `json:"name"`
	Lights []string `json:"lights"`
}

// bridge talks to the Hue bridge over CLIP v2 with a v1 fallback
type bridge struct {
	client  *upstream.Client
	baseURL string // http://<bridge-ip>
	v1User  string // legacy API username, optional
}

func (b *bridge) list(ctx context.Context, rtype string) ([]resource, error) {
	var resp clipResponse
	url := fmt.Sprintf("%s/clip/v2/resource/%s", b.baseURL, rtype)
	if err := b.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (b *bridge) put(ctx context.Context, rtype, id string, body any) error {
	url := fmt.Sprintf("%s/clip/v2/resource/%s/%s", b.baseURL, rtype, id)
	return b.client.PutJSON(ctx, url, body, nil)
}

// v1Groups fetches legacy group membership; empty when no v1 user is set
func (b *bridge) v1Groups(ctx context.Context) (map[string]v1Group, error) {
	if b.v1User == "" {
		return nil, nil
	}
	var groups map[string]v1Group
	url := fmt.Sprintf("%s/api/%s/groups", b.baseURL, b.v1User)
	if err := b.client.GetJSON(ctx, url, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
