package service

import "strings"

// bridgeState is one snapshot of the resources a resolution needs
type bridgeState struct {
	room         *resource
	groupedLight *resource
	lights       []resource
	devices      []resource
	v1Groups     map[string]v1Group
}

// lightResolver returns the ids of the room's lights, or nil when the
// strategy cannot answer. Resolvers are tried in order, first non-empty
// result wins, with no merging across strategies.
type lightResolver func(st bridgeState) []string

var lightResolvers = []lightResolver{
	resolveRoomChildren,
	resolveDeviceBackref,
	resolveServiceID,
	resolveServiceRefs,
	resolveV1Groups,
}

// resolveRoomChildren walks room children devices into their light services
func resolveRoomChildren(st bridgeState) []string {
	if st.room == nil {
		return nil
	}
	var out []string
	for _, child := range st.room.Children {
		if child.RType != "device" {
			continue
		}
		for _, dev := range st.devices {
			if dev.ID != child.RID {
				continue
			}
			for _, svc := range dev.Services {
				if svc.RType == "light" {
					out = append(out, svc.RID)
				}
			}
		}
	}
	return out
}

// resolveDeviceBackref keeps lights whose owner device points back at the room
func resolveDeviceBackref(st bridgeState) []string {
	if st.room == nil {
		return nil
	}
	roomDevices := make(map[string]bool)
	for _, dev := range st.devices {
		if dev.Owner != nil && dev.Owner.RID == st.room.ID {
			roomDevices[dev.ID] = true
		}
	}
	var out []string
	for _, l := range st.lights {
		if l.Owner != nil && roomDevices[l.Owner.RID] {
			out = append(out, l.ID)
		}
	}
	return out
}

// resolveServiceID matches lights whose service_id equals the grouped-light id
func resolveServiceID(st bridgeState) []string {
	if st.groupedLight == nil {
		return nil
	}
	var out []string
	for _, l := range st.lights {
		if l.ServiceID != "" && l.ServiceID == st.groupedLight.ID {
			out = append(out, l.ID)
		}
	}
	return out
}

// resolveServiceRefs matches lights whose services array references the room
// or its grouped light
func resolveServiceRefs(st bridgeState) []string {
	if st.room == nil {
		return nil
	}
	var out []string
	for _, l := range st.lights {
		for _, svc := range l.Services {
			if svc.RID == st.room.ID || (st.groupedLight != nil && svc.RID == st.groupedLight.ID) {
				out = append(out, l.ID)
				break
			}
		}
	}
	return out
}

// resolveV1Groups is the legacy fallback: match the group by name and map
// its v1 light numbers onto v2 lights via id_v1 suffixes
func resolveV1Groups(st bridgeState) []string {
	if st.room == nil || len(st.v1Groups) == 0 {
		return nil
	}
	var group *v1Group
	for _, g := range st.v1Groups {
		if strings.EqualFold(g.Name, st.room.Metadata.Name) {
			group = &g
			break
		}
	}
	if group == nil {
		return nil
	}
	var out []string
	for _, num := range group.Lights {
		for _, l := range st.lights {
			if strings.HasSuffix(l.IDV1, "/lights/"+num) {
				out = append(out, l.ID)
			}
		}
	}
	return out
}

// resolveLights runs the strategy chain
func resolveLights(st bridgeState) []string {
	for _, resolve := range lightResolvers {
		if ids := resolve(st); len(ids) > 0 {
			return ids
		}
	}
	return nil
}
