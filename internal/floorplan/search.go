package floorplan

import "strings"

// QRPrefix is the payload prefix emitted by the QR-scanner collaborator.
const QRPrefix = "room_id:"

// Search returns all rooms whose ID, name, or type contains the query,
// case-insensitively, across every floor. Results are deduplicated by room ID;
// prefix matches on the name come before plain substring matches. An empty or
// whitespace-only query returns nothing.
func (r *Registry) Search(query string) []*IndexedRoom {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	seen := make(map[string]bool)
	var prefix, contains []*IndexedRoom
	for _, floor := range r.Floors {
		for i := range floor.Rooms {
			room := &floor.Rooms[i]
			if seen[room.ID] {
				continue
			}
			name := strings.ToLower(room.Name)
			matched := strings.Contains(strings.ToLower(room.ID), q) ||
				strings.Contains(name, q) ||
				strings.Contains(strings.ToLower(string(room.Type)), q)
			if !matched {
				continue
			}
			seen[room.ID] = true
			enriched := &IndexedRoom{Room: *room, FloorLevel: floor.FloorLevel}
			if strings.HasPrefix(name, q) {
				prefix = append(prefix, enriched)
			} else {
				contains = append(contains, enriched)
			}
		}
	}
	return append(prefix, contains...)
}

// ResolveQR resolves a scanned QR payload of the form "room_id:<ID>" to a room.
func (r *Registry) ResolveQR(payload string) (*IndexedRoom, bool) {
	code := strings.TrimSpace(payload)
	if !strings.HasPrefix(code, QRPrefix) {
		return nil, false
	}
	return r.Room(strings.TrimPrefix(code, QRPrefix))
}
