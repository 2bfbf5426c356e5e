package floorplan

import (
	"fmt"
	"math"
	"strings"
)

// Registry holds all floor data for one building, plus lookup indices built once
// at load time. The data is read-only for the lifetime of the process, so the
// registry is safe for concurrent readers without locking.
type Registry struct {
	Building string
	Floors   []*FloorData // sorted ascending by level
	byLevel  map[int]*FloorData

	// rooms is keyed by room ID and by lowercase room name; both keys resolve
	// to the same enriched record.
	rooms map[string]*IndexedRoom
	nodes map[string]*IndexedNode

	roomCount int
}

// NewRegistry builds the indices and validates basic invariants: unique floor
// levels, and every declared edge referencing a node known somewhere in the
// building (portal edges may span floors, so the check is building-wide).
func NewRegistry(building string, floors []*FloorData) (*Registry, error) {
	reg := &Registry{
		Building: building,
		Floors:   floors,
		byLevel:  make(map[int]*FloorData),
		rooms:    make(map[string]*IndexedRoom),
		nodes:    make(map[string]*IndexedNode),
	}

	for _, floor := range floors {
		if _, dup := reg.byLevel[floor.FloorLevel]; dup {
			return nil, fmt.Errorf("duplicate floor level %d", floor.FloorLevel)
		}
		reg.byLevel[floor.FloorLevel] = floor

		for i := range floor.Rooms {
			room := &floor.Rooms[i]
			enriched := &IndexedRoom{Room: *room, FloorLevel: floor.FloorLevel}
			reg.rooms[room.ID] = enriched
			reg.rooms[strings.ToLower(room.Name)] = enriched
			reg.roomCount++
		}
		for i := range floor.Navigation.Nodes {
			node := &floor.Navigation.Nodes[i]
			reg.nodes[node.ID] = &IndexedNode{NavigationNode: *node, FloorLevel: floor.FloorLevel}
		}
	}

	for _, floor := range floors {
		for _, edge := range floor.Navigation.Edges {
			if _, ok := reg.nodes[edge.From]; !ok {
				return nil, fmt.Errorf("floor %d: edge references unknown node %q", floor.FloorLevel, edge.From)
			}
			if _, ok := reg.nodes[edge.To]; !ok {
				return nil, fmt.Errorf("floor %d: edge references unknown node %q", floor.FloorLevel, edge.To)
			}
			if edge.Weight < 0 {
				return nil, fmt.Errorf("floor %d: edge %s-%s has negative weight", floor.FloorLevel, edge.From, edge.To)
			}
		}
	}

	return reg, nil
}

// Floor returns the data for a level, or nil if the building has no such floor.
func (r *Registry) Floor(level int) *FloorData {
	return r.byLevel[level]
}

// Room resolves a room by ID or by name (case-insensitive).
func (r *Registry) Room(idOrName string) (*IndexedRoom, bool) {
	if room, ok := r.rooms[idOrName]; ok {
		return room, true
	}
	room, ok := r.rooms[strings.ToLower(idOrName)]
	return room, ok
}

// Node resolves a navigation node by ID.
func (r *Registry) Node(id string) (*IndexedNode, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// RoomCount returns the number of rooms across all floors.
func (r *Registry) RoomCount() int { return r.roomCount }

// NodeCount returns the number of navigation nodes across all floors.
func (r *Registry) NodeCount() int { return len(r.nodes) }

// RoomsOnFloor returns the rooms of one floor, optionally filtered by type.
func (r *Registry) RoomsOnFloor(level int, typeFilter RoomType) []Room {
	floor := r.byLevel[level]
	if floor == nil {
		return nil
	}
	if typeFilter == "" {
		return floor.Rooms
	}
	var out []Room
	for _, room := range floor.Rooms {
		if room.Type == typeFilter {
			out = append(out, room)
		}
	}
	return out
}

// ClosestNodeToRoom returns the navigation node on the given floor nearest to
// the room's bounding-box center. Ties keep the first node encountered. Returns
// false when the floor has no navigation nodes.
func (r *Registry) ClosestNodeToRoom(room *Room, level int) (*IndexedNode, bool) {
	floor := r.byLevel[level]
	if floor == nil || len(floor.Navigation.Nodes) == 0 {
		return nil, false
	}

	cx, cy := room.Center()
	var best *IndexedNode
	minDist := math.Inf(1)
	for i := range floor.Navigation.Nodes {
		node := &floor.Navigation.Nodes[i]
		dx := node.X - cx
		dy := node.Y - cy
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minDist {
			minDist = dist
			best = &IndexedNode{NavigationNode: *node, FloorLevel: level}
		}
	}
	return best, true
}

// FirstNodeOnFloor returns the first navigation node declared on a floor.
// This stands in for a real position fix until one exists; the destination side
// already resolves by proximity (ClosestNodeToRoom).
func (r *Registry) FirstNodeOnFloor(level int) (*IndexedNode, bool) {
	floor := r.byLevel[level]
	if floor == nil || len(floor.Navigation.Nodes) == 0 {
		return nil, false
	}
	return &IndexedNode{NavigationNode: floor.Navigation.Nodes[0], FloorLevel: level}, true
}
