package floorplan

// RoomType categorizes a room for search and display.
type RoomType string

const (
	RoomLecture   RoomType = "lecture"
	RoomLab       RoomType = "lab"
	RoomOffice    RoomType = "office"
	RoomRestroom  RoomType = "restroom"
	RoomWaiting   RoomType = "waiting"
	RoomCafeteria RoomType = "cafeteria"
	RoomLibrary   RoomType = "library"
	RoomCorridor  RoomType = "corridor"
)

// NodeType categorizes a navigation node.
type NodeType string

const (
	NodeHallway NodeType = "hallway"
	NodeQRPoint NodeType = "qr_point"
	NodePortal  NodeType = "portal"
	NodeRoom    NodeType = "room"
)

// Room is a rectangular area on a floor, in floor-local coordinates.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	W           float64  `json:"w"`
	H           float64  `json:"h"`
	Type        RoomType `json:"type"`
	Description string   `json:"description,omitempty"`
	OpenHours   string   `json:"openHours,omitempty"`
	CrowdLevel  string   `json:"crowdLevel,omitempty"`
}

// Center returns the midpoint of the room's bounding box.
func (r *Room) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// NavigationNode is a point in the walkable graph. Portal nodes carry the floor
// level the stairs/elevator leads toward; TargetFloor is nil for all other types.
// A portal exists as one node per floor it services, with a consistent ID across
// those floors.
type NavigationNode struct {
	ID          string   `json:"id"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Type        NodeType `json:"type"`
	Label       string   `json:"label,omitempty"`
	TargetFloor *int     `json:"targetFloor,omitempty"`
}

// NavigationEdge connects two nodes. Edges are walkable in both directions with
// the same weight; Weight must be non-negative.
type NavigationEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// FloorMetadata holds display information consumed by the map renderer.
type FloorMetadata struct {
	Name    string `json:"name"`
	ViewBox string `json:"viewBox"`
}

// NavigationData is a floor's walkable subgraph.
type NavigationData struct {
	Nodes []NavigationNode `json:"nodes"`
	Edges []NavigationEdge `json:"edges"`
}

// FloorData is the full immutable dataset for one physical floor.
// Level 0 is ground; negative levels are below ground.
type FloorData struct {
	BuildingID string         `json:"buildingId"`
	FloorLevel int            `json:"floorLevel"`
	Metadata   FloorMetadata  `json:"metadata"`
	Rooms      []Room         `json:"rooms"`
	Navigation NavigationData `json:"navigation"`
}

// IndexedRoom is a room enriched with the level of its owning floor.
type IndexedRoom struct {
	Room
	FloorLevel int `json:"floorLevel"`
}

// IndexedNode is a navigation node enriched with the level of its owning floor.
type IndexedNode struct {
	NavigationNode
	FloorLevel int `json:"floorLevel"`
}
