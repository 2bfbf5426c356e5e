package session

import (
	"fmt"
	"sync"

	"navicampus/internal/config"
	"navicampus/internal/floorplan"
	"navicampus/internal/graph"
	"navicampus/internal/route"
)

// NavigationState is the published result of one successful NavigateTo call.
// It is replaced wholesale by the next call and never mutated in place.
type NavigationState struct {
	StartNodeID       string           `json:"startNodeId"`
	DestinationRoomID string           `json:"destinationRoomId"`
	CurrentFloor      int              `json:"currentFloor"` // floor active at computation time
	Path              []route.PathNode `json:"path"`
	Distance          int              `json:"distance"`      // meters
	EstimatedTime     int              `json:"estimatedTime"` // minutes
}

// FloorChange tells the walker the next vertical move on the route.
type FloorChange struct {
	Direction string `json:"direction"` // "up" or "down"
	Floors    int    `json:"floors"`
}

// Snapshot is the read-only view handed to the renderer/UI.
type Snapshot struct {
	CurrentFloor    int                      `json:"currentFloor"`
	Navigation      *NavigationState         `json:"navigation"`
	Destination     *floorplan.IndexedRoom   `json:"destination"`
	SearchQuery     string                   `json:"searchQuery"`
	SearchResults   []*floorplan.IndexedRoom `json:"searchResults"`
	VisibleSegments []route.PathNode         `json:"visibleSegments"`
	NextFloorChange *FloorChange             `json:"nextFloorChange"`
	Instructions    []string                 `json:"instructions"`
}

// Controller owns one walker's mutable session state. It has two observable
// states: Idle (Navigation nil) and Navigating. All mutations go through its
// methods; the renderer and UI only read snapshots and dispatch intents.
type Controller struct {
	reg    *floorplan.Registry
	graphs *graph.MergedCache
	params route.Params

	mu           sync.Mutex
	currentFloor int
	searchQuery  string
	nav          *NavigationState
	destination  *floorplan.IndexedRoom
	instructions []string

	// Derived views, recomputed whenever nav or currentFloor changes.
	visible     []route.PathNode
	floorChange *FloorChange
}

// New creates an Idle controller positioned on startFloor.
func New(reg *floorplan.Registry, cfg *config.Config, graphs *graph.MergedCache, startFloor int) *Controller {
	return &Controller{
		reg:          reg,
		graphs:       graphs,
		params:       route.ParamsFromConfig(cfg),
		currentFloor: startFloor,
	}
}

// NavigateTo computes a route from the walker's current floor to the given
// room and publishes a new NavigationState. Any failure (missing floor, floor
// without nodes, unreachable destination) clears the session back to Idle and
// returns the error; a partial route is never left behind.
func (c *Controller) NavigateTo(room *floorplan.IndexedRoom) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.destination = room

	if err := c.navigateLocked(room); err != nil {
		c.nav = nil
		c.instructions = nil
		c.recomputeDerivedLocked()
		return err
	}
	return nil
}

func (c *Controller) navigateLocked(room *floorplan.IndexedRoom) error {
	if c.reg.Floor(room.FloorLevel) == nil {
		return fmt.Errorf("destination floor %d not found", room.FloorLevel)
	}

	// Start node: first node declared on the current floor. A stand-in for a
	// real position fix; the destination side resolves by proximity.
	startNode, ok := c.reg.FirstNodeOnFloor(c.currentFloor)
	if !ok {
		return fmt.Errorf("floor %d has no navigation nodes", c.currentFloor)
	}

	destNode, ok := c.reg.ClosestNodeToRoom(&room.Room, room.FloorLevel)
	if !ok {
		return fmt.Errorf("floor %d has no navigation nodes", room.FloorLevel)
	}

	g := c.graphs.Get(c.reg)
	res := g.ShortestPath(startNode.ID, destNode.ID)

	path, err := route.Reconstruct(res, startNode.ID, destNode.ID, c.reg, c.currentFloor)
	if err != nil {
		return err
	}

	distance := route.Distance(path, c.params)
	c.nav = &NavigationState{
		StartNodeID:       startNode.ID,
		DestinationRoomID: room.ID,
		CurrentFloor:      c.currentFloor,
		Path:              path,
		Distance:          distance,
		EstimatedTime:     route.EstimateTime(distance, c.params),
	}
	c.instructions = route.Instructions(path, c.params)
	c.recomputeDerivedLocked()
	return nil
}

// ClearNavigation discards the active route, destination, and instructions.
func (c *Controller) ClearNavigation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = nil
	c.destination = nil
	c.instructions = nil
	c.recomputeDerivedLocked()
}

// SetCurrentFloor switches the walker's floor and refreshes the derived views.
// It does not re-run pathfinding and does not change Idle/Navigating state.
func (c *Controller) SetCurrentFloor(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentFloor = level
	c.recomputeDerivedLocked()
}

// SetSearchQuery updates the live search text.
func (c *Controller) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = query
}

// CurrentFloor returns the walker's active floor.
func (c *Controller) CurrentFloor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentFloor
}

// Navigating reports whether an active route exists.
func (c *Controller) Navigating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav != nil
}

// Snapshot returns a point-in-time copy of the session for the renderer.
// Search results are evaluated against the registry on each call.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		CurrentFloor:    c.currentFloor,
		Navigation:      c.nav,
		Destination:     c.destination,
		SearchQuery:     c.searchQuery,
		SearchResults:   c.reg.Search(c.searchQuery),
		VisibleSegments: c.visible,
		NextFloorChange: c.floorChange,
		Instructions:    c.instructions,
	}
	if snap.SearchResults == nil {
		snap.SearchResults = []*floorplan.IndexedRoom{}
	}
	if snap.VisibleSegments == nil {
		snap.VisibleSegments = []route.PathNode{}
	}
	if snap.Instructions == nil {
		snap.Instructions = []string{}
	}
	return snap
}

// recomputeDerivedLocked refreshes the memoized views: the path subsequence on
// the current floor, and the next floor change scanning forward from the first
// path node matching the current floor.
func (c *Controller) recomputeDerivedLocked() {
	c.visible = nil
	c.floorChange = nil
	if c.nav == nil {
		return
	}

	for _, node := range c.nav.Path {
		if node.Floor == c.currentFloor {
			c.visible = append(c.visible, node)
		}
	}

	start := -1
	for i, node := range c.nav.Path {
		if node.Floor == c.currentFloor {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}
	for _, node := range c.nav.Path[start:] {
		if node.Floor != c.currentFloor {
			dir := "down"
			if node.Floor > c.currentFloor {
				dir = "up"
			}
			delta := node.Floor - c.currentFloor
			if delta < 0 {
				delta = -delta
			}
			c.floorChange = &FloorChange{Direction: dir, Floors: delta}
			return
		}
	}
}
