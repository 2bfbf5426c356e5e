package route

import (
	"errors"
	"fmt"
	"math"

	"navicampus/internal/config"
	"navicampus/internal/floorplan"
	"navicampus/internal/graph"
)

// ErrNoRoute means the destination is unreachable from the start node. This is
// a normal outcome (disconnected floors, missing portals), not a data error.
var ErrNoRoute = errors.New("no route to destination")

// PathNode is one hop of a computed route: a node ID resolved to its coordinate
// and floor level.
type PathNode struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Floor int     `json:"floor"`
}

// Params carries the estimation constants. Routing cost (the portal edge
// weight) lives in graph construction and is intentionally independent of
// FloorChangeMeters here.
type Params struct {
	UnitsToMeters     float64
	FloorChangeMeters float64
	WalkingSpeed      float64
	TimeBuffer        float64
	TurnThreshold     float64
}

// ParamsFromConfig extracts the estimation constants from the app config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		UnitsToMeters:     cfg.UnitsToMeters,
		FloorChangeMeters: cfg.FloorChangeMeters,
		WalkingSpeed:      cfg.WalkingSpeed,
		TimeBuffer:        cfg.TimeBuffer,
		TurnThreshold:     cfg.TurnThreshold,
	}
}

// Reconstruct walks the predecessor map backward from end to start and resolves
// each node ID to a floor-tagged PathNode. Nodes default to the floor active
// when the route was requested; a portal node carrying a target floor is tagged
// with that floor instead, which is how consecutive PathNodes change level.
//
// Returns ErrNoRoute when the search never settled the destination. A node ID
// missing from the registry is an invariant violation and yields a distinct
// error, never a truncated path.
func Reconstruct(res graph.Result, startID, endID string, reg *floorplan.Registry, currentFloor int) ([]PathNode, error) {
	if !res.Reached(endID) {
		return nil, ErrNoRoute
	}

	var ids []string
	for cur := endID; ; {
		ids = append(ids, cur)
		prev, ok := res.Prev[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// ids is end->start; reverse in place.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	if ids[0] != startID {
		return nil, ErrNoRoute
	}

	path := make([]PathNode, 0, len(ids))
	for _, id := range ids {
		node, ok := reg.Node(id)
		if !ok {
			return nil, fmt.Errorf("path references unindexed node %q", id)
		}
		floor := currentFloor
		if node.Type == floorplan.NodePortal && node.TargetFloor != nil {
			floor = *node.TargetFloor
		}
		path = append(path, PathNode{ID: id, X: node.X, Y: node.Y, Floor: floor})
	}
	return path, nil
}

// Distance sums the Euclidean length of every hop, scaled to meters, plus a
// fixed vertical allowance per floor level crossed. Rounded to whole meters.
func Distance(path []PathNode, p Params) int {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		cur, next := path[i], path[i+1]
		dx := next.X - cur.X
		dy := next.Y - cur.Y
		total += math.Sqrt(dx*dx+dy*dy) * p.UnitsToMeters
		if next.Floor != cur.Floor {
			total += math.Abs(float64(next.Floor-cur.Floor)) * p.FloorChangeMeters
		}
	}
	return int(math.Round(total))
}

// EstimateTime converts a distance in meters to whole minutes of walking,
// padded for turns and obstacles. Rounded up so estimates never understate.
func EstimateTime(distanceMeters int, p Params) int {
	base := float64(distanceMeters) / p.WalkingSpeed
	return int(math.Ceil(base * p.TimeBuffer / 60))
}
