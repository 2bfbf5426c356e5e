package graph

import (
	"sort"

	"navicampus/internal/floorplan"
)

// MergeFloors unions the nodes and edges of every floor and synthesizes
// portal-to-portal edges between consecutive floors (ordered by level), each
// carrying portalWeight as the stairs/elevator traversal cost.
//
// One portal per floor participates in the linking: when a floor declares
// several portal nodes, the last one scanned wins. Floors without a portal stay
// unlinked, which can leave the merged graph disconnected; the shortest-path
// search reports that as "no path" rather than failing.
func MergeFloors(floors []*floorplan.FloorData, portalWeight float64) ([]floorplan.NavigationNode, []floorplan.NavigationEdge) {
	var allNodes []floorplan.NavigationNode
	var allEdges []floorplan.NavigationEdge
	portalByLevel := make(map[int]string)

	for _, floor := range floors {
		for _, node := range floor.Navigation.Nodes {
			allNodes = append(allNodes, node)
			if node.Type == floorplan.NodePortal {
				portalByLevel[floor.FloorLevel] = node.ID
			}
		}
		allEdges = append(allEdges, floor.Navigation.Edges...)
	}

	levels := make([]int, 0, len(portalByLevel))
	for level := range portalByLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for i := 0; i+1 < len(levels); i++ {
		allEdges = append(allEdges, floorplan.NavigationEdge{
			From:   portalByLevel[levels[i]],
			To:     portalByLevel[levels[i+1]],
			Weight: portalWeight,
		})
	}

	return allNodes, allEdges
}

// BuildMerged merges all floors and builds the combined graph in one step.
func BuildMerged(floors []*floorplan.FloorData, portalWeight float64) *Graph {
	nodes, edges := MergeFloors(floors, portalWeight)
	return Build(nodes, edges)
}
