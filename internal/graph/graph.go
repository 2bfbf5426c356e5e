package graph

import "navicampus/internal/floorplan"

// Neighbor is one outgoing hop in the adjacency list.
type Neighbor struct {
	ID     string
	Weight float64
}

// Graph is a weighted undirected graph over navigation node IDs.
type Graph struct {
	adj map[string][]Neighbor
}

// Build constructs the adjacency list from nodes and edges. Every edge is
// inserted in both directions with equal weight. Edges whose endpoints are not
// in the node set are dropped rather than creating phantom nodes.
func Build(nodes []floorplan.NavigationNode, edges []floorplan.NavigationEdge) *Graph {
	g := &Graph{adj: make(map[string][]Neighbor, len(nodes))}
	for _, node := range nodes {
		g.adj[node.ID] = nil
	}
	for _, edge := range edges {
		if _, ok := g.adj[edge.From]; !ok {
			continue
		}
		if _, ok := g.adj[edge.To]; !ok {
			continue
		}
		g.adj[edge.From] = append(g.adj[edge.From], Neighbor{ID: edge.To, Weight: edge.Weight})
		g.adj[edge.To] = append(g.adj[edge.To], Neighbor{ID: edge.From, Weight: edge.Weight})
	}
	return g
}

// Has reports whether the graph contains the node.
func (g *Graph) Has(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Neighbors returns the adjacency list of a node.
func (g *Graph) Neighbors(id string) []Neighbor {
	return g.adj[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}
