package graph

import (
	"container/heap"
	"math"
)

// Result holds the output of a shortest-path search. Nodes absent from Dist are
// unreachable from the start (tentative distance +Inf).
type Result struct {
	// Dist maps node ID -> least cost from the start node.
	Dist map[string]float64
	// Prev maps node ID -> predecessor on the winning path.
	Prev map[string]string
}

// DistanceTo returns the least cost to a node, or +Inf when unreachable.
func (r Result) DistanceTo(id string) float64 {
	if d, ok := r.Dist[id]; ok {
		return d
	}
	return math.Inf(1)
}

// Reached reports whether the search settled a finite distance for the node.
func (r Result) Reached(id string) bool {
	_, ok := r.Dist[id]
	return ok
}

// ShortestPath runs Dijkstra from start toward end. Weights must be
// non-negative. The search stops as soon as end is settled, or when every
// remaining node is unreachable. A missing start or end simply leaves end
// unreached in the result; callers must check Reached before trusting Prev.
// Ties between equal-distance candidates are broken arbitrarily by heap order.
func (g *Graph) ShortestPath(start, end string) Result {
	res := Result{
		Dist: make(map[string]float64),
		Prev: make(map[string]string),
	}
	if !g.Has(start) {
		return res
	}

	res.Dist[start] = 0
	pq := &priorityQueue{{nodeID: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if item.nodeID == end {
			break
		}
		if item.dist > res.Dist[item.nodeID] {
			continue // stale queue entry
		}
		for _, n := range g.Neighbors(item.nodeID) {
			nd := item.dist + n.Weight
			if d, ok := res.Dist[n.ID]; !ok || nd < d {
				res.Dist[n.ID] = nd
				res.Prev[n.ID] = item.nodeID
				heap.Push(pq, pqItem{nodeID: n.ID, dist: nd})
			}
		}
	}
	return res
}

// Priority queue for Dijkstra
type pqItem struct {
	nodeID string
	dist   float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
