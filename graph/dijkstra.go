package graph

import "container/heap"

type queueItem[W Weight] struct {
	vertex int
	dist   W
}

type priorityQueue[W Weight] []queueItem[W]

func (q priorityQueue[W]) Len() int            { return len(q) }
func (q priorityQueue[W]) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q priorityQueue[W]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue[W]) Push(x interface{}) { *q = append(*q, x.(queueItem[W])) }
func (q *priorityQueue[W]) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from source to target. It returns the
// sequence of edge ids on the shortest path (empty if source ==
// target), the total weight, and whether target is reachable.
//
// Ties on equal distance are broken by edge-id order: edges are
// relaxed in the order EdgesFrom returns them (insertion order), and a
// candidate distance only replaces an existing one when strictly
// smaller, so the first-discovered shortest path for a given distance
// is the one kept, deterministically, for a fixed graph.
func ShortestPath[W Weight](g *Graph[W], source, target int) ([]int, W, bool) {
	var zero W

	dist := make([]W, g.VertexCount())
	visited := make([]bool, g.VertexCount())
	prevEdge := make([]int, g.VertexCount())
	set := make([]bool, g.VertexCount())
	for i := range prevEdge {
		prevEdge[i] = -1
	}

	dist[source] = zero
	set[source] = true

	pq := &priorityQueue[W]{{vertex: source, dist: zero}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem[W])
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == target {
			break
		}

		for _, edgeID := range g.EdgesFrom(u) {
			e := g.Edge(edgeID)
			candidate := dist[u] + e.Weight
			if !set[e.To] || candidate < dist[e.To] {
				dist[e.To] = candidate
				set[e.To] = true
				prevEdge[e.To] = edgeID
				heap.Push(pq, queueItem[W]{vertex: e.To, dist: candidate})
			}
		}
	}

	if !visited[target] {
		var zeroW W
		return nil, zeroW, false
	}

	var path []int
	for v := target; v != source; {
		edgeID := prevEdge[v]
		if edgeID == -1 {
			// unreachable from source despite the visited check above:
			// can't happen, but guard against an infinite loop.
			var zeroW W
			return nil, zeroW, false
		}
		path = append(path, edgeID)
		v = g.Edge(edgeID).From
	}
	// reverse into source->target order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[target], true
}
