// Package graph is a generic, static directed weighted graph plus a
// Dijkstra shortest-path routine (spec §4.4). It has no notion of
// transit; router instantiates it for the time-expanded routing graph,
// but any non-negative, additively combinable, totally ordered weight
// works.
package graph

// Weight is the constraint spec §4.4 asks for: zero, add (via the
// native + operator) and a total order (via <). Every built-in numeric
// type satisfies it for free.
type Weight interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Edge is one directed, weighted edge, carrying the domain metadata
// (label, span) that router attaches to boarding and travel edges.
type Edge[W Weight] struct {
	From, To int
	Weight   W
	Label    string
	Span     int
}

// Graph is a static directed weighted graph over vertices [0,
// VertexCount). Edges live in an append-only array; adjacency[v] lists
// the ids of edges leaving v, in the order they were added.
type Graph[W Weight] struct {
	vertexCount int
	edges       []Edge[W]
	adjacency   [][]int
}

// New returns an empty graph over vertexCount vertices.
func New[W Weight](vertexCount int) *Graph[W] {
	return &Graph[W]{
		vertexCount: vertexCount,
		adjacency:   make([][]int, vertexCount),
	}
}

// VertexCount returns the number of vertices.
func (g *Graph[W]) VertexCount() int { return g.vertexCount }

// AddEdge appends a directed edge and returns its id.
func (g *Graph[W]) AddEdge(from, to int, weight W, label string, span int) int {
	id := len(g.edges)
	g.edges = append(g.edges, Edge[W]{From: from, To: to, Weight: weight, Label: label, Span: span})
	g.adjacency[from] = append(g.adjacency[from], id)
	return id
}

// Edge returns the edge with the given id.
func (g *Graph[W]) Edge(id int) Edge[W] { return g.edges[id] }

// EdgesFrom returns the ids of edges leaving v, in insertion order.
func (g *Graph[W]) EdgesFrom(v int) []int { return g.adjacency[v] }
