package digraph

import "errors"

var (
	// ErrSelfLoop is returned by [Graph.AddEdge] and the batch variants when an
	// edge would connect a vertex to itself.
	ErrSelfLoop = errors.New("self loop")

	// ErrCycle is returned by [Order] when the walk could not reach every
	// vertex, which only happens when the graph contains a directed cycle.
	ErrCycle = errors.New("graph contains a cycle")
)

// Direction selects which side of an edge a traversal treats as the
// prerequisite.
type Direction int

const (
	// TopDown visits prerequisites before dependents.
	TopDown Direction = iota
	// BottomUp visits dependents before prerequisites.
	BottomUp
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == BottomUp {
		return "reverse"
	}
	return "forward"
}

// EdgeSet holds the two adjacency sets of a single vertex.
//
// Incoming holds prerequisites: vertices that must come before this one in
// forward order. Outgoing holds dependents: vertices that must come before
// this one in reverse order.
type EdgeSet[K comparable] struct {
	Incoming Set[K]
	Outgoing Set[K]
}

// Graph maps each vertex key to its [EdgeSet].
//
// The zero value is not usable - use [New] to create a valid Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph[K comparable] struct {
	edges map[K]*EdgeSet[K]
	order []K
	count int
}

// New creates an empty graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{edges: make(map[K]*EdgeSet[K])}
}

// Ensure creates v with empty edge sets if it does not exist yet.
// It is idempotent and never modifies an existing vertex.
func (g *Graph[K]) Ensure(v K) {
	g.ensure(v)
}

func (g *Graph[K]) ensure(v K) *EdgeSet[K] {
	if es, ok := g.edges[v]; ok {
		return es
	}
	es := &EdgeSet[K]{}
	g.edges[v] = es
	g.order = append(g.order, v)
	return es
}

// AddEdge records that from must precede to in forward order.
// Both vertices are created if needed. Returns [ErrSelfLoop] if from == to.
// Adding an existing edge is a no-op.
func (g *Graph[K]) AddEdge(from, to K) error {
	if from == to {
		return ErrSelfLoop
	}
	g.link(from, to)
	return nil
}

// AddEdgesFrom records an edge from every source to to. This is the shape
// produced by a vertex declaring several prerequisites at once.
// If any source equals to, nothing is inserted and [ErrSelfLoop] is returned.
func (g *Graph[K]) AddEdgesFrom(sources []K, to K) error {
	for _, from := range sources {
		if from == to {
			return ErrSelfLoop
		}
	}
	g.ensure(to)
	for _, from := range sources {
		g.link(from, to)
	}
	return nil
}

// AddEdgesTo records an edge from from to every destination.
// If any destination equals from, nothing is inserted and [ErrSelfLoop] is returned.
func (g *Graph[K]) AddEdgesTo(from K, destinations []K) error {
	for _, to := range destinations {
		if from == to {
			return ErrSelfLoop
		}
	}
	g.ensure(from)
	for _, to := range destinations {
		g.link(from, to)
	}
	return nil
}

func (g *Graph[K]) link(from, to K) {
	src := g.ensure(from)
	dst := g.ensure(to)
	added := src.Outgoing.Add(to)
	dst.Incoming.Add(from)
	if added {
		g.count++
	}
}

// Contains reports whether v is a vertex of the graph.
func (g *Graph[K]) Contains(v K) bool {
	_, ok := g.edges[v]
	return ok
}

// Len returns the number of vertices.
func (g *Graph[K]) Len() int { return len(g.order) }

// EdgeCount returns the number of distinct edges.
func (g *Graph[K]) EdgeCount() int { return g.count }

// Vertices returns every vertex in insertion order.
func (g *Graph[K]) Vertices() []K {
	out := make([]K, len(g.order))
	copy(out, g.order)
	return out
}

// Prerequisites returns the vertices v depends on, in insertion order.
// Returns nil if v has none or does not exist.
func (g *Graph[K]) Prerequisites(v K) []K { return g.Parents(TopDown, v) }

// Dependents returns the vertices that depend on v, in insertion order.
// Returns nil if v has none or does not exist.
func (g *Graph[K]) Dependents(v K) []K { return g.Parents(BottomUp, v) }

// Parents returns the vertices that must be visited before v when walking
// in direction dir: prerequisites for [TopDown], dependents for [BottomUp].
func (g *Graph[K]) Parents(dir Direction, v K) []K {
	es, ok := g.edges[v]
	if !ok {
		return nil
	}
	if dir == TopDown {
		return nilIfEmpty(es.Incoming.Items())
	}
	return nilIfEmpty(es.Outgoing.Items())
}

// Children returns the vertices unlocked by v when walking in direction dir:
// dependents for [TopDown], prerequisites for [BottomUp].
func (g *Graph[K]) Children(dir Direction, v K) []K {
	if dir == TopDown {
		return g.Parents(BottomUp, v)
	}
	return g.Parents(TopDown, v)
}

// Roots returns vertices without prerequisites, in insertion order.
func (g *Graph[K]) Roots() []K { return g.seeds(TopDown) }

// Leaves returns vertices without dependents, in insertion order.
func (g *Graph[K]) Leaves() []K { return g.seeds(BottomUp) }

func (g *Graph[K]) seeds(dir Direction) []K {
	var out []K
	for _, v := range g.order {
		if g.indegree(dir, v) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func (g *Graph[K]) indegree(dir Direction, v K) int {
	es := g.edges[v]
	if dir == TopDown {
		return es.Incoming.Len()
	}
	return es.Outgoing.Len()
}

func nilIfEmpty[K any](s []K) []K {
	if len(s) == 0 {
		return nil
	}
	return s
}
