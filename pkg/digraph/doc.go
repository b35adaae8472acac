// Package digraph provides a generic directed graph that records, for every
// vertex, the set of vertices it depends on and the set of vertices that
// depend on it, plus dependency-respecting traversals over that structure.
//
// # Overview
//
// The graph is deliberately passive. It stores edges symmetrically (an edge
// from → to is visible both as a prerequisite of to and as a dependent of
// from) and answers membership queries, nothing more. Ordering questions are
// answered by the traversal functions in this package, which operate purely on
// vertex keys.
//
// # Basic Usage
//
// Create a graph with [New], register vertices with [Graph.Ensure] and edges
// with [Graph.AddEdge] or its batch variants [Graph.AddEdgesFrom] and
// [Graph.AddEdgesTo]:
//
//	g := digraph.New[string]()
//	_ = g.AddEdge("config", "logger")
//	_ = g.AddEdgesFrom([]string{"config", "logger"}, "server")
//
// All insertions are set based, so adding the same edge twice is a no-op.
// Self loops are rejected with [ErrSelfLoop]. There is no removal API.
//
// # Traversal
//
// [Forward] visits prerequisites before dependents (construction order) and
// [Reverse] visits dependents before prerequisites (teardown order). Both are
// built on [Walk], an indegree-counted breadth-first walk in the style of
// Kahn's algorithm: a vertex is enqueued exactly when its last outstanding
// prerequisite in the walk direction has been visited, so every vertex of an
// acyclic graph is visited exactly once no matter how independent branches
// interleave.
//
// [Walk] takes the [Direction] explicitly: [TopDown] or [BottomUp].
//
// [Order] materializes a walk into a slice and reports [ErrCycle] when some
// vertices could not be reached because they sit on, or behind, a cycle.
// [FindCycle] returns one such cycle for diagnostics.
//
// # Determinism
//
// Vertices and edge sets iterate in insertion order. Traversals are therefore
// reproducible for a given sequence of insertions, although callers should
// not rely on the relative order of vertices from independent trees.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package digraph
