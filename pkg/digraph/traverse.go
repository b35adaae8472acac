package digraph

import "fmt"

// Walk visits every vertex of g reachable from the seeds of direction dir and
// returns how many vertices were visited.
//
// Seeds are roots for [TopDown] and leaves for [BottomUp]. A vertex is visited
// only after every vertex in [Graph.Parents] for that direction has been
// visited, and each vertex is visited at most once. For an acyclic graph the
// return value equals [Graph.Len]; a smaller value means some vertices sit on
// or behind a cycle and were never released.
//
// The graph must not be modified during the walk.
func Walk[K comparable](g *Graph[K], dir Direction, visit func(K)) int {
	remaining := make(map[K]int, len(g.order))
	var queue []K
	for _, v := range g.order {
		n := g.indegree(dir, v)
		remaining[v] = n
		if n == 0 {
			queue = append(queue, v)
		}
	}

	visited := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		visit(v)
		visited++

		for _, child := range g.Children(dir, v) {
			remaining[child]--
			if remaining[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return visited
}

// Forward walks g visiting prerequisites before dependents.
func Forward[K comparable](g *Graph[K], visit func(K)) int {
	return Walk(g, TopDown, visit)
}

// Reverse walks g visiting dependents before prerequisites.
func Reverse[K comparable](g *Graph[K], visit func(K)) int {
	return Walk(g, BottomUp, visit)
}

// Order returns the vertices of g in walk order for direction dir.
//
// If the walk cannot reach every vertex, Order returns the partial order
// together with an error wrapping [ErrCycle].
func Order[K comparable](g *Graph[K], dir Direction) ([]K, error) {
	out := make([]K, 0, g.Len())
	n := Walk(g, dir, func(v K) { out = append(out, v) })
	if n < g.Len() {
		return out, fmt.Errorf("%w: %d of %d vertices unreachable in %s order", ErrCycle, g.Len()-n, g.Len(), dir)
	}
	return out, nil
}
