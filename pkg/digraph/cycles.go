package digraph

// FindCycle returns one directed cycle of g as a path that starts and ends at
// the same vertex (a → b → a is returned as [a b a]), or nil if g is acyclic.
//
// Edges are followed from prerequisite to dependent. Detection runs in O(V+E)
// using depth-first search with white/gray/black coloring.
func FindCycle[K comparable](g *Graph[K]) []K {
	const (
		white = iota
		gray
		black
	)

	color := make(map[K]int, len(g.order))
	var stack []K
	var cycle []K

	var dfs func(v K) bool
	dfs = func(v K) bool {
		color[v] = gray
		stack = append(stack, v)
		for _, next := range g.edges[v].Outgoing.items {
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				for i, s := range stack {
					if s == next {
						cycle = append(append(cycle, stack[i:]...), next)
						return true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[v] = black
		return false
	}

	for _, v := range g.order {
		if color[v] == white && dfs(v) {
			return cycle
		}
	}
	return nil
}
