package digraph

import (
	"slices"
	"testing"
)

func TestFindCycle_NoCycles(t *testing.T) {
	g := New[string]()
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "c")

	if got := FindCycle(g); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}

func TestFindCycle_SimpleCycle(t *testing.T) {
	g := New[string]()
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "a")

	got := FindCycle(g)
	if !slices.Equal(got, []string{"a", "b", "a"}) {
		t.Errorf("FindCycle() = %v, want [a b a]", got)
	}
}

func TestFindCycle_TriangleBehindRoot(t *testing.T) {
	g := New[string]()
	_ = g.AddEdge("root", "a")
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "c")
	_ = g.AddEdge("c", "a")

	got := FindCycle(g)
	if !slices.Equal(got, []string{"a", "b", "c", "a"}) {
		t.Errorf("FindCycle() = %v, want [a b c a]", got)
	}
}

func TestFindCycle_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := New[string]()
	_ = g.AddEdgesTo("a", []string{"b", "c"})
	_ = g.AddEdgesFrom([]string{"b", "c"}, "d")

	if got := FindCycle(g); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}

func TestFindCycle_EmptyGraph(t *testing.T) {
	if got := FindCycle(New[string]()); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}
