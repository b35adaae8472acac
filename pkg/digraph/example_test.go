package digraph_test

import (
	"fmt"

	"github.com/matzehuels/sysgraph/pkg/digraph"
)

func ExampleGraph_basic() {
	// config → logger → server, and server also needs config directly
	g := digraph.New[string]()
	_ = g.AddEdge("config", "logger")
	_ = g.AddEdgesFrom([]string{"config", "logger"}, "server")

	fmt.Println("Vertices:", g.Len())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Server needs:", g.Prerequisites("server"))
	fmt.Println("Config feeds:", g.Dependents("config"))
	// Output:
	// Vertices: 3
	// Edges: 3
	// Server needs: [config logger]
	// Config feeds: [logger server]
}

func ExampleReverse() {
	g := digraph.New[string]()
	_ = g.AddEdge("init", "window")
	_ = g.AddEdge("window", "renderer")

	digraph.Reverse(g, func(v string) {
		fmt.Println("destroy", v)
	})
	// Output:
	// destroy renderer
	// destroy window
	// destroy init
}

func ExampleOrder() {
	g := digraph.New[int]()
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(1, 3)
	_ = g.AddEdgesFrom([]int{2, 3}, 4)

	order, err := digraph.Order(g, digraph.TopDown)
	fmt.Println(order, err)
	// Output:
	// [1 2 3 4] <nil>
}
