package textfmt

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"struct-layout/internal/layout"
)

// compositeNode is a graph node standing for one declaration.
type compositeNode struct {
	id   int64
	name string
}

func (n compositeNode) ID() int64 {
	return n.id
}

// order returns the declared names so that every composite follows the
// composites it embeds by value. Ties are broken by name. Tables with
// embedding cycles cannot be ordered and fall back to plain name order.
func order(t *layout.Table) []string {
	names := t.Names()

	// Node IDs follow name order, so the stabilized sort breaks ties by name.
	g := simple.NewDirectedGraph()
	nodes := make(map[string]compositeNode, len(names))
	for i, name := range names {
		n := compositeNode{id: int64(i), name: name}
		nodes[name] = n
		g.AddNode(n)
	}

	for _, name := range names {
		for _, dep := range t.Dependencies(name) {
			from, ok := nodes[dep]
			if !ok || dep == name {
				continue
			}
			g.SetEdge(g.NewEdge(from, nodes[name]))
		}
	}

	sorted, err := topo.SortStabilized(g, nil)
	if err != nil {
		return names
	}

	out := make([]string, len(sorted))
	for i, n := range sorted {
		out[i] = n.(compositeNode).name
	}
	return out
}
