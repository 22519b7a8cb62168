package graph

import "testing"

func TestBuilderDeduplicatesEdges(t *testing.T) {
	b := NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(2, 1)
	b.AddEdge(1, 2)
	g := b.Build()

	if g.NumNodes() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.NumNodes())
	}
	if g.NumEdges() != 1 {
		t.Errorf("expected 1 edge, got %d", g.NumEdges())
	}
}

func TestBuilderIgnoresSelfLoops(t *testing.T) {
	b := NewBuilder()
	b.AddEdge(1, 1)
	g := b.Build()

	if g.NumNodes() != 0 {
		t.Errorf("self-loop should not create nodes, got %d", g.NumNodes())
	}
	if g.NumEdges() != 0 {
		t.Errorf("self-loop should not create edges, got %d", g.NumEdges())
	}
}

func TestNodesSorted(t *testing.T) {
	b := NewBuilder()
	for _, id := range []NodeID{5, 3, 9, 1} {
		b.AddNode(id)
	}
	g := b.Build()

	nodes := g.Nodes()
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1] >= nodes[i] {
			t.Fatalf("nodes not sorted: %v", nodes)
		}
	}
}

func TestNeighborsSorted(t *testing.T) {
	b := NewBuilder()
	b.AddEdge(0, 7)
	b.AddEdge(0, 3)
	b.AddEdge(0, 5)
	g := b.Build()

	nbrs := g.Neighbors(0)
	if len(nbrs) != 3 {
		t.Fatalf("expected 3 neighbors, got %d", len(nbrs))
	}
	for i := 1; i < len(nbrs); i++ {
		if nbrs[i-1] >= nbrs[i] {
			t.Fatalf("neighbors not sorted: %v", nbrs)
		}
	}
}

func TestHasEdgeUndirected(t *testing.T) {
	b := NewBuilder()
	b.AddEdge(2, 8)
	g := b.Build()

	if !g.HasEdge(2, 8) || !g.HasEdge(8, 2) {
		t.Error("edge should be visible from both endpoints")
	}
	if g.HasEdge(2, 3) {
		t.Error("unexpected edge 2-8")
	}
}

func TestEdgesEnumeratesEachOnce(t *testing.T) {
	g := NewRing(5)

	edges := g.Edges()
	if len(edges) != 5 {
		t.Fatalf("ring of 5 should have 5 edges, got %d", len(edges))
	}
	seen := make(map[[2]NodeID]bool)
	for _, e := range edges {
		if e[0] >= e[1] {
			t.Errorf("edge %v not in (low, high) order", e)
		}
		if seen[e] {
			t.Errorf("edge %v enumerated twice", e)
		}
		seen[e] = true
	}
}

func TestEmptyGraph(t *testing.T) {
	g := Empty()

	if g.NumNodes() != 0 || g.NumEdges() != 0 {
		t.Errorf("empty graph has %d nodes, %d edges", g.NumNodes(), g.NumEdges())
	}
	if len(g.Nodes()) != 0 {
		t.Error("empty graph should return no nodes")
	}
}
