// Package graph provides the immutable undirected social network consumed by
// the simulation engines. Topology is fixed at construction: nodes are
// agents, edges are potential-contact pairs.
package graph

import "sort"

// NodeID identifies a single agent in the network.
type NodeID uint64

// Graph is an undirected graph with a fixed node set and adjacency lists.
// All accessors return data in sorted order so that callers iterating the
// graph are deterministic.
type Graph struct {
	nodes    []NodeID
	adjacent map[NodeID][]NodeID
	numEdges int
}

// Builder accumulates nodes and edges before freezing them into a Graph.
type Builder struct {
	nodes map[NodeID]bool
	edges map[[2]NodeID]bool
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[NodeID]bool),
		edges: make(map[[2]NodeID]bool),
	}
}

// AddNode registers a node. Adding the same node twice is a no-op.
func (b *Builder) AddNode(id NodeID) {
	b.nodes[id] = true
}

// AddEdge registers an undirected edge between two nodes, creating the
// endpoints if needed. Self-loops and duplicate edges are ignored.
func (b *Builder) AddEdge(u, v NodeID) {
	if u == v {
		return
	}
	b.nodes[u] = true
	b.nodes[v] = true
	if v < u {
		u, v = v, u
	}
	b.edges[[2]NodeID{u, v}] = true
}

// Build freezes the accumulated nodes and edges into an immutable Graph.
func (b *Builder) Build() *Graph {
	g := &Graph{
		nodes:    make([]NodeID, 0, len(b.nodes)),
		adjacent: make(map[NodeID][]NodeID, len(b.nodes)),
	}
	for id := range b.nodes {
		g.nodes = append(g.nodes, id)
	}
	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i] < g.nodes[j] })

	for e := range b.edges {
		g.adjacent[e[0]] = append(g.adjacent[e[0]], e[1])
		g.adjacent[e[1]] = append(g.adjacent[e[1]], e[0])
		g.numEdges++
	}
	for id := range g.adjacent {
		nbrs := g.adjacent[id]
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
	}
	return g
}

// Empty returns a graph with no nodes and no edges.
func Empty() *Graph {
	return NewBuilder().Build()
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of undirected edges in the graph.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Nodes returns all node IDs in ascending order. The returned slice is a
// copy and safe for the caller to permute.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Neighbors returns the neighbors of a node in ascending order. The returned
// slice is shared and must not be modified by the caller.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return g.adjacent[id]
}

// Degree returns the number of neighbors of a node.
func (g *Graph) Degree(id NodeID) int {
	return len(g.adjacent[id])
}

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(id NodeID) bool {
	i := sort.Search(len(g.nodes), func(i int) bool { return g.nodes[i] >= id })
	return i < len(g.nodes) && g.nodes[i] == id
}

// HasEdge reports whether an undirected edge exists between two nodes.
func (g *Graph) HasEdge(u, v NodeID) bool {
	nbrs := g.adjacent[u]
	i := sort.Search(len(nbrs), func(i int) bool { return nbrs[i] >= v })
	return i < len(nbrs) && nbrs[i] == v
}

// Edges returns every undirected edge exactly once, as (low, high) pairs in
// ascending order. Intended for exporters and renderers.
func (g *Graph) Edges() [][2]NodeID {
	out := make([][2]NodeID, 0, g.numEdges)
	for _, u := range g.nodes {
		for _, v := range g.adjacent[u] {
			if u < v {
				out = append(out, [2]NodeID{u, v})
			}
		}
	}
	return out
}
