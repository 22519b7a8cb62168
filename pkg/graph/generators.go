package graph

import "math/rand"

// Generators for common social-network topologies. Each generator takes the
// caller's random source so that network construction shares the caller's
// reproducibility contract.

// NewRing creates a cycle of n nodes, each connected to its two ring
// neighbors. For n < 3 the result degenerates to a path.
func NewRing(n int) *Graph {
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(NodeID(i))
	}
	for i := 0; i < n; i++ {
		if n > 1 {
			b.AddEdge(NodeID(i), NodeID((i+1)%n))
		}
	}
	return b.Build()
}

// NewComplete creates a complete graph on n nodes.
func NewComplete(n int) *Graph {
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(NodeID(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			b.AddEdge(NodeID(i), NodeID(j))
		}
	}
	return b.Build()
}

// NewErdosRenyi creates a G(n, p) random graph: every unordered node pair is
// joined independently with probability p.
func NewErdosRenyi(n int, p float64, rng *rand.Rand) *Graph {
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(NodeID(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				b.AddEdge(NodeID(i), NodeID(j))
			}
		}
	}
	return b.Build()
}

// NewWattsStrogatz creates a small-world network: a ring lattice where each
// node is joined to its k nearest neighbors (k is rounded down to even),
// with each lattice edge rewired with probability beta.
func NewWattsStrogatz(n, k int, beta float64, rng *rand.Rand) *Graph {
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(NodeID(i))
	}
	if n < 2 || k < 2 {
		return b.Build()
	}
	k = k - k%2
	if k >= n {
		k = n - 1 - (n-1)%2
	}

	type edge struct{ u, v int }
	lattice := make([]edge, 0, n*k/2)
	present := make(map[edge]bool, n*k/2)
	for i := 0; i < n; i++ {
		for d := 1; d <= k/2; d++ {
			u, v := i, (i+d)%n
			if v < u {
				u, v = v, u
			}
			e := edge{u, v}
			if !present[e] {
				present[e] = true
				lattice = append(lattice, e)
			}
		}
	}

	// Rewire the far endpoint of each lattice edge with probability beta,
	// avoiding self-loops and duplicates.
	for _, e := range lattice {
		if rng.Float64() >= beta {
			b.AddEdge(NodeID(e.u), NodeID(e.v))
			continue
		}
		rewired := false
		for attempt := 0; attempt < n; attempt++ {
			w := rng.Intn(n)
			if w == e.u {
				continue
			}
			u, v := e.u, w
			if v < u {
				u, v = v, u
			}
			if present[edge{u, v}] {
				continue
			}
			present[edge{u, v}] = true
			b.AddEdge(NodeID(u), NodeID(v))
			rewired = true
			break
		}
		if !rewired {
			b.AddEdge(NodeID(e.u), NodeID(e.v))
		}
	}
	return b.Build()
}

// NewBarabasiAlbert creates a scale-free network by preferential attachment:
// starting from a small complete seed, each new node attaches m edges to
// existing nodes with probability proportional to their degree.
func NewBarabasiAlbert(n, m int, rng *rand.Rand) *Graph {
	b := NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(NodeID(i))
	}
	if m < 1 || n <= m {
		return b.Build()
	}

	// Repeated-nodes list: each node appears once per incident edge, so a
	// uniform draw from it is degree-proportional.
	targets := make([]int, 0, 2*m*n)
	for i := 0; i < m; i++ {
		for j := i + 1; j <= m; j++ {
			b.AddEdge(NodeID(i), NodeID(j))
			targets = append(targets, i, j)
		}
	}

	for v := m + 1; v < n; v++ {
		chosen := make(map[int]bool, m)
		for len(chosen) < m {
			w := targets[rng.Intn(len(targets))]
			if w != v {
				chosen[w] = true
			}
		}
		picked := make([]int, 0, m)
		for w := range chosen {
			picked = append(picked, w)
		}
		// Map iteration order is not deterministic; sort before touching
		// the builder so identical seeds give identical graphs.
		for i := 1; i < len(picked); i++ {
			for j := i; j > 0 && picked[j] < picked[j-1]; j-- {
				picked[j], picked[j-1] = picked[j-1], picked[j]
			}
		}
		for _, w := range picked {
			b.AddEdge(NodeID(v), NodeID(w))
			targets = append(targets, v, w)
		}
	}
	return b.Build()
}
