package seiz

import "github.com/mfalcone/seizgraph/pkg/graph"

// Model type tags used in exports and scenario files.
const (
	ModelBaseline       = "seiz"
	ModelModerator      = "seiz-bm"
	ModelSmartModerator = "seiz-sm"
)

// BaselineModel is the baseline SEIZ model. Updates are synchronous: every
// transition proposed during a step is evaluated against the configuration
// at the start of that step, then committed together, with conflicting
// proposals for the same node resolved by a uniform random choice.
type BaselineModel struct {
	*core
	params BaselineParams

	// Per-step probabilities, converted once from rates at construction.
	probContactI float64
	probContactZ float64
	probEtoI     float64
	probItoE     float64
}

// NewBaseline creates a baseline SEIZ model on the given network. Parameter
// values are not range-checked.
func NewBaseline(g *graph.Graph, params BaselineParams) *BaselineModel {
	m := &BaselineModel{
		core:         newCore(g, ModelBaseline, params.toMap(), false),
		params:       params,
		probContactI: RateToProb(params.Beta, params.Dt),
		probContactZ: RateToProb(params.B, params.Dt),
		probEtoI:     RateToProb(params.Rho, params.Dt),
		probItoE:     RateToProb(params.Eps, params.Dt),
	}
	m.core.engine = m
	return m
}

// step advances one generation. Proposal generation never reads a state
// written in the same step; commits happen after the full pass.
func (m *BaselineModel) step() {
	proposals := make(map[graph.NodeID][]State)
	nodes := m.g.Nodes()

	// Contact-driven proposals: infected and skeptic agents independently
	// test every susceptible neighbor.
	for _, node := range nodes {
		switch m.store.State(node) {
		case Infected:
			for _, nb := range m.g.Neighbors(node) {
				if m.store.State(nb) != Susceptible {
					continue
				}
				if m.rng.Float64() < m.probContactI {
					if m.rng.Float64() < m.params.P {
						proposals[nb] = append(proposals[nb], Infected)
					} else {
						proposals[nb] = append(proposals[nb], Exposed)
					}
				}
			}
		case Skeptic:
			for _, nb := range m.g.Neighbors(node) {
				if m.store.State(nb) != Susceptible {
					continue
				}
				if m.rng.Float64() < m.probContactZ {
					if m.rng.Float64() < m.params.L {
						proposals[nb] = append(proposals[nb], Skeptic)
					} else {
						proposals[nb] = append(proposals[nb], Exposed)
					}
				}
			}
		}
	}

	// Internal progressions E -> I and I -> E.
	for _, node := range nodes {
		switch m.store.State(node) {
		case Exposed:
			if m.rng.Float64() < m.probEtoI {
				proposals[node] = append(proposals[node], Infected)
			}
		case Infected:
			if m.rng.Float64() < m.probItoE {
				proposals[node] = append(proposals[node], Exposed)
			}
		}
	}

	// Synchronous commit. A node with several competing proposals takes one
	// uniformly at random; nodes without proposals keep their state.
	for _, node := range nodes {
		plist := proposals[node]
		if len(plist) == 0 {
			continue
		}
		m.store.SetState(node, plist[m.rng.Intn(len(plist))])
	}
}
