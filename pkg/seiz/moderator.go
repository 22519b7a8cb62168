package seiz

import "github.com/mfalcone/seizgraph/pkg/graph"

// ModeratorModel is the SEIZ model with a basic moderator that can pull
// infected agents back to Susceptible.
//
// Its update discipline differs from the baseline on purpose: each
// susceptible (or exposed) agent scans its neighbors in order and reacts to
// the FIRST infected or skeptic neighbor that passes the contact draw,
// rather than aggregating independent proposals from all neighbors. The
// scan-and-stop policy is preserved from the reference model exactly; do
// not normalize it to the baseline's aggregation.
type ModeratorModel struct {
	*core
	params ModeratorParams
}

// NewModerator creates a basic-moderator SEIZ model on the given network.
// All parameters are treated directly as per-step probabilities; unlike the
// baseline, no rate conversion is applied.
func NewModerator(g *graph.Graph, params ModeratorParams) *ModeratorModel {
	m := &ModeratorModel{
		core:   newCore(g, ModelModerator, params.toMap(), false),
		params: params,
	}
	m.core.engine = m
	return m
}

// step evaluates every node once against the pre-step configuration.
// Transitions are buffered into a side table and applied only after the
// full pass, so no node observes another node's same-step update.
func (m *ModeratorModel) step() {
	newStates := make(map[graph.NodeID]State)

	for _, node := range m.g.Nodes() {
		switch m.store.State(node) {
		case Susceptible:
			// First matching neighbor wins; scanning stops on contact.
			for _, nb := range m.g.Neighbors(node) {
				nbState := m.store.State(nb)
				if nbState == Infected && m.rng.Float64() < m.params.Beta {
					if m.rng.Float64() < m.params.P {
						newStates[node] = Infected
					} else {
						newStates[node] = Exposed
					}
					break
				}
				if nbState == Skeptic && m.rng.Float64() < m.params.B {
					if m.rng.Float64() < m.params.L {
						newStates[node] = Skeptic
					} else {
						newStates[node] = Exposed
					}
					break
				}
			}

		case Exposed:
			if m.rng.Float64() < m.params.Epsilon {
				newStates[node] = Infected
				break
			}
			for _, nb := range m.g.Neighbors(node) {
				if m.store.State(nb) == Infected && m.rng.Float64() < m.params.Rho {
					newStates[node] = Infected
					break
				}
			}

		case Infected:
			// Moderator intervention; a failed success-draw leaves the
			// agent infected.
			if m.rng.Float64() < m.params.Mu {
				if m.rng.Float64() < m.params.M {
					newStates[node] = Susceptible
				}
			}
		}
	}

	for _, node := range m.g.Nodes() {
		if st, ok := newStates[node]; ok {
			m.store.SetState(node, st)
		}
	}
}
