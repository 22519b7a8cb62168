package seiz

import "github.com/mfalcone/seizgraph/pkg/graph"

// SmartModeratorModel is the SEIZ model with a profile-driven moderator.
// Each agent carries three latent trait values; their mean is the agent's
// toxicity score. Infected agents whose toxicity crosses the threshold T
// accumulate toxic messages, and once the count reaches Theta the moderator
// intervenes with a strength discounted by the agent's own toxicity.
//
// A step runs three phases in order — message, spread, internal — each
// mutating the live store immediately, so later phases (and later nodes in
// the same phase) observe earlier same-step effects. This sequential
// discipline is deliberate and differs from the baseline's synchronous one.
type SmartModeratorModel struct {
	*core
	params SmartModeratorParams
}

// NewSmartModerator creates a smart-moderator SEIZ model on the given
// network. Parameters are per-step probabilities; no rate conversion.
func NewSmartModerator(g *graph.Graph, params SmartModeratorParams) *SmartModeratorModel {
	m := &SmartModeratorModel{
		core:   newCore(g, ModelSmartModerator, params.toMap(), true),
		params: params,
	}
	m.core.engine = m
	return m
}

// ComputeToxicity returns the agent's toxicity score: the arithmetic mean
// of its three trait values, always in [0, 1].
func (m *SmartModeratorModel) ComputeToxicity(id graph.NodeID) float64 {
	p := m.store.Profile(id)
	return (p[0] + p[1] + p[2]) / 3.0
}

func (m *SmartModeratorModel) step() {
	toxicSenders := m.sendMessages()
	m.spreadToxicity(toxicSenders)
	m.internalTransitions()
}

// sendMessages samples N distinct senders (or every node if N exceeds the
// population), bumps their activity, and flags infected senders whose
// toxicity reaches the threshold. Flagged senders face the moderator
// immediately, within this phase.
func (m *SmartModeratorModel) sendMessages() []graph.NodeID {
	nodes := m.g.Nodes()
	count := m.params.N
	if count > len(nodes) {
		count = len(nodes)
	}
	if count < 0 {
		count = 0
	}

	// Partial Fisher-Yates: the first count entries are a uniform sample
	// without replacement.
	for i := 0; i < count; i++ {
		j := i + m.rng.Intn(len(nodes)-i)
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	senders := nodes[:count]

	var toxicSenders []graph.NodeID
	for _, sender := range senders {
		m.store.activity[sender]++

		if m.store.State(sender) != Infected {
			continue
		}
		toxicity := m.ComputeToxicity(sender)
		if toxicity >= m.params.T {
			m.store.toxicMessages[sender]++
			toxicSenders = append(toxicSenders, sender)
			m.moderatorIntervention(sender, toxicity)
		}
	}
	return toxicSenders
}

// moderatorIntervention fires once the agent's toxic-message count reaches
// Theta. The exposure branch is discounted by the agent's toxicity; if it
// fails, a second, independent draw may turn the agent skeptic instead.
// Either outcome resets the toxic-message counter.
func (m *SmartModeratorModel) moderatorIntervention(id graph.NodeID, toxicity float64) {
	if m.store.toxicMessages[id] < m.params.Theta {
		return
	}
	effectiveEta := m.params.Eta * (1 - toxicity)

	if m.rng.Float64() < effectiveEta {
		m.store.SetState(id, Exposed)
		m.store.toxicMessages[id] = 0
	} else if m.rng.Float64() < m.params.Lambda {
		m.store.SetState(id, Skeptic)
		m.store.toxicMessages[id] = 0
	}
}

// spreadToxicity lets each toxic sender's message act on its neighbors:
// susceptible neighbors may become infected or exposed, exposed neighbors
// may progress to infected. Mutations land immediately.
func (m *SmartModeratorModel) spreadToxicity(toxicSenders []graph.NodeID) {
	for _, sender := range toxicSenders {
		for _, nb := range m.g.Neighbors(sender) {
			switch m.store.State(nb) {
			case Susceptible:
				if m.rng.Float64() < m.params.Beta {
					if m.rng.Float64() < m.params.P {
						m.store.SetState(nb, Infected)
					} else {
						m.store.SetState(nb, Exposed)
					}
				}
			case Exposed:
				if m.rng.Float64() < m.params.Rho {
					m.store.SetState(nb, Infected)
				}
			}
		}
	}
}

// internalTransitions moves exposed agents forward: incubation to Infected,
// or, failing that, defection to Skeptic.
func (m *SmartModeratorModel) internalTransitions() {
	for _, node := range m.g.Nodes() {
		if m.store.State(node) != Exposed {
			continue
		}
		if m.rng.Float64() < m.params.Epsilon {
			m.store.SetState(node, Infected)
		} else if m.rng.Float64() < m.params.Lambda {
			m.store.SetState(node, Skeptic)
		}
	}
}
