package seiz

import (
	"math"
	"math/rand"

	"github.com/mfalcone/seizgraph/pkg/graph"
)

// AgentStore owns all mutable per-agent simulation state, kept in side
// tables keyed by node ID so the network itself stays immutable. The
// profile and counter tables exist only for the smart-moderator variant.
type AgentStore struct {
	states map[graph.NodeID]State

	trackProfiles bool
	profiles      map[graph.NodeID][3]float64
	toxicMessages map[graph.NodeID]int
	activity      map[graph.NodeID]int
}

// NewAgentStore creates a store with every agent Susceptible. When
// trackProfiles is set, each agent also carries three latent trait values
// in [0,1] plus toxic-message and activity counters.
func NewAgentStore(g *graph.Graph, trackProfiles bool, rng *rand.Rand) *AgentStore {
	s := &AgentStore{
		states:        make(map[graph.NodeID]State, g.NumNodes()),
		trackProfiles: trackProfiles,
	}
	if trackProfiles {
		s.profiles = make(map[graph.NodeID][3]float64, g.NumNodes())
		s.toxicMessages = make(map[graph.NodeID]int, g.NumNodes())
		s.activity = make(map[graph.NodeID]int, g.NumNodes())
	}
	for _, id := range g.Nodes() {
		s.states[id] = Susceptible
		if trackProfiles {
			s.profiles[id] = drawProfile(rng)
			s.toxicMessages[id] = 0
			s.activity[id] = 0
		}
	}
	return s
}

func drawProfile(rng *rand.Rand) [3]float64 {
	return [3]float64{rng.Float64(), rng.Float64(), rng.Float64()}
}

// Initialize resets every agent and seeds the infected and skeptic
// populations. Nodes are visited through a uniformly random permutation;
// the first floor(n*infectedFrac) become Infected and the following
// floor(n*skepticFrac) become Skeptic. If the two fractions together exceed
// one, the skeptic range silently stops at the node count — that overshoot
// is accepted, not an error. An empty graph is a no-op.
func (s *AgentStore) Initialize(g *graph.Graph, infectedFrac, skepticFrac float64, rng *rand.Rand) {
	nodes := g.Nodes()
	n := len(nodes)

	perm := rng.Perm(n)

	for _, id := range nodes {
		s.states[id] = Susceptible
		if s.trackProfiles {
			s.profiles[id] = drawProfile(rng)
			s.toxicMessages[id] = 0
			s.activity[id] = 0
		}
	}

	numInfected := int(math.Floor(float64(n) * infectedFrac))
	numSkeptic := int(math.Floor(float64(n) * skepticFrac))

	for i := 0; i < numInfected && i < n; i++ {
		s.states[nodes[perm[i]]] = Infected
	}
	for i := numInfected; i < numInfected+numSkeptic && i < n; i++ {
		s.states[nodes[perm[i]]] = Skeptic
	}
}

// State returns the current state of an agent.
func (s *AgentStore) State(id graph.NodeID) State {
	return s.states[id]
}

// SetState overwrites the current state of an agent.
func (s *AgentStore) SetState(id graph.NodeID, st State) {
	s.states[id] = st
}

// States returns a copy of the full node -> state mapping.
func (s *AgentStore) States() map[graph.NodeID]State {
	out := make(map[graph.NodeID]State, len(s.states))
	for id, st := range s.states {
		out[id] = st
	}
	return out
}

// Counts tallies the current population per state. All four state keys are
// always present, zero-filled when empty — callers depend on that.
func (s *AgentStore) Counts() map[State]int {
	counts := map[State]int{
		Susceptible: 0,
		Exposed:     0,
		Infected:    0,
		Skeptic:     0,
	}
	for _, st := range s.states {
		counts[st]++
	}
	return counts
}

// Profile returns the agent's three trait values. Zero-valued for stores
// constructed without profile tracking.
func (s *AgentStore) Profile(id graph.NodeID) [3]float64 {
	return s.profiles[id]
}

// ToxicMessages returns the agent's current toxic-message count.
func (s *AgentStore) ToxicMessages(id graph.NodeID) int {
	return s.toxicMessages[id]
}

// Activity returns how many messages the agent has sent this run.
func (s *AgentStore) Activity(id graph.NodeID) int {
	return s.activity[id]
}
