package seiz

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mfalcone/seizgraph/pkg/graph"
)

func smartParams() SmartModeratorParams {
	return SmartModeratorParams{
		Beta: 0.3, B: 0.2, Rho: 0.2, P: 0.5, Epsilon: 0.1, L: 0.4,
		N: 10, Theta: 3, T: 0.5, Eta: 0.6, Lambda: 0.1,
	}
}

func TestSmartToxicityIsTraitMean(t *testing.T) {
	g := graph.NewRing(20)
	m := NewSmartModerator(g, smartParams())
	m.InitializeStates(0.2, 0.1, Seed(19))

	for _, id := range g.Nodes() {
		p := m.store.Profile(id)
		want := (p[0] + p[1] + p[2]) / 3.0
		got := m.ComputeToxicity(id)
		if math.Abs(got-want) > 1e-15 {
			t.Errorf("node %d: toxicity %v, want %v", id, got, want)
		}
		if got < 0 || got > 1 {
			t.Errorf("node %d: toxicity %v outside [0, 1]", id, got)
		}
	}
}

func TestSmartConservation(t *testing.T) {
	g := graph.NewBarabasiAlbert(60, 3, rand.New(rand.NewSource(23)))
	m := NewSmartModerator(g, smartParams())
	m.InitializeStates(0.1, 0.1, Seed(123))

	for step := 0; step < 25; step++ {
		m.Step()
		total := 0
		for _, c := range m.CountStates() {
			total += c
		}
		if total != 60 {
			t.Fatalf("step %d: population = %d, want 60", step, total)
		}
	}
}

// Every sampled sender bumps its activity counter, infected or not. With N
// at least the population, all counters advance each step.
func TestSmartActivityCounters(t *testing.T) {
	g := graph.NewRing(8)
	params := smartParams()
	params.N = 100 // exceeds population: every node sends
	m := NewSmartModerator(g, params)
	m.InitializeStates(0, 0, Seed(37))

	m.Step()
	m.Step()

	for _, id := range g.Nodes() {
		if got := m.store.Activity(id); got != 2 {
			t.Errorf("node %d: activity = %d, want 2", id, got)
		}
	}
}

// With T=0 every infected sender is toxic; below Theta the counter just
// accumulates.
func TestSmartToxicCounterAccumulates(t *testing.T) {
	g := graph.NewRing(4)
	params := SmartModeratorParams{N: 4, Theta: 100, T: 0, Eta: 1, Lambda: 1}
	m := NewSmartModerator(g, params)
	m.InitializeStates(1.0, 0, Seed(43))

	m.Step()
	m.Step()
	m.Step()

	for _, id := range g.Nodes() {
		if got := m.store.ToxicMessages(id); got != 3 {
			t.Errorf("node %d: toxic messages = %d, want 3", id, got)
		}
	}
}

// Once the counter reaches Theta and a moderation branch fires, the counter
// resets to zero and the agent leaves the Infected state.
func TestSmartInterventionResetsCounter(t *testing.T) {
	b := graph.NewBuilder()
	b.AddNode(0)
	g := b.Build()

	params := SmartModeratorParams{N: 1, Theta: 1, T: 0, Eta: 0, Lambda: 1.0}
	m := NewSmartModerator(g, params)
	m.InitializeStates(1.0, 0, Seed(47))

	m.Step()

	if got := m.GetStates()[0]; got != Skeptic {
		t.Fatalf("state = %s, want Skeptic via lambda branch", got)
	}
	if got := m.store.ToxicMessages(0); got != 0 {
		t.Errorf("toxic messages = %d, want 0 after intervention", got)
	}
}

// When both moderation draws fail the counter is NOT reset: the two checks
// are independent draws, and only a firing branch clears the count.
func TestSmartFailedInterventionKeepsCounter(t *testing.T) {
	b := graph.NewBuilder()
	b.AddNode(0)
	g := b.Build()

	params := SmartModeratorParams{N: 1, Theta: 1, T: 0, Eta: 0, Lambda: 0}
	m := NewSmartModerator(g, params)
	m.InitializeStates(1.0, 0, Seed(53))

	m.Step()
	m.Step()

	if got := m.GetStates()[0]; got != Infected {
		t.Fatalf("state = %s, want still Infected", got)
	}
	if got := m.store.ToxicMessages(0); got != 2 {
		t.Errorf("toxic messages = %d, want 2 accumulated", got)
	}
}

// The eta branch is discounted by the sender's toxicity. An agent with
// maximal traits has effective eta of zero, so with Lambda=0 it can never
// be moderated.
func TestSmartEffectiveEtaDiscount(t *testing.T) {
	b := graph.NewBuilder()
	b.AddNode(0)
	g := b.Build()

	params := SmartModeratorParams{N: 1, Theta: 1, T: 0, Eta: 1.0, Lambda: 0}
	m := NewSmartModerator(g, params)
	m.InitializeStates(1.0, 0, Seed(59))
	m.store.profiles[0] = [3]float64{1, 1, 1}

	for i := 0; i < 10; i++ {
		m.Step()
	}

	if got := m.GetStates()[0]; got != Infected {
		t.Errorf("state = %s, want Infected (effective eta is zero at max toxicity)", got)
	}
}

// Spread phase: neighbors of a toxic sender transition immediately. With
// saturated probabilities a susceptible neighbor must leave S in the same
// step the sender is flagged.
func TestSmartSpreadPhase(t *testing.T) {
	b := graph.NewBuilder()
	b.AddEdge(0, 1)
	g := b.Build()

	params := SmartModeratorParams{Beta: 1.0, P: 1.0, N: 2, Theta: 100, T: 0}
	m := NewSmartModerator(g, params)
	m.InitializeStates(0, 0, Seed(61))
	m.store.SetState(0, Infected)

	m.Step()

	if got := m.GetStates()[1]; got != Infected {
		t.Errorf("neighbor = %s, want Infected via spread phase", got)
	}
}

// Internal phase: with epsilon=1 every exposed agent becomes infected.
func TestSmartInternalPhase(t *testing.T) {
	g := graph.NewRing(10)
	params := SmartModeratorParams{Epsilon: 1.0, N: 0}
	m := NewSmartModerator(g, params)
	m.InitializeStates(0, 0, Seed(67))
	for _, id := range g.Nodes() {
		m.store.SetState(id, Exposed)
	}

	m.Step()

	if got := m.CountStates()[Infected]; got != 10 {
		t.Errorf("infected = %d, want all 10 exposed to progress", got)
	}
}

func TestSmartReproducibleRun(t *testing.T) {
	g := graph.NewErdosRenyi(40, 0.2, rand.New(rand.NewSource(71)))

	m1 := NewSmartModerator(g, smartParams())
	m1.InitializeStates(0.15, 0.1, Seed(6))
	h1 := m1.Run(12)

	m2 := NewSmartModerator(g, smartParams())
	m2.InitializeStates(0.15, 0.1, Seed(6))
	h2 := m2.Run(12)

	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("step %d: %+v vs %+v with identical seeds", i, h1[i], h2[i])
		}
	}
}
