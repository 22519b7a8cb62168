package seiz

import (
	"math/rand"

	"github.com/mfalcone/seizgraph/pkg/graph"
)

// Model is the uniform capability shared by the three SEIZ variants. The
// driver, exporters and renderers work against this interface; the variants
// differ only in their per-step update discipline.
//
// Models are not safe for concurrent use: each instance owns its store and
// random source exclusively, and every operation runs to completion
// synchronously.
type Model interface {
	// InitializeStates resets every agent and seeds the infected and
	// skeptic populations per the fractions. A non-nil seed replaces the
	// model's random source, making the assignment reproducible.
	InitializeStates(infectedFrac, skepticFrac float64, seed *int64)
	// Step advances the simulation by exactly one discrete time unit.
	Step()
	// GetStates returns the live node -> state mapping.
	GetStates() map[graph.NodeID]State
	// CountStates tallies the current population per state; all four state
	// keys are always present.
	CountStates() map[State]int
	// Run executes the given number of steps, rebuilding the history from
	// scratch: one snapshot before each step plus a final snapshot, so
	// Run(k) yields k+1 records.
	Run(steps int) []Snapshot
	// History returns the snapshots collected by the most recent Run.
	History() []Snapshot
	// Export assembles the serialized run record, or ErrNoHistory if Run
	// has not been called.
	Export() (*RunRecord, error)
	// Graph returns the immutable network the model simulates on.
	Graph() *graph.Graph
	// ModelType returns the variant tag used in exports.
	ModelType() string
	// Params returns the full named parameter set.
	Params() map[string]float64
}

// Snapshot records the aggregate state counts at one step index.
type Snapshot struct {
	Step int `json:"step"`
	S    int `json:"S"`
	E    int `json:"E"`
	I    int `json:"I"`
	Z    int `json:"Z"`
}

// Counts returns the snapshot as a state -> count mapping.
func (s Snapshot) Counts() map[State]int {
	return map[State]int{
		Susceptible: s.S,
		Exposed:     s.E,
		Infected:    s.I,
		Skeptic:     s.Z,
	}
}

// Total returns the population recorded in the snapshot.
func (s Snapshot) Total() int {
	return s.S + s.E + s.I + s.Z
}

// stepper is the variant-specific step strategy plugged into the core.
type stepper interface {
	step()
}

// core carries the state shared by all variants: the network, the owned
// random source, the agent store, the run history, and the strategy hook.
type core struct {
	g         *graph.Graph
	rng       *rand.Rand
	store     *AgentStore
	history   []Snapshot
	engine    stepper
	modelType string
	params    map[string]float64
}

func newCore(g *graph.Graph, modelType string, params map[string]float64, trackProfiles bool) *core {
	rng := newTimeSeededRand()
	return &core{
		g:         g,
		rng:       rng,
		store:     NewAgentStore(g, trackProfiles, rng),
		modelType: modelType,
		params:    params,
	}
}

func (c *core) InitializeStates(infectedFrac, skepticFrac float64, seed *int64) {
	if seed != nil {
		c.rng = rand.New(rand.NewSource(*seed))
	}
	c.store.Initialize(c.g, infectedFrac, skepticFrac, c.rng)
}

func (c *core) Step() {
	c.engine.step()
}

func (c *core) GetStates() map[graph.NodeID]State {
	return c.store.States()
}

func (c *core) CountStates() map[State]int {
	return c.store.Counts()
}

func (c *core) Run(steps int) []Snapshot {
	c.history = c.history[:0]
	for step := 0; step < steps; step++ {
		c.history = append(c.history, c.snapshot(step))
		c.engine.step()
	}
	c.history = append(c.history, c.snapshot(steps))

	out := make([]Snapshot, len(c.history))
	copy(out, c.history)
	return out
}

func (c *core) History() []Snapshot {
	out := make([]Snapshot, len(c.history))
	copy(out, c.history)
	return out
}

func (c *core) Graph() *graph.Graph {
	return c.g
}

func (c *core) ModelType() string {
	return c.modelType
}

func (c *core) Params() map[string]float64 {
	out := make(map[string]float64, len(c.params))
	for k, v := range c.params {
		out[k] = v
	}
	return out
}

func (c *core) snapshot(step int) Snapshot {
	counts := c.store.Counts()
	return Snapshot{
		Step: step,
		S:    counts[Susceptible],
		E:    counts[Exposed],
		I:    counts[Infected],
		Z:    counts[Skeptic],
	}
}
