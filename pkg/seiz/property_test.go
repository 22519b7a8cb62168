package seiz

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/mfalcone/seizgraph/pkg/graph"
)

// TestSimulationInvariants uses property-based testing to verify the
// invariants that must hold for any parameterization of any variant.
func TestSimulationInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	buildModel := func(variant int, g *graph.Graph) Model {
		switch variant % 3 {
		case 0:
			return NewBaseline(g, scenarioParams())
		case 1:
			return NewModerator(g, moderatorParams())
		default:
			return NewSmartModerator(g, smartParams())
		}
	}

	// Property 1: the population is conserved across every snapshot of a
	// run, for every variant.
	properties.Property("population conserved across runs", prop.ForAll(
		func(n int, variant int, seed int64) bool {
			g := graph.NewErdosRenyi(n, 0.2, rand.New(rand.NewSource(seed)))
			m := buildModel(variant, g)
			m.InitializeStates(0.1, 0.1, Seed(seed))

			for _, snap := range m.Run(10) {
				if snap.Total() != n {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 60),
		gen.IntRange(0, 2),
		gen.Int64(),
	))

	// Property 2: Run(k) always yields k+1 records with step indices 0..k.
	properties.Property("history has steps+1 ordered records", prop.ForAll(
		func(steps int, variant int, seed int64) bool {
			g := graph.NewRing(20)
			m := buildModel(variant, g)
			m.InitializeStates(0.1, 0.1, Seed(seed))

			history := m.Run(steps)
			if len(history) != steps+1 {
				return false
			}
			for i, snap := range history {
				if snap.Step != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 2),
		gen.Int64(),
	))

	// Property 3: the initial infected count is exactly floor(n * frac).
	properties.Property("initial infected count is floored", prop.ForAll(
		func(n int, fracPct int, seed int64) bool {
			frac := float64(fracPct) / 100.0
			g := graph.NewRing(n)
			m := NewBaseline(g, scenarioParams())
			m.InitializeStates(frac, 0, Seed(seed))

			want := int(math.Floor(float64(n) * frac))
			return m.CountStates()[Infected] == want
		},
		gen.IntRange(0, 200),
		gen.IntRange(0, 100),
		gen.Int64(),
	))

	// Property 4: identical seeds give identical assignments.
	properties.Property("seeded initialization is reproducible", prop.ForAll(
		func(n int, seed int64, variant int) bool {
			g := graph.NewErdosRenyi(n, 0.3, rand.New(rand.NewSource(seed)))

			m1 := buildModel(variant, g)
			m1.InitializeStates(0.2, 0.2, Seed(seed))
			m2 := buildModel(variant, g)
			m2.InitializeStates(0.2, 0.2, Seed(seed))

			s1, s2 := m1.GetStates(), m2.GetStates()
			for id, st := range s1 {
				if s2[id] != st {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.Int64(),
		gen.IntRange(0, 2),
	))

	// Property 5: toxicity is the trait mean and stays within [0, 1].
	properties.Property("toxicity bounded and equal to trait mean", prop.ForAll(
		func(n int, seed int64) bool {
			g := graph.NewRing(n)
			m := NewSmartModerator(g, smartParams())
			m.InitializeStates(0.3, 0.1, Seed(seed))

			for _, id := range g.Nodes() {
				tox := m.ComputeToxicity(id)
				if tox < 0 || tox > 1 {
					return false
				}
				p := m.store.Profile(id)
				if math.Abs(tox-(p[0]+p[1]+p[2])/3.0) > 1e-15 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
