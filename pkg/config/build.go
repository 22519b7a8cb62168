package config

import (
	"fmt"
	"math/rand"

	"github.com/mfalcone/seizgraph/pkg/graph"
	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// BuildNetwork generates the scenario's network. Generation uses its own
// seeded source so the topology is reproducible independently of the run
// seed.
func (s *Scenario) BuildNetwork() (*graph.Graph, error) {
	rng := rand.New(rand.NewSource(s.Network.Seed))
	n := s.Network.Nodes

	switch s.Network.Generator {
	case "ring":
		return graph.NewRing(n), nil
	case "complete":
		return graph.NewComplete(n), nil
	case "erdos-renyi":
		return graph.NewErdosRenyi(n, s.Network.EdgeProb, rng), nil
	case "watts-strogatz":
		return graph.NewWattsStrogatz(n, s.Network.Neighbors, s.Network.Rewire, rng), nil
	case "barabasi-albert":
		return graph.NewBarabasiAlbert(n, s.Network.Attachment, rng), nil
	}
	return nil, fmt.Errorf("unknown network generator %q", s.Network.Generator)
}

// BuildModel constructs the scenario's model variant on the given network.
func (s *Scenario) BuildModel(g *graph.Graph) (seiz.Model, error) {
	p := s.Model.Parameters
	switch s.Model.Type {
	case seiz.ModelBaseline:
		return seiz.NewBaseline(g, seiz.BaselineParams{
			Beta: p["beta"], B: p["b"], Rho: p["rho"], Eps: p["eps"],
			P: p["p"], L: p["l"], Dt: p["dt"],
		}), nil
	case seiz.ModelModerator:
		return seiz.NewModerator(g, seiz.ModeratorParams{
			Beta: p["beta"], B: p["b"], Rho: p["rho"], P: p["p"],
			Epsilon: p["epsilon"], L: p["l"], Mu: p["mu"], M: p["m"],
		}), nil
	case seiz.ModelSmartModerator:
		return seiz.NewSmartModerator(g, seiz.SmartModeratorParams{
			Beta: p["beta"], B: p["b"], Rho: p["rho"], P: p["p"],
			Epsilon: p["epsilon"], L: p["l"], N: int(p["n"]),
			Theta: int(p["theta"]), T: p["T"], Eta: p["eta"], Lambda: p["lambd"],
		}), nil
	}
	return nil, fmt.Errorf("unknown model type %q", s.Model.Type)
}
