package seiz

import "errors"

// ErrNoHistory is returned by Export when the model has not been run yet.
// Exporting an empty record silently would be indistinguishable from a
// zero-length run, so the condition surfaces as an error instead.
var ErrNoHistory = errors.New("no history to export: run the simulation first")

// NetworkInfo summarizes the simulated network for the export record.
type NetworkInfo struct {
	NumNodes int `json:"num_nodes"`
	NumEdges int `json:"num_edges"`
}

// RunRecord is the serialized form of a completed run, consumed by the
// persistence collaborators. Field order is part of the contract: model
// type, parameters, network summary, history.
type RunRecord struct {
	ModelType   string             `json:"model_type"`
	Parameters  map[string]float64 `json:"parameters"`
	NetworkInfo NetworkInfo        `json:"network_info"`
	History     []Snapshot         `json:"history"`
}

// Export assembles the run record for the most recent Run. It fails with
// ErrNoHistory when called before any run.
func (c *core) Export() (*RunRecord, error) {
	if len(c.history) == 0 {
		return nil, ErrNoHistory
	}
	return &RunRecord{
		ModelType:  c.modelType,
		Parameters: c.Params(),
		NetworkInfo: NetworkInfo{
			NumNodes: c.g.NumNodes(),
			NumEdges: c.g.NumEdges(),
		},
		History: c.History(),
	}, nil
}
