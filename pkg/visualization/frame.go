package visualization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfalcone/seizgraph/pkg/graph"
	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// State colors shared by the TUI and exported frames.
const (
	ColorSusceptible = "#5FAFFF"
	ColorExposed     = "#FFD75F"
	ColorInfected    = "#FF5F5F"
	ColorSkeptic     = "#5FFF87"
)

// StateColor returns the display color for a compartment.
func StateColor(s seiz.State) string {
	switch s {
	case seiz.Susceptible:
		return ColorSusceptible
	case seiz.Exposed:
		return ColorExposed
	case seiz.Infected:
		return ColorInfected
	case seiz.Skeptic:
		return ColorSkeptic
	default:
		return "#FFFFFF"
	}
}

// NodeView is one node placed on the canvas with its current state.
type NodeView struct {
	ID    graph.NodeID `json:"id"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	State seiz.State   `json:"state"`
	Color string       `json:"color"`
}

// EdgeView is one rendered edge.
type EdgeView struct {
	From graph.NodeID `json:"from"`
	To   graph.NodeID `json:"to"`
}

// Frame is a fully positioned snapshot of the network at one step.
type Frame struct {
	Step  int        `json:"step"`
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// BuildFrame combines a layout with the model's current states. Node
// order follows the graph's sorted node order.
func BuildFrame(g *graph.Graph, positions map[graph.NodeID]Position, states map[graph.NodeID]seiz.State, step int) Frame {
	frame := Frame{Step: step}

	for _, id := range g.Nodes() {
		pos := positions[id]
		state := states[id]
		frame.Nodes = append(frame.Nodes, NodeView{
			ID:    id,
			X:     pos.X,
			Y:     pos.Y,
			State: state,
			Color: StateColor(state),
		})
	}

	for _, e := range g.Edges() {
		frame.Edges = append(frame.Edges, EdgeView{From: e[0], To: e[1]})
	}

	return frame
}

// WriteFrame writes a frame to path as JSON.
func WriteFrame(path string, frame Frame) error {
	data, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create frame directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}
