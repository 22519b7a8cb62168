package seiz

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/mfalcone/seizgraph/pkg/graph"
)

func allModels(g *graph.Graph) map[string]Model {
	return map[string]Model{
		ModelBaseline:       NewBaseline(g, scenarioParams()),
		ModelModerator:      NewModerator(g, moderatorParams()),
		ModelSmartModerator: NewSmartModerator(g, smartParams()),
	}
}

func TestRunHistoryLength(t *testing.T) {
	g := graph.NewRing(30)
	for name, m := range allModels(g) {
		m.InitializeStates(0.1, 0.1, Seed(1))
		history := m.Run(10)

		if len(history) != 11 {
			t.Errorf("%s: Run(10) returned %d records, want 11", name, len(history))
		}
		for i, snap := range history {
			if snap.Step != i {
				t.Errorf("%s: record %d has step %d", name, i, snap.Step)
			}
		}
	}
}

func TestRunRebuildsHistory(t *testing.T) {
	g := graph.NewRing(20)
	m := NewBaseline(g, scenarioParams())
	m.InitializeStates(0.1, 0, Seed(2))

	m.Run(5)
	second := m.Run(3)

	if len(second) != 4 {
		t.Errorf("second Run(3) returned %d records, want 4 (history not rebuilt)", len(second))
	}
	if len(m.History()) != 4 {
		t.Errorf("History() has %d records after second run, want 4", len(m.History()))
	}
}

func TestRunOnEmptyGraph(t *testing.T) {
	g := graph.Empty()
	for name, m := range allModels(g) {
		m.InitializeStates(0.5, 0.5, Seed(3))
		history := m.Run(5)

		if len(history) != 6 {
			t.Fatalf("%s: Run(5) on empty graph returned %d records, want 6", name, len(history))
		}
		for i, snap := range history {
			if snap.S != 0 || snap.E != 0 || snap.I != 0 || snap.Z != 0 {
				t.Errorf("%s: record %d has non-zero counts: %+v", name, i, snap)
			}
		}
	}
}

func TestCountStatesAllKeys(t *testing.T) {
	g := graph.NewRing(5)
	for name, m := range allModels(g) {
		counts := m.CountStates()
		for _, st := range AllStates() {
			if _, ok := counts[st]; !ok {
				t.Errorf("%s: CountStates missing key %s", name, st)
			}
		}
	}
}

func TestExportBeforeRunFails(t *testing.T) {
	g := graph.NewRing(10)
	for name, m := range allModels(g) {
		_, err := m.Export()
		if !errors.Is(err, ErrNoHistory) {
			t.Errorf("%s: Export before Run returned %v, want ErrNoHistory", name, err)
		}
	}
}

func TestExportRecordContents(t *testing.T) {
	g := graph.NewErdosRenyi(25, 0.2, rand.New(rand.NewSource(5)))
	m := NewBaseline(g, scenarioParams())
	m.InitializeStates(0.2, 0.1, Seed(4))
	m.Run(8)

	rec, err := m.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if rec.ModelType != ModelBaseline {
		t.Errorf("model type = %q, want %q", rec.ModelType, ModelBaseline)
	}
	if rec.NetworkInfo.NumNodes != 25 {
		t.Errorf("num_nodes = %d, want 25", rec.NetworkInfo.NumNodes)
	}
	if rec.NetworkInfo.NumEdges != g.NumEdges() {
		t.Errorf("num_edges = %d, want %d", rec.NetworkInfo.NumEdges, g.NumEdges())
	}
	if len(rec.History) != 9 {
		t.Errorf("history length = %d, want 9", len(rec.History))
	}
	for _, name := range []string{"beta", "b", "rho", "eps", "p", "l", "dt"} {
		if _, ok := rec.Parameters[name]; !ok {
			t.Errorf("parameter %q missing from export", name)
		}
	}
}

// The record's serialized field order is part of the contract consumed by
// external persistence: model type, parameters, network info, history.
func TestExportFieldOrder(t *testing.T) {
	g := graph.NewRing(10)
	m := NewBaseline(g, scenarioParams())
	m.InitializeStates(0.1, 0, Seed(6))
	m.Run(2)

	rec, err := m.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	s := string(data)
	order := []string{`"model_type"`, `"parameters"`, `"network_info"`, `"history"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		if idx < 0 {
			t.Fatalf("key %s missing from export JSON", key)
		}
		if idx < last {
			t.Errorf("key %s out of order in export JSON", key)
		}
		last = idx
	}
}

func TestParamsReturnsCopy(t *testing.T) {
	g := graph.NewRing(5)
	m := NewBaseline(g, scenarioParams())

	p := m.Params()
	p["beta"] = 999

	if m.Params()["beta"] == 999 {
		t.Error("mutating the returned params map leaked into the model")
	}
}

func TestStateHelpers(t *testing.T) {
	if _, err := ParseState("S"); err != nil {
		t.Errorf("ParseState(S) failed: %v", err)
	}
	if _, err := ParseState("Q"); err == nil {
		t.Error("ParseState(Q) should fail")
	}
	if !Infected.Valid() {
		t.Error("Infected should be valid")
	}
	if State("X").Valid() {
		t.Error("X should be invalid")
	}
}
