package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// Integration tests require a reachable PostgreSQL instance, e.g.
//
//	SEIZGRAPH_TEST_DATABASE_URL=postgres://localhost/seizgraph_test go test ./pkg/persist
func testStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("SEIZGRAPH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SEIZGRAPH_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewStore(ctx, url)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord() *seiz.RunRecord {
	return &seiz.RunRecord{
		ModelType:   "seiz",
		Parameters:  map[string]float64{"beta": 0.3, "b": 0.2, "rho": 0.2, "eps": 0.1, "p": 0.5, "l": 0.4, "dt": 1.0},
		NetworkInfo: seiz.NetworkInfo{NumNodes: 100, NumEdges: 300},
		History: []seiz.Snapshot{
			{Step: 0, S: 90, E: 0, I: 5, Z: 5},
			{Step: 1, S: 85, E: 4, I: 6, Z: 5},
			{Step: 2, S: 81, E: 6, I: 8, Z: 5},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, "integration", testRecord())
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	defer store.DeleteRun(ctx, id)

	got, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Scenario != "integration" {
		t.Errorf("scenario = %q", got.Scenario)
	}
	if got.Record.ModelType != "seiz" {
		t.Errorf("model type = %q", got.Record.ModelType)
	}
	if got.Record.Parameters["beta"] != 0.3 {
		t.Errorf("beta = %v", got.Record.Parameters["beta"])
	}
	if len(got.Record.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(got.Record.History))
	}
	if got.Record.History[2].I != 8 {
		t.Errorf("final infected = %d, want 8", got.Record.History[2].I)
	}
}

func TestListRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, "listing", testRecord())
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	defer store.DeleteRun(ctx, id)

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}

	found := false
	for _, r := range runs {
		if r.ID == id {
			found = true
			if r.Steps != 3 {
				t.Errorf("steps = %d, want 3", r.Steps)
			}
		}
	}
	if !found {
		t.Error("saved run missing from listing")
	}
}

func TestDeleteRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, "deletion", testRecord())
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if err := store.DeleteRun(ctx, id); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	if _, err := store.GetRun(ctx, id); err == nil {
		t.Error("expected error getting deleted run")
	}

	if err := store.DeleteRun(ctx, id); err == nil {
		t.Error("expected error deleting run twice")
	}
}
