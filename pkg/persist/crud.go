package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// StoredRun is a run record with its storage identity.
type StoredRun struct {
	ID        string
	Scenario  string
	CreatedAt time.Time
	Record    seiz.RunRecord
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID        string
	Scenario  string
	ModelType string
	NumNodes  int
	Steps     int
	CreatedAt time.Time
}

// SaveRun stores a completed run and its per-step counts, returning the
// generated run ID.
func (s *Store) SaveRun(ctx context.Context, scenario string, record *seiz.RunRecord) (string, error) {
	paramsJSON, err := json.Marshal(record.Parameters)
	if err != nil {
		return "", fmt.Errorf("failed to marshal parameters: %w", err)
	}

	id := uuid.New().String()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO seiz_runs (id, scenario, model_type, parameters, num_nodes, num_edges, steps, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		id,
		scenario,
		record.ModelType,
		paramsJSON,
		record.NetworkInfo.NumNodes,
		record.NetworkInfo.NumEdges,
		len(record.History),
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	countsQuery := `
		INSERT INTO seiz_run_counts (run_id, step, susceptible, exposed, infected, skeptic)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, snap := range record.History {
		if _, err := tx.Exec(ctx, countsQuery, id, snap.Step, snap.S, snap.E, snap.I, snap.Z); err != nil {
			return "", fmt.Errorf("failed to save step counts: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// GetRun retrieves a run by ID, including its history.
func (s *Store) GetRun(ctx context.Context, id string) (*StoredRun, error) {
	query := `
		SELECT id, scenario, model_type, parameters, num_nodes, num_edges, created_at
		FROM seiz_runs
		WHERE id = $1
	`

	run := &StoredRun{}
	var paramsJSON []byte

	err := s.pool.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Scenario,
		&run.Record.ModelType,
		&paramsJSON,
		&run.Record.NetworkInfo.NumNodes,
		&run.Record.NetworkInfo.NumEdges,
		&run.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := json.Unmarshal(paramsJSON, &run.Record.Parameters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	countsQuery := `
		SELECT step, susceptible, exposed, infected, skeptic
		FROM seiz_run_counts
		WHERE run_id = $1
		ORDER BY step
	`

	rows, err := s.pool.Query(ctx, countsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var snap seiz.Snapshot
		if err := rows.Scan(&snap.Step, &snap.S, &snap.E, &snap.I, &snap.Z); err != nil {
			return nil, fmt.Errorf("failed to scan step counts: %w", err)
		}
		run.Record.History = append(run.Record.History, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run history: %w", err)
	}

	return run, nil
}

// ListRuns returns summaries of stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	query := `
		SELECT id, scenario, model_type, num_nodes, steps, created_at
		FROM seiz_runs
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Scenario, &r.ModelType, &r.NumNodes, &r.Steps, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its history.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM seiz_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}
