package persist

import "context"

// migrate creates the necessary database tables
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS seiz_runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		model_type TEXT NOT NULL,
		parameters JSONB NOT NULL,
		num_nodes INTEGER NOT NULL,
		num_edges INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seiz_run_counts (
		run_id TEXT NOT NULL REFERENCES seiz_runs(id) ON DELETE CASCADE,
		step INTEGER NOT NULL,
		susceptible INTEGER NOT NULL,
		exposed INTEGER NOT NULL,
		infected INTEGER NOT NULL,
		skeptic INTEGER NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE INDEX IF NOT EXISTS idx_seiz_runs_scenario ON seiz_runs(scenario);
	CREATE INDEX IF NOT EXISTS idx_seiz_runs_model_type ON seiz_runs(model_type);
	CREATE INDEX IF NOT EXISTS idx_seiz_runs_created_at ON seiz_runs(created_at);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
