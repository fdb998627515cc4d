package persistence

import (
	"context"
)

// initSchema creates all required tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario TEXT NOT NULL,
		workers INTEGER NOT NULL,
		base_cost INTEGER NOT NULL,
		exec_order TEXT NOT NULL,
		elapsed INTEGER NOT NULL,
		task_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario_created
		ON runs(scenario, created_at);

	CREATE TABLE IF NOT EXISTS run_assignments (
		run_id INTEGER NOT NULL,
		task_id TEXT NOT NULL,
		worker INTEGER NOT NULL,
		start_tick INTEGER NOT NULL,
		end_tick INTEGER NOT NULL,
		PRIMARY KEY (run_id, task_id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_run_assignments_run_id ON run_assignments(run_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
