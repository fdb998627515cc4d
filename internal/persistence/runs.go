package persistence

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveRun stores a completed run and its per-task assignments in one
// transaction. The write is retried on transient lock contention.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *RunRecord) error {
	return withBusyRetry(ctx, func() error {
		return s.saveRunOnce(ctx, run)
	})
}

func (s *SQLiteStore) saveRunOnce(ctx context.Context, run *RunRecord) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (scenario, workers, base_cost, exec_order, elapsed, task_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, run.Scenario, run.Workers, run.BaseCost, run.Order, run.Elapsed, run.TaskCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	for _, a := range run.Assignments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_assignments (run_id, task_id, worker, start_tick, end_tick)
			VALUES (?, ?, ?, ?, ?)
		`, runID, a.TaskID, a.Worker, a.StartTick, a.EndTick)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for task %s: %w", a.TaskID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	run.ID = runID
	return nil
}

// ListRuns returns all stored runs, newest first, without assignments.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, workers, base_cost, exec_order, elapsed, task_count, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run := &RunRecord{}
		if err := rows.Scan(&run.ID, &run.Scenario, &run.Workers, &run.BaseCost,
			&run.Order, &run.Elapsed, &run.TaskCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastRun returns the most recent run for a scenario, including its
// assignments, or sql.ErrNoRows wrapped if the scenario has none.
func (s *SQLiteStore) LastRun(ctx context.Context, scenario string) (*RunRecord, error) {
	run := &RunRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, workers, base_cost, exec_order, elapsed, task_count, created_at
		FROM runs
		WHERE scenario = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, scenario).Scan(&run.ID, &run.Scenario, &run.Workers, &run.BaseCost,
		&run.Order, &run.Elapsed, &run.TaskCount, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load last run for %q: %w", scenario, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, worker, start_tick, end_tick
		FROM run_assignments
		WHERE run_id = ?
		ORDER BY start_tick, worker
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.TaskID, &a.Worker, &a.StartTick, &a.EndTick); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		run.Assignments = append(run.Assignments, a)
	}
	return run, rows.Err()
}
