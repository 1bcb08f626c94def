package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/model"
)

// SaveRun records the outcome of one pipeline execution.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if run == nil {
		return ErrNilRun
	}
	if err := validateString(run.ID, "run.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, chosen_k, used_fallback, fallback_reason,
			inertia, event_count, entity_count, stats_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt, run.ChosenK, run.UsedFallback, run.FallbackReason,
		run.Inertia, run.EventCount, run.EntityCount, run.StatsJSON)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetLatestRun returns the most recent run record.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var run model.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, chosen_k, used_fallback, fallback_reason,
		       inertia, event_count, entity_count, stats_json
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&run.ID, &run.CreatedAt, &run.ChosenK, &run.UsedFallback,
		&run.FallbackReason, &run.Inertia, &run.EventCount,
		&run.EntityCount, &run.StatsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no runs recorded", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &run, nil
}
