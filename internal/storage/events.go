package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/seedscope/seedscope/internal/export"
	"github.com/seedscope/seedscope/internal/model"
)

// ReplaceEvents replaces the entire persisted event set with the given
// run's cleaned events. Events are stored with their position so the
// original row order survives a round trip.
func (s *SQLiteStorage) ReplaceEvents(ctx context.Context, runID string, events []model.CleanedEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (
			run_id, position, hash, entity_name, industry, city, state,
			amount_usd, round_label, investors, date, year, is_outlier
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range events {
		ev := &events[i]

		var date sql.NullString
		var year sql.NullInt64
		if ev.Date != nil {
			date = sql.NullString{String: ev.Date.Format("2006-01-02"), Valid: true}
			y, _ := ev.Year()
			year = sql.NullInt64{Int64: int64(y), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			runID, i, ev.Hash(), ev.EntityName, ev.Industry, ev.City, ev.State,
			ev.AmountUSD, ev.RoundLabel,
			strings.Join(ev.Investors, export.InvestorSeparator),
			date, year, ev.IsOutlier,
		); err != nil {
			return fmt.Errorf("failed to insert event for %s: %w", ev.EntityName, err)
		}
	}

	return tx.Commit()
}

// GetEvents returns the persisted cleaned event set in original order.
func (s *SQLiteStorage) GetEvents(ctx context.Context) ([]model.CleanedEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_name, industry, city, state, amount_usd,
		       round_label, investors, date, is_outlier
		FROM events
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.CleanedEvent
	for rows.Next() {
		var ev model.CleanedEvent
		var investors string
		var date sql.NullString

		if err := rows.Scan(&ev.EntityName, &ev.Industry, &ev.City, &ev.State,
			&ev.AmountUSD, &ev.RoundLabel, &investors, &date, &ev.IsOutlier); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if investors != "" {
			ev.Investors = strings.Split(investors, export.InvestorSeparator)
		}
		if date.Valid {
			parsed, err := time.Parse("2006-01-02", date.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt date %q for %s: %w", date.String, ev.EntityName, err)
			}
			ev.Date = &parsed
		}

		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}
