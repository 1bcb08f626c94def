// Package resolve turns the normalizer's per-row output into the final
// cleaned event set: it drops rows without an entity, removes duplicate
// events, applies the missing-value policy and flags outliers.
package resolve

import (
	"log/slog"

	"github.com/seedscope/seedscope/internal/model"
	"github.com/seedscope/seedscope/internal/normalize"
)

// Stats aggregates the row-level data-quality counts of one run. These
// are diagnostics for the caller, never fatal.
type Stats struct {
	TotalRows           int
	DroppedNoEntity     int
	Duplicates          int
	ImputedAmounts      int
	ImputedCategoricals int
	AmountParseFailures int
	DateParseFailures   int
	Outliers            int
}

// Resolve deduplicates and imputes the normalized rows. Two rows with
// the same (entity, date, amount) are the same event; the first
// occurrence in input order is kept. Rows with no entity name are
// dropped unconditionally since entity identity cannot be imputed.
func Resolve(results []normalize.Result) ([]model.CleanedEvent, Stats) {
	stats := Stats{TotalRows: len(results)}
	seen := make(map[string]struct{}, len(results))
	events := make([]model.CleanedEvent, 0, len(results))

	for _, res := range results {
		if res.AmountParseFailed {
			stats.AmountParseFailures++
		}
		if res.DateParseFailed {
			stats.DateParseFailures++
		}

		ev := res.Event
		if ev.EntityName == "" {
			stats.DroppedNoEntity++
			continue
		}

		if res.AmountMissing {
			stats.ImputedAmounts++
		}
		stats.ImputedCategoricals += imputeCategoricals(&ev)

		key := ev.Hash()
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		events = append(events, ev)
	}

	slog.Debug("resolved event set",
		"total_rows", stats.TotalRows,
		"kept", len(events),
		"dropped_no_entity", stats.DroppedNoEntity,
		"duplicates", stats.Duplicates)

	return events, stats
}

// imputeCategoricals fills absent categorical fields with the literal
// "Unknown" and returns how many fields were imputed.
func imputeCategoricals(ev *model.CleanedEvent) int {
	imputed := 0
	for _, field := range []*string{&ev.Industry, &ev.City, &ev.State, &ev.RoundLabel} {
		if *field == "" {
			*field = "Unknown"
			imputed++
		}
	}
	return imputed
}
