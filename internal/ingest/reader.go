// Package ingest loads raw funding events from tabular sources. Column
// headers are resolved against a configured alias map so differently
// labeled exports all land on the same canonical fields.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/config"
	"github.com/seedscope/seedscope/internal/model"
)

// Canonical field names understood by the normalizer.
const (
	FieldEntityName = "entity_name"
	FieldIndustry   = "industry"
	FieldCity       = "city"
	FieldState      = "state"
	FieldAmount     = "amount"
	FieldRoundLabel = "round_label"
	FieldInvestors  = "investors"
	FieldDate       = "date"
)

// fieldOrder fixes the order in which canonical fields claim headers,
// so alias resolution is deterministic regardless of map iteration.
var fieldOrder = []string{
	FieldEntityName,
	FieldIndustry,
	FieldCity,
	FieldState,
	FieldAmount,
	FieldRoundLabel,
	FieldInvestors,
	FieldDate,
}

// requiredFields must resolve to a column or the input is rejected.
var requiredFields = []string{FieldEntityName, FieldAmount}

// Read loads the raw events from a CSV or XLSX file, chosen by
// extension. Structural problems (missing file, unresolvable required
// column, zero data rows) are fatal; everything row-level is left to
// the normalizer.
func Read(path string, cfg config.Pipeline) ([]model.RawEvent, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xls":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s (want .csv or .xlsx)", common.ErrUnsupportedExt, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	events, err := fromRows(rows, cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded input", "file", filepath.Base(path), "rows", len(events))
	return events, nil
}

// fromRows converts a header row plus data rows into RawEvents.
func fromRows(rows [][]string, cfg config.Pipeline) ([]model.RawEvent, error) {
	if len(rows) == 0 {
		return nil, common.ErrEmptyInput
	}

	columns, err := resolveHeader(rows[0], cfg.ColumnAliases)
	if err != nil {
		return nil, err
	}

	events := make([]model.RawEvent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		events = append(events, model.RawEvent{
			EntityName: cell(row, columns, FieldEntityName),
			Industry:   cell(row, columns, FieldIndustry),
			City:       cell(row, columns, FieldCity),
			State:      cell(row, columns, FieldState),
			Amount:     cell(row, columns, FieldAmount),
			RoundLabel: cell(row, columns, FieldRoundLabel),
			Investors:  cell(row, columns, FieldInvestors),
			Date:       cell(row, columns, FieldDate),
		})
	}

	if len(events) == 0 {
		return nil, common.ErrEmptyInput
	}
	return events, nil
}

// resolveHeader maps each canonical field to a column index using
// case-insensitive substring aliases. Headers are claimed left to
// right; a header claimed by one field is not offered to the next.
func resolveHeader(headers []string, aliases map[string][]string) (map[string]int, error) {
	columns := make(map[string]int, len(fieldOrder))
	claimed := make(map[int]bool, len(headers))

	for _, field := range fieldOrder {
		for _, sub := range aliases[field] {
			i, ok := findHeader(field, headers, claimed, sub)
			if ok {
				columns[field] = i
				claimed[i] = true
				break
			}
		}
	}

	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("%w: no column matches %q (headers: %s)",
				common.ErrMissingColumn, field, strings.Join(headers, ", "))
		}
	}
	return columns, nil
}

// findHeader returns the first unclaimed header containing the alias
// substring. Earlier aliases in a field's list take priority over later
// ones, so "amount" claims its column before "funding" is even tried.
func findHeader(field string, headers []string, claimed map[int]bool, sub string) (int, bool) {
	for i, header := range headers {
		if claimed[i] {
			continue
		}
		h := strings.ToLower(strings.TrimSpace(header))
		// "location" columns often embed "city" but hold free-form text.
		if field == FieldCity && strings.Contains(h, "location") {
			continue
		}
		if strings.Contains(h, strings.ToLower(sub)) {
			return i, true
		}
	}
	return 0, false
}

func cell(row []string, columns map[string]int, field string) string {
	i, ok := columns[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
