package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/model"
)

// ReadCleanedCSV loads a cleaned event dataset previously written by
// WriteCleanedCSV. The header must match the cleaned output contract;
// derived date columns are recomputed from the date, not read back.
func ReadCleanedCSV(path string) ([]model.CleanedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, common.ErrEmptyInput
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, name := range cleanedHeader[:8] {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q in %s", common.ErrMissingColumn, name, path)
		}
	}

	events := make([]model.CleanedEvent, 0, len(rows)-1)
	for n, row := range rows[1:] {
		ev, rowErr := parseCleanedRow(row, columns)
		if rowErr != nil {
			return nil, fmt.Errorf("row %d of %s: %w", n+2, path, rowErr)
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, common.ErrEmptyInput
	}
	return events, nil
}

func parseCleanedRow(row []string, columns map[string]int) (model.CleanedEvent, error) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	amount, err := strconv.ParseFloat(get("amount_usd"), 64)
	if err != nil {
		return model.CleanedEvent{}, fmt.Errorf("bad amount_usd %q: %w", get("amount_usd"), err)
	}

	ev := model.CleanedEvent{
		EntityName: get("entity_name"),
		Industry:   get("industry"),
		City:       get("city"),
		State:      get("state"),
		AmountUSD:  amount,
		RoundLabel: get("round_label"),
		IsOutlier:  get("is_outlier") == "true",
	}
	if investors := get("investors"); investors != "" {
		ev.Investors = strings.Split(investors, InvestorSeparator)
	}
	if raw := get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return model.CleanedEvent{}, fmt.Errorf("bad date %q: %w", raw, err)
		}
		ev.Date = &date
	}
	return ev, nil
}
