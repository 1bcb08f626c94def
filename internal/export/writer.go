// Package export writes the two run outputs: the cleaned event dataset
// and the per-entity cluster dataset. Column names and types are a
// stable contract for downstream loaders and BI tools.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seedscope/seedscope/internal/model"
)

// InvestorSeparator joins investor lists in the cleaned dataset.
const InvestorSeparator = "; "

var cleanedHeader = []string{
	"entity_name", "industry", "city", "state", "amount_usd",
	"round_label", "investors", "date", "year", "month", "quarter",
	"month_name", "is_outlier",
}

var clusterHeader = []string{
	"entity_name", "cluster_id", "cluster_name", "total_funding",
	"avg_funding_per_round", "funding_per_year", "num_rounds",
	"years_active", "industry_first",
}

// WriteCleanedCSV writes one row per cleaned event.
func WriteCleanedCSV(path string, events []model.CleanedEvent) error {
	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, cleanedHeader)
	for i := range events {
		rows = append(rows, cleanedRow(&events[i]))
	}
	return writeCSV(path, rows)
}

// WriteClusterCSV writes one row per entity. Vectors and assignments
// are parallel slices in the same entity order.
func WriteClusterCSV(path string, vectors []model.FeatureVector, assignments []model.ClusterAssignment) error {
	if len(vectors) != len(assignments) {
		return fmt.Errorf("vector count %d does not match assignment count %d", len(vectors), len(assignments))
	}

	rows := make([][]string, 0, len(vectors)+1)
	rows = append(rows, clusterHeader)
	for i := range vectors {
		v, a := &vectors[i], &assignments[i]
		rows = append(rows, []string{
			v.EntityName,
			strconv.Itoa(a.ClusterID),
			a.ClusterName,
			formatFloat(v.TotalFunding),
			formatFloat(v.AvgFundingPerRound),
			formatFloat(v.FundingPerYear),
			strconv.Itoa(v.NumRounds),
			strconv.Itoa(v.YearsActive),
			v.IndustryFirst,
		})
	}
	return writeCSV(path, rows)
}

func cleanedRow(ev *model.CleanedEvent) []string {
	date, year, month, quarter, monthName := "", "", "", "", ""
	if ev.Date != nil {
		date = ev.Date.Format("2006-01-02")
		y, _ := ev.Year()
		m, _ := ev.Month()
		q, _ := ev.Quarter()
		monthName, _ = ev.MonthName()
		year = strconv.Itoa(y)
		month = strconv.Itoa(m)
		quarter = strconv.Itoa(q)
	}

	return []string{
		ev.EntityName,
		ev.Industry,
		ev.City,
		ev.State,
		formatFloat(ev.AmountUSD),
		ev.RoundLabel,
		strings.Join(ev.Investors, InvestorSeparator),
		date,
		year,
		month,
		quarter,
		monthName,
		strconv.FormatBool(ev.IsOutlier),
	}
}

func writeCSV(path string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	slog.Info("wrote output", "file", filepath.Base(path), "rows", len(rows)-1)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
