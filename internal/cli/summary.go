package cli

import (
	"fmt"
	"strings"

	"github.com/seedscope/seedscope/internal/cluster"
	"github.com/seedscope/seedscope/internal/pipeline"
)

// RenderRunSummary renders the data-quality and clustering outcome of
// one run as a boxed report for the terminal.
func RenderRunSummary(stats pipeline.RunStats, profiles []cluster.Profile) string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Render("Data quality"))
	b.WriteString("\n")
	rs := stats.Resolve
	lines := []struct {
		label string
		value int
	}{
		{"Input rows", rs.TotalRows},
		{"Cleaned events", stats.EventCount},
		{"Dropped (no entity)", rs.DroppedNoEntity},
		{"Duplicates removed", rs.Duplicates},
		{"Amounts imputed", rs.ImputedAmounts},
		{"Categoricals imputed", rs.ImputedCategoricals},
		{"Amount parse failures", rs.AmountParseFailures},
		{"Date parse failures", rs.DateParseFailures},
		{"Outliers flagged", rs.Outliers},
	}
	for _, line := range lines {
		b.WriteString(fmt.Sprintf("  %-24s %d\n", line.label, line.value))
	}

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Clustering"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-24s %d\n", "Entities", stats.EntityCount))
	b.WriteString(fmt.Sprintf("  %-24s %s", "Chosen K", BoldStyle.Render(fmt.Sprintf("%d", stats.ChosenK))))
	if stats.KFallback {
		b.WriteString(WarningStyle.Render("  (fallback: " + stats.FallbackReason + ")"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-24s %.4f\n", "Inertia", stats.Inertia))

	if len(profiles) > 0 {
		b.WriteString("\n")
		b.WriteString(renderProfileTable(profiles))
		b.WriteString("\n")
	}

	if stats.RunID != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("run " + stats.RunID))
	}

	return RenderBox("Run summary", strings.TrimRight(b.String(), "\n"))
}

// renderProfileTable lays out one row per cluster.
func renderProfileTable(profiles []cluster.Profile) string {
	var b strings.Builder

	header := fmt.Sprintf("%-4s %-20s %8s %18s %12s", "ID", "Name", "Size", "Mean funding", "Mean rounds")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, p := range profiles {
		row := fmt.Sprintf("%-4d %-20s %8d %18s %12.2f",
			p.ClusterID, p.Name, p.Size, FormatAmount(p.MeanTotalFunding), p.MeanNumRounds)
		b.WriteString(TableCellStyle.Render(row))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatAmount renders a USD amount with a compact magnitude suffix.
func FormatAmount(usd float64) string {
	switch {
	case usd >= 1e9:
		return fmt.Sprintf("$%.2fB", usd/1e9)
	case usd >= 1e6:
		return fmt.Sprintf("$%.2fM", usd/1e6)
	case usd >= 1e3:
		return fmt.Sprintf("$%.1fK", usd/1e3)
	default:
		return fmt.Sprintf("$%.0f", usd)
	}
}
