package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/seedscope/seedscope/internal/config"
)

func TestRead_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Startup Name", "Industry", "Amount", "Date"},
		{"PayTech", "Fintech", "$2.5M", "2021-03-15"},
		{"EduLearn", "Edtech", "₹50 Cr", "2020-06-01"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	events, err := Read(path, config.Default())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "PayTech", events[0].EntityName)
	assert.Equal(t, "$2.5M", events[0].Amount)
	assert.Equal(t, "EduLearn", events[1].EntityName)
	assert.Equal(t, "2020-06-01", events[1].Date)
}
