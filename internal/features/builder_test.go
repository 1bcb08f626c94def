package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedscope/seedscope/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuild_Aggregation(t *testing.T) {
	events := []model.CleanedEvent{
		{EntityName: "A", Industry: "Fintech", AmountUSD: 1e6, Date: datePtr(2020, time.January, 1)},
		{EntityName: "A", Industry: "E-commerce", AmountUSD: 2e6, Date: datePtr(2021, time.June, 1)},
		{EntityName: "B", Industry: "Edtech", AmountUSD: 50e6, Date: datePtr(2022, time.March, 1)},
		{EntityName: "C", Industry: "Healthtech", AmountUSD: 60e6, Date: datePtr(2019, time.January, 1)},
		{EntityName: "C", Industry: "Gaming", AmountUSD: 70e6, Date: datePtr(2020, time.January, 1)},
		{EntityName: "C", Industry: "Gaming", AmountUSD: 80e6, Date: datePtr(2021, time.January, 1)},
	}

	vectors := Build(events)
	require.Len(t, vectors, 3)

	a, b, c := vectors[0], vectors[1], vectors[2]

	assert.Equal(t, "A", a.EntityName)
	assert.Equal(t, 3e6, a.TotalFunding)
	assert.Equal(t, 2, a.NumRounds)
	assert.Equal(t, 1.5e6, a.AvgFundingPerRound)
	assert.Equal(t, 1.5e6, a.FundingPerYear)
	assert.Equal(t, 2, a.YearsActive)
	assert.Equal(t, "Fintech", a.IndustryFirst)

	assert.Equal(t, "B", b.EntityName)
	assert.Equal(t, 50e6, b.TotalFunding)
	assert.Equal(t, 1, b.NumRounds)
	assert.Equal(t, 50e6, b.FundingPerYear)
	assert.Equal(t, 1, b.YearsActive)

	assert.Equal(t, "C", c.EntityName)
	assert.Equal(t, 210e6, c.TotalFunding)
	assert.Equal(t, 3, c.NumRounds)
	assert.Equal(t, 70e6, c.AvgFundingPerRound)
	assert.Equal(t, 70e6, c.FundingPerYear)
	assert.Equal(t, 3, c.YearsActive)
	assert.Equal(t, "Healthtech", c.IndustryFirst)
}

func TestBuild_IndustryFirstPrefersEarliestDate(t *testing.T) {
	// The earliest-dated event wins even when it is not the first row.
	events := []model.CleanedEvent{
		{EntityName: "A", Industry: "Later", AmountUSD: 1, Date: datePtr(2021, time.January, 1)},
		{EntityName: "A", Industry: "Earlier", AmountUSD: 1, Date: datePtr(2019, time.January, 1)},
	}

	vectors := Build(events)
	require.Len(t, vectors, 1)
	assert.Equal(t, "Earlier", vectors[0].IndustryFirst)
}

func TestBuild_IndustryFirstDateTieKeepsRowOrder(t *testing.T) {
	d := datePtr(2020, time.May, 5)
	events := []model.CleanedEvent{
		{EntityName: "A", Industry: "First Row", AmountUSD: 1, Date: d},
		{EntityName: "A", Industry: "Second Row", AmountUSD: 2, Date: d},
	}

	vectors := Build(events)
	require.Len(t, vectors, 1)
	assert.Equal(t, "First Row", vectors[0].IndustryFirst)
}

func TestBuild_UndatedEntity(t *testing.T) {
	events := []model.CleanedEvent{
		{EntityName: "A", Industry: "Fintech", AmountUSD: 5e6},
		{EntityName: "A", Industry: "Edtech", AmountUSD: 5e6},
	}

	vectors := Build(events)
	require.Len(t, vectors, 1)
	assert.Equal(t, 1, vectors[0].YearsActive, "undated entities floor at one year")
	assert.Equal(t, 10e6, vectors[0].FundingPerYear)
	assert.Equal(t, "Fintech", vectors[0].IndustryFirst, "undated falls back to first row")
}

func TestBuild_MixedDatedAndUndated(t *testing.T) {
	events := []model.CleanedEvent{
		{EntityName: "A", Industry: "Undated Row", AmountUSD: 1},
		{EntityName: "A", Industry: "Dated Row", AmountUSD: 1, Date: datePtr(2018, time.March, 1)},
	}

	vectors := Build(events)
	require.Len(t, vectors, 1)
	assert.Equal(t, "Dated Row", vectors[0].IndustryFirst, "a dated event beats an earlier undated row")
	assert.Equal(t, 1, vectors[0].YearsActive)
}

func TestBuild_OrderFollowsFirstAppearance(t *testing.T) {
	events := []model.CleanedEvent{
		{EntityName: "Zed", AmountUSD: 1},
		{EntityName: "Alpha", AmountUSD: 1},
		{EntityName: "Zed", AmountUSD: 1, Date: datePtr(2020, time.January, 2)},
	}

	vectors := Build(events)
	require.Len(t, vectors, 2)
	assert.Equal(t, "Zed", vectors[0].EntityName)
	assert.Equal(t, "Alpha", vectors[1].EntityName)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
}
