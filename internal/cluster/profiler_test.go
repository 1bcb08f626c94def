package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedscope/seedscope/internal/model"
)

func TestProfileClusters_Names(t *testing.T) {
	// Cluster 0: low funding, few rounds. Cluster 1: middle. Cluster 2:
	// highest funding with many rounds.
	vectors := []model.FeatureVector{
		{EntityName: "A", TotalFunding: 1e6, NumRounds: 1},
		{EntityName: "B", TotalFunding: 2e6, NumRounds: 1},
		{EntityName: "C", TotalFunding: 40e6, NumRounds: 2},
		{EntityName: "D", TotalFunding: 60e6, NumRounds: 2},
		{EntityName: "E", TotalFunding: 300e6, NumRounds: 5},
		{EntityName: "F", TotalFunding: 500e6, NumRounds: 7},
	}
	assignments := []int{0, 0, 1, 1, 2, 2}

	profiles := ProfileClusters(vectors, assignments, 3)
	require.Len(t, profiles, 3)

	assert.Equal(t, NameEarlyStage, profiles[0].Name)
	assert.Equal(t, NameMidTier, profiles[1].Name)
	assert.Equal(t, NameHighGrowth, profiles[2].Name)

	assert.Equal(t, 2, profiles[0].Size)
	assert.InDelta(t, 1.5e6, profiles[0].MeanTotalFunding, 1e-6)
	assert.InDelta(t, 1.0, profiles[0].MeanNumRounds, 1e-12)
	assert.InDelta(t, 400e6, profiles[2].MeanTotalFunding, 1e-6)
	assert.InDelta(t, 6.0, profiles[2].MeanNumRounds, 1e-12)
}

func TestProfileClusters_LargeSingleRound(t *testing.T) {
	// The top-funded cluster raised everything in single rounds; its
	// round count is below the median.
	vectors := []model.FeatureVector{
		{EntityName: "A", TotalFunding: 1e6, NumRounds: 2},
		{EntityName: "B", TotalFunding: 30e6, NumRounds: 4},
		{EntityName: "C", TotalFunding: 500e6, NumRounds: 1},
	}
	assignments := []int{0, 1, 2}

	profiles := ProfileClusters(vectors, assignments, 3)

	assert.Equal(t, NameLargeSingleRound, profiles[2].Name)
	assert.Equal(t, NameMidTier, profiles[1].Name)
	// Cluster 0 is lowest on funding but not on rounds, so it is not
	// Early-Stage.
	assert.Equal(t, NameMidTier, profiles[0].Name)
}

func TestProfileClusters_TwoClusters(t *testing.T) {
	vectors := []model.FeatureVector{
		{EntityName: "A", TotalFunding: 3e6, NumRounds: 2},
		{EntityName: "B", TotalFunding: 50e6, NumRounds: 1},
		{EntityName: "C", TotalFunding: 210e6, NumRounds: 3},
	}
	assignments := []int{0, 1, 1}

	profiles := ProfileClusters(vectors, assignments, 2)

	// Cluster 1 has the highest mean funding (130M) and mean rounds 2,
	// which reaches the median of {2, 2}.
	assert.Equal(t, NameHighGrowth, profiles[1].Name)
	assert.Equal(t, NameEarlyStage, profiles[0].Name)
}

func TestProfileClusters_RankingTieBreaksToLowerID(t *testing.T) {
	// Both clusters have identical means; cluster 0 takes the highest
	// rank and cluster 1 is left without a distinguishing rank.
	vectors := []model.FeatureVector{
		{EntityName: "A", TotalFunding: 10e6, NumRounds: 2},
		{EntityName: "B", TotalFunding: 10e6, NumRounds: 2},
	}
	assignments := []int{0, 1}

	profiles := ProfileClusters(vectors, assignments, 2)

	assert.Equal(t, NameHighGrowth, profiles[0].Name)
	assert.Equal(t, NameMidTier, profiles[1].Name)
}
