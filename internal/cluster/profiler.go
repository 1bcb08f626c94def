package cluster

import (
	"github.com/montanaflynn/stats"

	"github.com/seedscope/seedscope/internal/model"
)

// Cluster names assigned by the profiler.
const (
	NameHighGrowth       = "High-Growth"
	NameLargeSingleRound = "Large Single-Round"
	NameEarlyStage       = "Early-Stage"
	NameMidTier          = "Mid-Tier"
)

// Profile describes one cluster in human terms. The means are computed
// from the unscaled member features; scaled centroids are not
// interpretable.
type Profile struct {
	Name             string
	ClusterID        int
	Size             int
	MeanTotalFunding float64
	MeanNumRounds    float64
}

// ProfileClusters names each cluster from the realized per-cluster
// means of total funding and round count: the top-funded cluster is
// High-Growth when its round count reaches the median and Large
// Single-Round otherwise; the cluster lowest on both funding and rounds
// is Early-Stage; everything else is Mid-Tier. Ranking ties resolve to
// the ascending cluster id.
func ProfileClusters(vectors []model.FeatureVector, assignments []int, k int) []Profile {
	profiles := make([]Profile, k)
	for c := range profiles {
		profiles[c].ClusterID = c
	}

	for i, v := range vectors {
		p := &profiles[assignments[i]]
		p.Size++
		p.MeanTotalFunding += v.TotalFunding
		p.MeanNumRounds += float64(v.NumRounds)
	}
	meanRounds := make([]float64, k)
	for c := range profiles {
		if profiles[c].Size > 0 {
			profiles[c].MeanTotalFunding /= float64(profiles[c].Size)
			profiles[c].MeanNumRounds /= float64(profiles[c].Size)
		}
		meanRounds[c] = profiles[c].MeanNumRounds
	}

	highestFunding := 0
	lowestFunding := 0
	lowestRounds := 0
	for c := 1; c < k; c++ {
		if profiles[c].MeanTotalFunding > profiles[highestFunding].MeanTotalFunding {
			highestFunding = c
		}
		if profiles[c].MeanTotalFunding < profiles[lowestFunding].MeanTotalFunding {
			lowestFunding = c
		}
		if profiles[c].MeanNumRounds < profiles[lowestRounds].MeanNumRounds {
			lowestRounds = c
		}
	}

	medianRounds, _ := stats.Median(stats.Float64Data(meanRounds))

	for c := range profiles {
		switch {
		case c == highestFunding && profiles[c].MeanNumRounds >= medianRounds:
			profiles[c].Name = NameHighGrowth
		case c == highestFunding:
			profiles[c].Name = NameLargeSingleRound
		case c == lowestFunding && c == lowestRounds:
			profiles[c].Name = NameEarlyStage
		default:
			profiles[c].Name = NameMidTier
		}
	}

	return profiles
}
