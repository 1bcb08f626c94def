package model

// FeatureVector aggregates one entity's funding history into the fixed
// set of numeric features used for clustering, plus descriptive metadata.
type FeatureVector struct {
	EntityName         string
	IndustryFirst      string
	TotalFunding       float64
	AvgFundingPerRound float64
	FundingPerYear     float64
	NumRounds          int
	YearsActive        int
}

// NumericFeatureCount is the dimensionality of the clustering space.
const NumericFeatureCount = 5

// Numeric returns the raw feature components in matrix column order:
// total_funding, avg_funding_per_round, num_rounds, years_active,
// funding_per_year. The scaler owns any transform applied on top.
func (f *FeatureVector) Numeric() []float64 {
	return []float64{
		f.TotalFunding,
		f.AvgFundingPerRound,
		float64(f.NumRounds),
		float64(f.YearsActive),
		f.FundingPerYear,
	}
}
