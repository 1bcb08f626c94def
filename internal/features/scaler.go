package features

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/seedscope/seedscope/internal/model"
)

// fundingDims are the columns that carry dollar amounts. Funding is
// heavily right-skewed, so these are log10(x+1) transformed before
// standardization; without the transform the round-count and
// years-active columns dominate the distance metric and funding scale
// stops driving the grouping.
var fundingDims = map[int]bool{0: true, 1: true, 4: true}

// ScaleParams holds the per-dimension transform parameters of one run,
// computed over the log-transformed funding columns. They are a
// function of the current entity set only and are never persisted
// across runs.
type ScaleParams struct {
	Mean   []float64
	StdDev []float64
}

// Scale log-transforms the funding columns, then standardizes every
// dimension to zero mean and unit variance using the population
// standard deviation. Dimensions with zero spread map to 0 for every
// entity.
func Scale(vectors []model.FeatureVector) ([][]float64, ScaleParams) {
	n := len(vectors)
	dims := model.NumericFeatureCount

	params := ScaleParams{
		Mean:   make([]float64, dims),
		StdDev: make([]float64, dims),
	}
	matrix := make([][]float64, n)
	for i := range vectors {
		matrix[i] = vectors[i].Numeric()
		for d := range matrix[i] {
			if fundingDims[d] {
				matrix[i][d] = math.Log10(matrix[i][d] + 1)
			}
		}
	}
	if n == 0 {
		return matrix, params
	}

	column := make([]float64, n)
	for d := 0; d < dims; d++ {
		for i := range matrix {
			column[i] = matrix[i][d]
		}

		mean, _ := stats.Mean(stats.Float64Data(column))
		sigma, _ := stats.StdDevP(stats.Float64Data(column))
		params.Mean[d] = mean
		params.StdDev[d] = sigma

		for i := range matrix {
			if sigma == 0 {
				matrix[i][d] = 0
			} else {
				matrix[i][d] = (matrix[i][d] - mean) / sigma
			}
		}
	}

	return matrix, params
}
