// Package features aggregates cleaned events into per-entity feature
// vectors and standardizes them for distance-based clustering.
package features

import (
	"log/slog"

	"github.com/seedscope/seedscope/internal/model"
)

type entityAgg struct {
	firstIndex     int
	earliestIndex  int
	totalFunding   float64
	numRounds      int
	minYear        int
	maxYear        int
	hasYear        bool
}

// Build groups cleaned events by entity and computes one feature vector
// per entity. Vectors come back in order of each entity's first
// appearance in the event stream, which keeps runs reproducible.
func Build(events []model.CleanedEvent) []model.FeatureVector {
	aggs := make(map[string]*entityAgg, len(events))
	var order []string

	for i, ev := range events {
		agg, ok := aggs[ev.EntityName]
		if !ok {
			agg = &entityAgg{firstIndex: i, earliestIndex: -1}
			aggs[ev.EntityName] = agg
			order = append(order, ev.EntityName)
		}

		agg.totalFunding += ev.AmountUSD
		agg.numRounds++

		if year, ok := ev.Year(); ok {
			if !agg.hasYear || year < agg.minYear {
				agg.minYear = year
			}
			if !agg.hasYear || year > agg.maxYear {
				agg.maxYear = year
			}
			agg.hasYear = true

			// Earliest dated event wins industry_first; ties keep the
			// earlier row.
			if agg.earliestIndex < 0 || ev.Date.Before(*events[agg.earliestIndex].Date) {
				agg.earliestIndex = i
			}
		}
	}

	vectors := make([]model.FeatureVector, 0, len(order))
	for _, name := range order {
		agg := aggs[name]

		yearsActive := 1
		if agg.hasYear {
			yearsActive = agg.maxYear - agg.minYear + 1
		}

		industryIndex := agg.firstIndex
		if agg.earliestIndex >= 0 {
			industryIndex = agg.earliestIndex
		}

		vectors = append(vectors, model.FeatureVector{
			EntityName:         name,
			IndustryFirst:      events[industryIndex].Industry,
			TotalFunding:       agg.totalFunding,
			AvgFundingPerRound: agg.totalFunding / float64(agg.numRounds),
			FundingPerYear:     agg.totalFunding / float64(yearsActive),
			NumRounds:          agg.numRounds,
			YearsActive:        yearsActive,
		})
	}

	slog.Debug("built feature vectors", "entities", len(vectors), "events", len(events))
	return vectors
}
