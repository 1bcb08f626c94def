package resolve

import (
	"sort"

	"github.com/seedscope/seedscope/internal/model"
)

// minOutlierSample is the smallest event count for which the IQR is
// defined; below it every flag stays false.
const minOutlierSample = 4

// FlagOutliers marks events whose amount falls outside
// [Q1 - m*IQR, Q3 + m*IQR] over the full amount distribution. Flagging
// is non-destructive: outliers stay in the set and in downstream
// aggregation. Returns the number of flagged events.
func FlagOutliers(events []model.CleanedEvent, multiplier float64) int {
	if len(events) < minOutlierSample {
		return 0
	}

	amounts := make([]float64, len(events))
	for i := range events {
		amounts[i] = events[i].AmountUSD
	}
	sort.Float64s(amounts)

	q1 := quantile(amounts, 0.25)
	q3 := quantile(amounts, 0.75)
	iqr := q3 - q1
	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	flagged := 0
	for i := range events {
		if events[i].AmountUSD < lower || events[i].AmountUSD > upper {
			events[i].IsOutlier = true
			flagged++
		}
	}
	return flagged
}

// quantile computes the q-quantile of pre-sorted values with linear
// interpolation between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
