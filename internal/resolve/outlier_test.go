package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seedscope/seedscope/internal/model"
)

func eventsWithAmounts(amounts ...float64) []model.CleanedEvent {
	events := make([]model.CleanedEvent, len(amounts))
	for i, a := range amounts {
		events[i] = model.CleanedEvent{EntityName: "E", AmountUSD: a}
	}
	return events
}

func TestFlagOutliers(t *testing.T) {
	events := eventsWithAmounts(1, 2, 3, 4, 5, 100)

	flagged := FlagOutliers(events, 1.5)

	assert.Equal(t, 1, flagged)
	for i, ev := range events[:5] {
		assert.False(t, ev.IsOutlier, "value %v at index %d should not be flagged", ev.AmountUSD, i)
	}
	assert.True(t, events[5].IsOutlier, "100 should be flagged")
}

func TestFlagOutliers_SmallSampleSkipped(t *testing.T) {
	for n := 0; n < minOutlierSample; n++ {
		events := eventsWithAmounts(make([]float64, n)...)
		for i := range events {
			events[i].AmountUSD = float64(i * 1000000)
		}
		flagged := FlagOutliers(events, 1.5)
		assert.Zero(t, flagged, "n=%d", n)
		for _, ev := range events {
			assert.False(t, ev.IsOutlier)
		}
	}
}

func TestFlagOutliers_LowSideFence(t *testing.T) {
	events := eventsWithAmounts(-500, 100, 101, 102, 103, 104, 105)

	flagged := FlagOutliers(events, 1.5)

	assert.Equal(t, 1, flagged)
	assert.True(t, events[0].IsOutlier)
}

func TestFlagOutliers_UniformDataHasNone(t *testing.T) {
	events := eventsWithAmounts(10, 10, 10, 10, 10)

	flagged := FlagOutliers(events, 1.5)

	assert.Zero(t, flagged)
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	// Position 0.25*(4-1) = 0.75 interpolates between 1 and 2.
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-12)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-12)
	assert.Equal(t, 1.0, quantile(sorted, 0))
	assert.Equal(t, 4.0, quantile(sorted, 1))
}
