package cluster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBlobs is a tiny dataset with an unambiguous two-group structure.
func twoBlobs() [][]float64 {
	return [][]float64{
		{0.0, 0.1}, {0.1, 0.0}, {0.1, 0.1}, {0.0, 0.0},
		{10.0, 10.1}, {10.1, 10.0}, {10.1, 10.1}, {10.0, 10.0},
	}
}

func TestRun_SeparatesObviousGroups(t *testing.T) {
	points := twoBlobs()

	res, err := Run(points, Config{K: 2, MaxIterations: 300, Seed: 42, Epsilon: 1e-6})
	require.NoError(t, err)
	require.Len(t, res.Assignments, len(points))
	require.Len(t, res.Centroids, 2)

	// The first four points share a cluster, the last four the other.
	first := res.Assignments[0]
	for i := 1; i < 4; i++ {
		assert.Equal(t, first, res.Assignments[i])
	}
	second := res.Assignments[4]
	assert.NotEqual(t, first, second)
	for i := 5; i < 8; i++ {
		assert.Equal(t, second, res.Assignments[i])
	}
	assert.True(t, res.Converged)
}

func TestRun_Deterministic(t *testing.T) {
	points := twoBlobs()
	cfg := Config{K: 2, MaxIterations: 300, Seed: 42, Epsilon: 1e-6}

	first, err := Run(points, cfg)
	require.NoError(t, err)
	second, err := Run(points, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.Inertia, second.Inertia)
}

func TestRun_PartitionProperty(t *testing.T) {
	points := twoBlobs()
	k := 3

	res, err := Run(points, Config{K: k, MaxIterations: 300, Seed: 7, Epsilon: 1e-6})
	require.NoError(t, err)

	sizes := make([]int, k)
	for _, c := range res.Assignments {
		require.GreaterOrEqual(t, c, 0)
		require.Less(t, c, k)
		sizes[c]++
	}
	total := 0
	for c, size := range sizes {
		assert.Positive(t, size, "cluster %d must not be empty", c)
		total += size
	}
	assert.Equal(t, len(points), total)
}

func TestRun_DistancesAndInertia(t *testing.T) {
	// With K equal to the number of distinct points every point is its
	// own centroid.
	points := [][]float64{{0, 0}, {5, 5}, {9, 0}}

	res, err := Run(points, Config{K: 3, MaxIterations: 300, Seed: 1, Epsilon: 1e-6})
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Inertia, 1e-12)
	for _, d := range res.Distances {
		assert.InDelta(t, 0, d, 1e-12)
	}
}

func TestRun_InfeasibleK(t *testing.T) {
	points := [][]float64{{1, 1}, {1, 1}, {1, 1}}

	_, err := Run(points, Config{K: 2, MaxIterations: 300, Seed: 42, Epsilon: 1e-6})
	require.Error(t, err)

	var clusterErr *ClusteringError
	require.True(t, errors.As(err, &clusterErr))
	assert.Equal(t, 2, clusterErr.K)
	assert.Equal(t, 1, clusterErr.DistinctPoints)
}

func TestRun_EmptyInput(t *testing.T) {
	_, err := Run(nil, Config{K: 2, MaxIterations: 300, Seed: 42, Epsilon: 1e-6})
	assert.Error(t, err)
}

func TestRun_SingleCluster(t *testing.T) {
	points := [][]float64{{1, 0}, {2, 0}, {3, 0}}

	res, err := Run(points, Config{K: 1, MaxIterations: 300, Seed: 42, Epsilon: 1e-6})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0}, res.Assignments)
	assert.InDelta(t, 2.0, res.Centroids[0][0], 1e-12)
	// Inertia is the sum of squared distances to the mean: 1 + 0 + 1.
	assert.InDelta(t, 2.0, res.Inertia, 1e-12)
}

func TestRun_RestartsKeepLowestInertia(t *testing.T) {
	points := twoBlobs()

	// Every restart of a well-separated dataset converges to the same
	// optimum, so the best-of-restarts fit can never be worse than any
	// single-init fit.
	single, err := Run(points, Config{K: 2, MaxIterations: 300, Restarts: 1, Seed: 42, Epsilon: 1e-6})
	require.NoError(t, err)
	multi, err := Run(points, Config{K: 2, MaxIterations: 300, Restarts: 10, Seed: 42, Epsilon: 1e-6})
	require.NoError(t, err)

	assert.LessOrEqual(t, multi.Inertia, single.Inertia)
	assert.Equal(t, single.Inertia, multi.Inertia)
}

func TestRun_RestartsDeterministic(t *testing.T) {
	points := twoBlobs()
	cfg := Config{K: 3, MaxIterations: 300, Restarts: 10, Seed: 11, Epsilon: 1e-6}

	first, err := Run(points, cfg)
	require.NoError(t, err)
	second, err := Run(points, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Inertia, second.Inertia)
}

func TestNearest_TieBreaksToLowestID(t *testing.T) {
	centroids := [][]float64{{0, 0}, {2, 0}}
	// Equidistant from both centroids.
	assert.Equal(t, 0, nearest([]float64{1, 0}, centroids))
}
