// Package cluster implements seeded K-Means with k-means++
// initialization, elbow-based K selection and cluster profiling.
package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// Config controls one K-Means fit. Restarts is the number of
// independent initializations to try; the fit with the lowest inertia
// wins. Zero means a single initialization.
type Config struct {
	K             int
	MaxIterations int
	Restarts      int
	Seed          int64
	Epsilon       float64
}

// Result is one converged K-Means fit: a centroid per cluster and, for
// every input point, its cluster and distance to that centroid.
type Result struct {
	Centroids   [][]float64
	Assignments []int
	Distances   []float64
	Inertia     float64
	Iterations  int
	Converged   bool
}

// ClusteringError reports an infeasible fit: K-Means cannot produce K
// non-empty clusters from fewer than K distinct points. There is no
// valid fallback without silently changing the requested K, so the
// caller must reduce K or abort.
type ClusteringError struct {
	K              int
	DistinctPoints int
}

func (e *ClusteringError) Error() string {
	return fmt.Sprintf("cannot form %d clusters from %d distinct points", e.K, e.DistinctPoints)
}

// Run fits K-Means on the point matrix, restarting from fresh
// initializations and keeping the lowest-inertia fit. The result is
// deterministic for a fixed seed: all restarts draw from one private
// rand.Rand and assignment ties always resolve to the lowest cluster id.
func Run(points [][]float64, cfg Config) (*Result, error) {
	if cfg.K < 1 {
		return nil, fmt.Errorf("invalid cluster count %d", cfg.K)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to cluster")
	}
	if distinct := distinctCount(points); distinct < cfg.K {
		return nil, &ClusteringError{K: cfg.K, DistinctPoints: distinct}
	}

	restarts := cfg.Restarts
	if restarts < 1 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var best *Result
	for r := 0; r < restarts; r++ {
		res := fit(points, cfg, rng)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// fit runs one full K-Means pass from a fresh k-means++ initialization.
func fit(points [][]float64, cfg Config, rng *rand.Rand) *Result {
	centroids := seedCentroids(points, cfg.K, rng)

	assignments := make([]int, len(points))
	iterations := 0
	converged := false

	for iterations < cfg.MaxIterations {
		iterations++

		for i, p := range points {
			assignments[i] = nearest(p, centroids)
		}

		next := recompute(points, assignments, centroids)

		shift := 0.0
		for c := range centroids {
			if s := math.Sqrt(sqDist(centroids[c], next[c])); s > shift {
				shift = s
			}
		}
		centroids = next

		if shift < cfg.Epsilon {
			converged = true
			break
		}
	}

	// Final assignment against the converged centroids.
	distances := make([]float64, len(points))
	inertia := 0.0
	for i, p := range points {
		c := nearest(p, centroids)
		assignments[i] = c
		d2 := sqDist(p, centroids[c])
		distances[i] = math.Sqrt(d2)
		inertia += d2
	}

	return &Result{
		Centroids:   centroids,
		Assignments: assignments,
		Distances:   distances,
		Inertia:     inertia,
		Iterations:  iterations,
		Converged:   converged,
	}
}

// seedCentroids implements k-means++: the first centroid is drawn
// uniformly, each further one with probability proportional to the
// squared distance from the nearest centroid chosen so far.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(points[rng.Intn(len(points))]))

	weights := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			best := math.Inf(1)
			for _, c := range centroids {
				if d := sqDist(p, c); d < best {
					best = d
				}
			}
			weights[i] = best
			total += best
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		cumulative := 0.0
		for i, w := range weights {
			cumulative += w
			if cumulative >= target && w > 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, clonePoint(points[chosen]))
	}
	return centroids
}

// recompute returns the mean of each cluster's members. A cluster left
// empty is reseeded with the point farthest from its current centroid
// so the partition always covers all K ids.
func recompute(points [][]float64, assignments []int, prev [][]float64) [][]float64 {
	k := len(prev)
	dims := len(points[0])

	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dims)
	}
	for i, p := range points {
		c := assignments[i]
		counts[c]++
		for d, v := range p {
			sums[c][d] += v
		}
	}

	next := make([][]float64, k)
	used := make(map[int]bool)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			far := farthestPoint(points, assignments, prev, used)
			used[far] = true
			next[c] = clonePoint(points[far])
			continue
		}
		next[c] = make([]float64, dims)
		for d := range sums[c] {
			next[c][d] = sums[c][d] / float64(counts[c])
		}
	}
	return next
}

func farthestPoint(points [][]float64, assignments []int, centroids [][]float64, used map[int]bool) int {
	far, best := 0, -1.0
	for i, p := range points {
		if used[i] {
			continue
		}
		if d := sqDist(p, centroids[assignments[i]]); d > best {
			far, best = i, d
		}
	}
	return far
}

// nearest returns the index of the closest centroid; the strict
// comparison keeps the lowest cluster id on ties.
func nearest(p []float64, centroids [][]float64) int {
	idx, best := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(p, centroid); d < best {
			idx, best = c, d
		}
	}
	return idx
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}

func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}

func distinctCount(points [][]float64) int {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		seen[fmt.Sprint(p)] = struct{}{}
	}
	return len(seen)
}
