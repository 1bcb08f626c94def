package cluster

import (
	"errors"
	"fmt"
	"log/slog"
)

// SweepConfig controls the elbow sweep over candidate cluster counts.
// Every candidate fit reuses the same seed so the sweep is reproducible.
type SweepConfig struct {
	Progress      func(k int)
	KMin          int
	KMax          int
	DefaultK      int
	MaxIterations int
	Restarts      int
	Seed          int64
	Epsilon       float64
}

// KInertia is one point on the inertia curve.
type KInertia struct {
	Inertia float64
	K       int
}

// Selection is the outcome of the elbow sweep. When the candidate range
// cannot be evaluated the selector falls back to DefaultK and says why;
// the fallback is reported to the caller, never silently accepted.
type Selection struct {
	Reason   string
	Inertias []KInertia
	K        int
	Fallback bool
}

// SelectK sweeps the candidate range, records inertia at each K, and
// picks the candidate with the largest second difference of inertia,
// the point of maximum curvature on the elbow curve. Ties break toward
// the smaller K.
func SelectK(points [][]float64, cfg SweepConfig) (Selection, error) {
	candidates := cfg.KMax - cfg.KMin + 1
	if candidates < 3 {
		return fallback(cfg, fmt.Sprintf("candidate range %d..%d has fewer than 3 values", cfg.KMin, cfg.KMax)), nil
	}
	if len(points) < cfg.KMin {
		return fallback(cfg, fmt.Sprintf("entity count %d is below the smallest candidate K %d", len(points), cfg.KMin)), nil
	}

	var inertias []KInertia
	for k := cfg.KMin; k <= cfg.KMax; k++ {
		res, err := Run(points, Config{
			K:             k,
			MaxIterations: cfg.MaxIterations,
			Restarts:      cfg.Restarts,
			Seed:          cfg.Seed,
			Epsilon:       cfg.Epsilon,
		})
		if err != nil {
			var clusterErr *ClusteringError
			if errors.As(err, &clusterErr) {
				// Larger K values are infeasible too; stop the sweep here.
				slog.Debug("sweep truncated", "k", k, "distinct_points", clusterErr.DistinctPoints)
				break
			}
			return Selection{}, fmt.Errorf("sweep failed at k=%d: %w", k, err)
		}
		inertias = append(inertias, KInertia{K: k, Inertia: res.Inertia})
		if cfg.Progress != nil {
			cfg.Progress(k)
		}
	}

	if len(inertias) < 3 {
		sel := fallback(cfg, fmt.Sprintf("only %d of %d candidates could be evaluated", len(inertias), candidates))
		sel.Inertias = inertias
		return sel, nil
	}

	// Second difference of the inertia curve; the interior candidate
	// with the largest curvature is the elbow. Strict comparison keeps
	// the smaller K on ties.
	bestK := inertias[1].K
	bestCurve := 0.0
	for i := 1; i < len(inertias)-1; i++ {
		curve := inertias[i-1].Inertia - 2*inertias[i].Inertia + inertias[i+1].Inertia
		if i == 1 || curve > bestCurve {
			bestK = inertias[i].K
			bestCurve = curve
		}
	}

	slog.Info("selected cluster count", "k", bestK, "curvature", bestCurve)
	return Selection{K: bestK, Inertias: inertias}, nil
}

func fallback(cfg SweepConfig, reason string) Selection {
	slog.Warn("elbow selection not possible, using default K",
		"default_k", cfg.DefaultK,
		"reason", reason)
	return Selection{K: cfg.DefaultK, Fallback: true, Reason: reason}
}
