// Package pipeline orchestrates the full analysis run: ingest output is
// normalized, resolved, aggregated into per-entity features and
// clustered, with the outcome optionally persisted.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seedscope/seedscope/internal/cluster"
	"github.com/seedscope/seedscope/internal/config"
	"github.com/seedscope/seedscope/internal/features"
	"github.com/seedscope/seedscope/internal/model"
	"github.com/seedscope/seedscope/internal/normalize"
	"github.com/seedscope/seedscope/internal/resolve"
	"github.com/seedscope/seedscope/internal/service"
)

// Pipeline runs the cleaning and clustering stages under one
// configuration. The zero storage is valid; results are then only
// returned, not persisted.
type Pipeline struct {
	cfg      config.Pipeline
	store    service.Storage
	progress func(k int)
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithStorage attaches a storage backend; each completed run replaces
// the persisted event and cluster sets.
func WithStorage(store service.Storage) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithProgress attaches a callback invoked after each candidate K is
// evaluated during the elbow sweep.
func WithProgress(fn func(k int)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// New creates a pipeline after validating the configuration.
func New(cfg config.Pipeline, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result is the complete outcome of one run.
type Result struct {
	Events      []model.CleanedEvent
	Vectors     []model.FeatureVector
	Assignments []model.ClusterAssignment
	Profiles    []cluster.Profile
	Stats       RunStats
}

// Run executes the full pipeline over the raw rows and persists the
// outcome when a storage backend is attached.
func (p *Pipeline) Run(ctx context.Context, raws []model.RawEvent) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()

	events, resolveStats, err := p.Clean(ctx, raws)
	if err != nil {
		return nil, err
	}

	vectors, assignments, clusterStats, err := p.Cluster(ctx, events)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Events:      events,
		Vectors:     vectors,
		Assignments: assignments,
		Profiles:    clusterStats.Profiles,
		Stats: RunStats{
			RunID:          runID,
			Resolve:        resolveStats,
			EventCount:     len(events),
			EntityCount:    len(vectors),
			ChosenK:        clusterStats.ChosenK,
			KFallback:      clusterStats.Fallback,
			FallbackReason: clusterStats.FallbackReason,
			Inertia:        clusterStats.Inertia,
			InertiaCurve:   clusterStats.InertiaCurve,
			ClusterSizes:   clusterStats.ClusterSizes,
			Duration:       time.Since(started),
		},
	}

	if p.store != nil {
		if err := p.persist(ctx, res); err != nil {
			return nil, err
		}
	}

	slog.Info("run complete",
		"run_id", runID,
		"events", len(events),
		"entities", len(vectors),
		"k", clusterStats.ChosenK,
		"duration", res.Stats.Duration)

	return res, nil
}

// Clean normalizes and resolves the raw rows into the cleaned event
// set, with outliers flagged.
func (p *Pipeline) Clean(ctx context.Context, raws []model.RawEvent) ([]model.CleanedEvent, resolve.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, resolve.Stats{}, err
	}

	normalizer := normalize.New(p.cfg)
	results := make([]normalize.Result, len(raws))
	for i, raw := range raws {
		results[i] = normalizer.Normalize(raw)
	}

	events, stats := resolve.Resolve(results)
	stats.Outliers = resolve.FlagOutliers(events, p.cfg.IQRMultiplier)

	return events, stats, nil
}

// ClusterStats summarizes the clustering stage of one run.
type ClusterStats struct {
	FallbackReason string
	InertiaCurve   []cluster.KInertia
	ClusterSizes   []int
	Profiles       []cluster.Profile
	ChosenK        int
	Inertia        float64
	Fallback       bool
}

// Cluster aggregates the cleaned events into per-entity features and
// fits K-Means on the standardized matrix. A forced K skips the elbow
// sweep entirely.
func (p *Pipeline) Cluster(ctx context.Context, events []model.CleanedEvent) ([]model.FeatureVector, []model.ClusterAssignment, ClusterStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, ClusterStats{}, err
	}

	vectors := features.Build(events)
	if len(vectors) == 0 {
		return nil, nil, ClusterStats{}, fmt.Errorf("no entities to cluster")
	}
	matrix, _ := features.Scale(vectors)

	stats := ClusterStats{ChosenK: p.cfg.ForcedK}
	if p.cfg.ForcedK == 0 {
		sel, err := cluster.SelectK(matrix, cluster.SweepConfig{
			KMin:          p.cfg.KMin,
			KMax:          p.cfg.KMax,
			DefaultK:      p.cfg.DefaultK,
			MaxIterations: p.cfg.MaxIterations,
			Restarts:      p.cfg.Restarts,
			Seed:          p.cfg.Seed,
			Epsilon:       p.cfg.Epsilon,
			Progress:      p.progress,
		})
		if err != nil {
			return nil, nil, ClusterStats{}, err
		}
		stats.ChosenK = sel.K
		stats.Fallback = sel.Fallback
		stats.FallbackReason = sel.Reason
		stats.InertiaCurve = sel.Inertias
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, ClusterStats{}, err
	}

	fit, err := cluster.Run(matrix, cluster.Config{
		K:             stats.ChosenK,
		MaxIterations: p.cfg.MaxIterations,
		Restarts:      p.cfg.Restarts,
		Seed:          p.cfg.Seed,
		Epsilon:       p.cfg.Epsilon,
	})
	if err != nil {
		return nil, nil, ClusterStats{}, fmt.Errorf("clustering at k=%d failed: %w", stats.ChosenK, err)
	}
	stats.Inertia = fit.Inertia

	profiles := cluster.ProfileClusters(vectors, fit.Assignments, stats.ChosenK)
	stats.Profiles = profiles
	stats.ClusterSizes = make([]int, stats.ChosenK)
	for _, prof := range profiles {
		stats.ClusterSizes[prof.ClusterID] = prof.Size
	}

	assignments := make([]model.ClusterAssignment, len(vectors))
	for i := range vectors {
		c := fit.Assignments[i]
		assignments[i] = model.ClusterAssignment{
			EntityName:         vectors[i].EntityName,
			ClusterID:          c,
			ClusterName:        profiles[c].Name,
			DistanceToCentroid: fit.Distances[i],
		}
	}

	return vectors, assignments, stats, nil
}

func (p *Pipeline) persist(ctx context.Context, res *Result) error {
	if err := p.store.ReplaceEvents(ctx, res.Stats.RunID, res.Events); err != nil {
		return fmt.Errorf("failed to persist events: %w", err)
	}
	if err := p.store.ReplaceClusters(ctx, res.Stats.RunID, res.Vectors, res.Assignments); err != nil {
		return fmt.Errorf("failed to persist clusters: %w", err)
	}

	run, err := res.Stats.Run()
	if err != nil {
		return err
	}
	if err := p.store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to persist run record: %w", err)
	}
	return nil
}
