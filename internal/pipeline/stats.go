package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/seedscope/seedscope/internal/cluster"
	"github.com/seedscope/seedscope/internal/model"
	"github.com/seedscope/seedscope/internal/resolve"
)

// RunStats aggregates everything one run reports back: data-quality
// counts from the resolver plus the clustering outcome.
type RunStats struct {
	RunID          string             `json:"run_id"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	Resolve        resolve.Stats      `json:"resolve"`
	InertiaCurve   []cluster.KInertia `json:"inertia_curve,omitempty"`
	ClusterSizes   []int              `json:"cluster_sizes"`
	EventCount     int                `json:"event_count"`
	EntityCount    int                `json:"entity_count"`
	ChosenK        int                `json:"chosen_k"`
	Inertia        float64            `json:"inertia"`
	Duration       time.Duration      `json:"duration_ns"`
	KFallback      bool               `json:"k_fallback"`
}

// Run converts the stats into the persistent run record.
func (s RunStats) Run() (*model.Run, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run stats: %w", err)
	}
	return &model.Run{
		ID:             s.RunID,
		CreatedAt:      time.Now().UTC(),
		ChosenK:        s.ChosenK,
		UsedFallback:   s.KFallback,
		FallbackReason: s.FallbackReason,
		Inertia:        s.Inertia,
		EventCount:     s.EventCount,
		EntityCount:    s.EntityCount,
		StatsJSON:      string(payload),
	}, nil
}
