// Package service defines the interfaces for the persistence layer.
package service

import (
	"context"

	"github.com/seedscope/seedscope/internal/model"
)

// Storage defines the contract for persisting run output. A run fully
// replaces prior events and cluster rows; there is no incremental
// update path.
type Storage interface {
	// Event operations
	ReplaceEvents(ctx context.Context, runID string, events []model.CleanedEvent) error
	GetEvents(ctx context.Context) ([]model.CleanedEvent, error)

	// Cluster operations
	ReplaceClusters(ctx context.Context, runID string, vectors []model.FeatureVector, assignments []model.ClusterAssignment) error
	GetClusters(ctx context.Context) ([]model.FeatureVector, []model.ClusterAssignment, error)

	// Run bookkeeping
	SaveRun(ctx context.Context, run *model.Run) error
	GetLatestRun(ctx context.Context) (*model.Run, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
