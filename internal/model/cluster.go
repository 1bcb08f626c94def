package model

import "time"

// ClusterAssignment ties one entity to the cluster it fell into.
// Every entity with a feature vector receives exactly one assignment.
type ClusterAssignment struct {
	EntityName         string
	ClusterName        string
	ClusterID          int
	DistanceToCentroid float64
}

// Run records the outcome of one full pipeline execution.
type Run struct {
	CreatedAt      time.Time
	ID             string
	FallbackReason string
	StatsJSON      string
	ChosenK        int
	EventCount     int
	EntityCount    int
	Inertia        float64
	UsedFallback   bool
}
