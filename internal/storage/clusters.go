package storage

import (
	"context"
	"fmt"

	"github.com/seedscope/seedscope/internal/model"
)

// ReplaceClusters replaces the persisted cluster table with the given
// run's assignments. Vectors and assignments are parallel slices.
func (s *SQLiteStorage) ReplaceClusters(ctx context.Context, runID string, vectors []model.FeatureVector, assignments []model.ClusterAssignment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}
	if len(vectors) != len(assignments) {
		return fmt.Errorf("vector count %d does not match assignment count %d", len(vectors), len(assignments))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entity_clusters"); err != nil {
		return fmt.Errorf("failed to clear clusters: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entity_clusters (
			entity_name, run_id, position, cluster_id, cluster_name,
			distance_to_centroid, total_funding, avg_funding_per_round,
			funding_per_year, num_rounds, years_active, industry_first
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range vectors {
		v, a := &vectors[i], &assignments[i]
		if _, err := stmt.ExecContext(ctx,
			v.EntityName, runID, i, a.ClusterID, a.ClusterName,
			a.DistanceToCentroid, v.TotalFunding, v.AvgFundingPerRound,
			v.FundingPerYear, v.NumRounds, v.YearsActive, v.IndustryFirst,
		); err != nil {
			return fmt.Errorf("failed to insert cluster row for %s: %w", v.EntityName, err)
		}
	}

	return tx.Commit()
}

// GetClusters returns the persisted feature vectors and assignments in
// the order they were produced.
func (s *SQLiteStorage) GetClusters(ctx context.Context) ([]model.FeatureVector, []model.ClusterAssignment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_name, cluster_id, cluster_name, distance_to_centroid,
		       total_funding, avg_funding_per_round, funding_per_year,
		       num_rounds, years_active, industry_first
		FROM entity_clusters
		ORDER BY position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vectors []model.FeatureVector
	var assignments []model.ClusterAssignment
	for rows.Next() {
		var v model.FeatureVector
		var a model.ClusterAssignment

		if err := rows.Scan(&v.EntityName, &a.ClusterID, &a.ClusterName,
			&a.DistanceToCentroid, &v.TotalFunding, &v.AvgFundingPerRound,
			&v.FundingPerYear, &v.NumRounds, &v.YearsActive, &v.IndustryFirst); err != nil {
			return nil, nil, fmt.Errorf("failed to scan cluster row: %w", err)
		}
		a.EntityName = v.EntityName

		vectors = append(vectors, v)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate clusters: %w", err)
	}
	return vectors, assignments, nil
}
