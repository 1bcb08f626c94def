package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seedscope/seedscope/internal/cli"
	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/config"
	"github.com/seedscope/seedscope/internal/export"
	"github.com/seedscope/seedscope/internal/model"
	"github.com/seedscope/seedscope/internal/pipeline"
	"github.com/seedscope/seedscope/internal/service"
)

func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Re-cluster the previously cleaned events",
		Long: `Re-run feature aggregation and clustering on cleaned events,
without re-ingesting the source file. Events come from the database by
default, or from a cleaned CSV given with --input. Useful for trying a
different K or seed on the same cleaned data.`,
		RunE: runCluster,
	}

	// Flags
	cmd.Flags().StringP("input", "i", "", "Cleaned events CSV to cluster instead of the database")
	cmd.Flags().StringP("output-dir", "o", "seedscope-out", "Directory for the cluster CSV file")
	cmd.Flags().IntP("k", "k", 0, "Force the cluster count instead of the elbow sweep")
	cmd.Flags().Int64("seed", 0, "Random seed for centroid initialization")

	// Bind to viper
	_ = viper.BindPFlag("cluster.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("cluster.output_dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("cluster.k", cmd.Flags().Lookup("k"))
	_ = viper.BindPFlag("cluster.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runCluster(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var err error
	cfg := config.FromViper()
	if cmd.Flags().Changed("k") {
		cfg.ForcedK = viper.GetInt("cluster.k")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = viper.GetInt64("cluster.seed")
	}

	var events []model.CleanedEvent
	var store service.Storage
	if inputPath := viper.GetString("cluster.input"); inputPath != "" {
		events, err = export.ReadCleanedCSV(inputPath)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("could not read %s", inputPath), err)
		}
	} else {
		store, err = initStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer func() { _ = store.Close() }()

		events, err = store.GetEvents(ctx)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return common.NewUserError("no cleaned events in the database; run 'seedscope analyze' first", common.ErrNotFound)
		}
	}

	slog.Info(cli.FormatTitle("Clustering stored events..."))

	opts := []pipeline.Option{}
	if cfg.ForcedK == 0 {
		bar := cli.NewSweepBar(cfg.KMax-cfg.KMin+1, os.Stderr)
		opts = append(opts, pipeline.WithProgress(func(int) { _ = bar.Add(1) }))
		defer func() { _ = bar.Finish() }()
	}

	p, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	vectors, assignments, clusterStats, err := p.Cluster(ctx, events)
	if err != nil {
		return common.NewUserError("clustering failed", err)
	}

	runID := uuid.NewString()
	stats := pipeline.RunStats{
		RunID:          runID,
		EventCount:     len(events),
		EntityCount:    len(vectors),
		ChosenK:        clusterStats.ChosenK,
		KFallback:      clusterStats.Fallback,
		FallbackReason: clusterStats.FallbackReason,
		Inertia:        clusterStats.Inertia,
		InertiaCurve:   clusterStats.InertiaCurve,
		ClusterSizes:   clusterStats.ClusterSizes,
	}
	// File-based input bypasses the database entirely.
	if store != nil {
		if err := store.ReplaceClusters(ctx, runID, vectors, assignments); err != nil {
			return fmt.Errorf("failed to persist clusters: %w", err)
		}
		run, runErr := stats.Run()
		if runErr != nil {
			return runErr
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to persist run record: %w", err)
		}
	}

	clusterPath := filepath.Join(viper.GetString("cluster.output_dir"), "entity_clusters.csv")
	if err := export.WriteClusterCSV(clusterPath, vectors, assignments); err != nil {
		return err
	}

	fmt.Println(cli.RenderRunSummary(stats, clusterStats.Profiles))
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Clusters written to %s", clusterPath)))

	return nil
}
