package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seedscope/seedscope/internal/cli"
	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-export the latest persisted results as CSV",
		Long: `Write the cleaned events and cluster assignments from the most
recent run back out as CSV files, without recomputing anything.`,
		RunE: runExport,
	}

	// Flags
	cmd.Flags().StringP("output-dir", "o", "seedscope-out", "Directory for the result CSV files")

	// Bind to viper
	_ = viper.BindPFlag("export.output_dir", cmd.Flags().Lookup("output-dir"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	outputDir := viper.GetString("export.output_dir")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetLatestRun(ctx)
	if err != nil {
		return common.NewUserError("no completed runs to export; run 'seedscope analyze' first", err)
	}
	slog.Info("exporting run", "run_id", run.ID, "created_at", run.CreatedAt, "k", run.ChosenK)

	events, err := store.GetEvents(ctx)
	if err != nil {
		return err
	}
	vectors, assignments, err := store.GetClusters(ctx)
	if err != nil {
		return err
	}

	cleanedPath := filepath.Join(outputDir, "cleaned_events.csv")
	clusterPath := filepath.Join(outputDir, "entity_clusters.csv")
	if err := export.WriteCleanedCSV(cleanedPath, events); err != nil {
		return err
	}
	if err := export.WriteClusterCSV(clusterPath, vectors, assignments); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Exported %d events and %d entities to %s", len(events), len(vectors), outputDir)))

	return nil
}
