package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seedscope/seedscope/internal/cli"
	"github.com/seedscope/seedscope/internal/common"
	"github.com/seedscope/seedscope/internal/config"
	"github.com/seedscope/seedscope/internal/export"
	"github.com/seedscope/seedscope/internal/ingest"
	"github.com/seedscope/seedscope/internal/pipeline"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <input-file>",
		Short: "Run the full cleaning and clustering pipeline",
		Long: `Ingest a funding export (CSV or XLSX), clean and deduplicate the
events, aggregate per-company features and cluster the companies into
funding-profile segments.

Results are written as CSV files and persisted to the local database
for later re-export.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringP("output-dir", "o", "seedscope-out", "Directory for the result CSV files")
	cmd.Flags().IntP("k", "k", 0, "Force the cluster count instead of the elbow sweep")
	cmd.Flags().Int64("seed", 0, "Random seed for centroid initialization")
	cmd.Flags().Float64("exchange-rate", 0, "INR to USD exchange rate for rupee amounts")
	cmd.Flags().Bool("no-db", false, "Skip persisting results to the database")

	// Bind to viper
	_ = viper.BindPFlag("analyze.output_dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("analyze.k", cmd.Flags().Lookup("k"))
	_ = viper.BindPFlag("analyze.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("analyze.exchange_rate", cmd.Flags().Lookup("exchange-rate"))
	_ = viper.BindPFlag("analyze.no_db", cmd.Flags().Lookup("no-db"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inputPath := args[0]
	outputDir := viper.GetString("analyze.output_dir")

	cfg := pipelineConfig(cmd)

	slog.Info(cli.FormatTitle("Analyzing funding events..."))

	raws, err := ingest.Read(inputPath, cfg)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read %s", inputPath), err)
	}

	opts := []pipeline.Option{}
	if !viper.GetBool("analyze.no_db") {
		store, storeErr := initStorage(ctx)
		if storeErr != nil {
			return fmt.Errorf("failed to initialize storage: %w", storeErr)
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, pipeline.WithStorage(store))
	}

	if cfg.ForcedK == 0 {
		bar := cli.NewSweepBar(cfg.KMax-cfg.KMin+1, os.Stderr)
		opts = append(opts, pipeline.WithProgress(func(int) { _ = bar.Add(1) }))
		defer func() { _ = bar.Finish() }()
	}

	p, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, raws)
	if err != nil {
		return common.NewUserError("analysis failed", err)
	}

	cleanedPath := filepath.Join(outputDir, "cleaned_events.csv")
	clusterPath := filepath.Join(outputDir, "entity_clusters.csv")
	if err := export.WriteCleanedCSV(cleanedPath, res.Events); err != nil {
		return err
	}
	if err := export.WriteClusterCSV(clusterPath, res.Vectors, res.Assignments); err != nil {
		return err
	}

	fmt.Println(cli.RenderRunSummary(res.Stats, res.Profiles))
	if res.Stats.KFallback {
		fmt.Println(cli.FormatWarning("elbow sweep inconclusive: " + res.Stats.FallbackReason))
	}
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Results written to %s", outputDir)))

	return nil
}

// pipelineConfig layers command-line overrides on the viper-backed
// configuration.
func pipelineConfig(cmd *cobra.Command) config.Pipeline {
	cfg := config.FromViper()

	if cmd.Flags().Changed("k") {
		cfg.ForcedK = viper.GetInt("analyze.k")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = viper.GetInt64("analyze.seed")
	}
	if cmd.Flags().Changed("exchange-rate") {
		cfg.ExchangeRate = viper.GetFloat64("analyze.exchange_rate")
	}

	return cfg
}
