package main

import (
	"fmt"
	"log/slog"
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

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <input-file>",
		Short: "Clean and deduplicate a funding export without clustering",
		Long: `Run only the cleaning stages: normalize fields, drop rows without a
company name, deduplicate repeated rounds, impute missing values and
flag funding outliers. The cleaned event set is written as CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}

	// Flags
	cmd.Flags().StringP("output-dir", "o", "seedscope-out", "Directory for the cleaned CSV file")
	cmd.Flags().Float64("exchange-rate", 0, "INR to USD exchange rate for rupee amounts")
	cmd.Flags().Bool("dry-run", false, "Report data-quality statistics without writing output")

	// Bind to viper
	_ = viper.BindPFlag("clean.output_dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("clean.exchange_rate", cmd.Flags().Lookup("exchange-rate"))
	_ = viper.BindPFlag("clean.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inputPath := args[0]

	cfg := config.FromViper()
	if cmd.Flags().Changed("exchange-rate") {
		cfg.ExchangeRate = viper.GetFloat64("clean.exchange_rate")
	}

	slog.Info(cli.FormatTitle("Cleaning funding events..."))

	raws, err := ingest.Read(inputPath, cfg)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read %s", inputPath), err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	events, stats, err := p.Clean(ctx, raws)
	if err != nil {
		return err
	}

	slog.Info("cleaned event set",
		"input_rows", stats.TotalRows,
		"kept", len(events),
		"duplicates", stats.Duplicates,
		"dropped_no_entity", stats.DroppedNoEntity,
		"outliers", stats.Outliers)

	if viper.GetBool("clean.dry_run") {
		slog.Info(cli.FormatInfo("Dry run, no output written"))
		return nil
	}

	cleanedPath := filepath.Join(viper.GetString("clean.output_dir"), "cleaned_events.csv")
	if err := export.WriteCleanedCSV(cleanedPath, events); err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Cleaned events written to %s", cleanedPath)))

	return nil
}
