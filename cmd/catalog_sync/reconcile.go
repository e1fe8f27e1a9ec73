package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/onlyyou-coaching/catalog-sync/internal/catalog"
	"github.com/onlyyou-coaching/catalog-sync/internal/match"
	"github.com/onlyyou-coaching/catalog-sync/internal/pipeline"
)

var reconcileCommand = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile catalog fields against the authored metadata documents",
	Long: `Parses each region's exercise metadata document, matches every catalog
video to its authored record (by number, normalized title, then fuzzy title)
and computes per-field updates.

By default nothing is written; pass --apply to persist the proposed changes.`,
	RunE: runReconcileCmd,
}

var (
	reconcileConfigPath string
	reconcileRegion     string
	reconcileApply      bool
	reconcileVerbose    bool
	reconcileThreshold  float64
	reconcileMargin     float64
)

func init() {
	reconcileCommand.Flags().StringVar(&reconcileConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	reconcileCommand.Flags().StringVarP(&reconcileRegion, "region", "r", "", "Restrict the run to a single region (default: all configured regions)")
	reconcileCommand.Flags().BoolVar(&reconcileApply, "apply", false, "Write the proposed updates to the catalog (default: dry run)")
	reconcileCommand.Flags().BoolVarP(&reconcileVerbose, "verbose", "v", false, "Print a decision line for every video")
	reconcileCommand.Flags().Float64Var(&reconcileThreshold, "fuzzy-threshold", 0, "Minimum fuzzy similarity score (0-100)")
	reconcileCommand.Flags().Float64Var(&reconcileMargin, "fuzzy-margin", 0, "Minimum lead over the runner-up candidate")

	rootCmd.AddCommand(reconcileCommand)
}

func runReconcileCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(reconcileConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fuzzy-threshold") {
		cfg.FuzzyThreshold = reconcileThreshold
	}
	if cmd.Flags().Changed("fuzzy-margin") {
		cfg.FuzzyMargin = reconcileMargin
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = reconcileVerbose
	}
	if err := requireDatabaseURL(cfg); err != nil {
		return err
	}

	regions, err := selectRegions(cfg, reconcileRegion)
	if err != nil {
		return err
	}

	store, err := catalog.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = pipeline.Run(ctx, store, pipeline.RunOptions{
		Regions:     regions,
		MetadataDir: cfg.MetadataDir,
		Apply:       reconcileApply,
		Verbose:     cfg.Verbose,
		MatchConfig: match.Config{
			FuzzyThreshold: cfg.FuzzyThreshold,
			FuzzyMargin:    cfg.FuzzyMargin,
			TitleStoplist:  cfg.TitleStoplist,
		},
	})
	return err
}
