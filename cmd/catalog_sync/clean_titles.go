package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onlyyou-coaching/catalog-sync/internal/catalog"
	"github.com/onlyyou-coaching/catalog-sync/internal/extract"
)

var cleanTitlesCommand = &cobra.Command{
	Use:   "clean-titles",
	Short: "Strip numbering prefixes and editorial markers from video titles",
	Long: `Rewrites catalog titles by removing leading exercise numbers and trailing
editorial markers ("a refaire", "a corriger le nom", ...). Titles already
clean are left untouched.

By default nothing is written; pass --apply to persist the cleaned titles.`,
	RunE: runCleanTitlesCmd,
}

var (
	cleanTitlesConfigPath string
	cleanTitlesRegion     string
	cleanTitlesApply      bool
)

func init() {
	cleanTitlesCommand.Flags().StringVar(&cleanTitlesConfigPath, "config", "", "Path to config.json file")
	cleanTitlesCommand.Flags().StringVarP(&cleanTitlesRegion, "region", "r", "", "Restrict the run to a single region (default: all configured regions)")
	cleanTitlesCommand.Flags().BoolVar(&cleanTitlesApply, "apply", false, "Write the cleaned titles to the catalog (default: dry run)")

	rootCmd.AddCommand(cleanTitlesCommand)
}

func runCleanTitlesCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cleanTitlesConfigPath)
	if err != nil {
		return err
	}
	if err := requireDatabaseURL(cfg); err != nil {
		return err
	}

	regions, err := selectRegions(cfg, cleanTitlesRegion)
	if err != nil {
		return err
	}

	store, err := catalog.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	var examined, changed int
	for _, region := range regions {
		videos, err := store.ListVideos(ctx, region.Region)
		if err != nil {
			return fmt.Errorf("region %s: %w", region.Region, err)
		}

		for _, v := range videos {
			examined++
			cleaned := extract.CleanDisplayTitle(v.Title, cfg.TitleStoplist)
			if cleaned == "" || cleaned == v.Title {
				continue
			}
			changed++
			fmt.Printf("  %q -> %q\n", v.Title, cleaned)

			if !cleanTitlesApply {
				continue
			}
			if err := store.UpdateTitle(ctx, v.ID, cleaned); err != nil {
				fmt.Printf("Warning: failed to update title for video %s: %v\n", v.ID, err)
			}
		}
	}

	if cleanTitlesApply {
		fmt.Printf("Cleaned %d of %d titles\n", changed, examined)
	} else {
		fmt.Printf("Dry run: %d of %d titles would change (pass --apply to write)\n", changed, examined)
	}
	return nil
}
