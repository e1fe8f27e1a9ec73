package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/onlyyou-coaching/catalog-sync/internal/catalog"
	"github.com/onlyyou-coaching/catalog-sync/internal/storage"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

var syncS3Command = &cobra.Command{
	Use:   "sync-s3",
	Short: "Register S3 video uploads missing from the catalog",
	Long: `Lists the video objects in the S3 bucket and creates an unpublished
catalog row for every object whose URL is not referenced yet. Region and
title are derived from the object key.

By default nothing is written; pass --apply to insert the missing rows.`,
	RunE: runSyncS3Cmd,
}

var (
	syncS3ConfigPath string
	syncS3Prefix     string
	syncS3Apply      bool
)

func init() {
	syncS3Command.Flags().StringVar(&syncS3ConfigPath, "config", "", "Path to config.json file")
	syncS3Command.Flags().StringVar(&syncS3Prefix, "prefix", "Video/", "Key prefix to list")
	syncS3Command.Flags().BoolVar(&syncS3Apply, "apply", false, "Insert the missing catalog rows (default: dry run)")

	rootCmd.AddCommand(syncS3Command)
}

func runSyncS3Cmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(syncS3ConfigPath)
	if err != nil {
		return err
	}
	if err := requireDatabaseURL(cfg); err != nil {
		return err
	}

	bucket, err := storage.New(ctx, storageConfig(cfg))
	if err != nil {
		return err
	}

	store, err := catalog.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	objects, err := bucket.ListObjects(ctx, syncS3Prefix)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d objects under %q\n", len(objects), syncS3Prefix)

	var missing, inserted int
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") || obj.Size == 0 {
			continue
		}

		sourceURL := bucket.PublicURL(obj.Key)
		exists, err := store.SourceURLExists(ctx, sourceURL)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		missing++

		video := types.VideoRecord{
			ID:        uuid.NewString(),
			Title:     storage.TitleFromKey(obj.Key),
			SourceURL: sourceURL,
			Region:    storage.RegionFromKey(obj.Key),
		}
		fmt.Printf("  new: %s (region %q) <- %s\n", video.Title, video.Region, obj.Key)

		if !syncS3Apply {
			continue
		}
		if err := store.InsertVideo(ctx, video); err != nil {
			fmt.Printf("Warning: failed to insert %s: %v\n", obj.Key, err)
			continue
		}
		inserted++
	}

	if syncS3Apply {
		fmt.Printf("Inserted %d of %d missing videos\n", inserted, missing)
	} else {
		fmt.Printf("Dry run: %d videos would be inserted (pass --apply to write)\n", missing)
	}
	return nil
}
