package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onlyyou-coaching/catalog-sync/internal/storage"
)

var verifyThumbnailsCommand = &cobra.Command{
	Use:   "verify-thumbnails",
	Short: "Check that every video object has a thumbnail",
	Long: `Lists the video objects in the S3 bucket and verifies that the matching
thumbnail object exists. Missing thumbnails are reported; with --presign a
temporary download URL for each orphaned video is printed so the asset can
be inspected.`,
	RunE: runVerifyThumbnailsCmd,
}

var (
	verifyThumbnailsConfigPath string
	verifyThumbnailsPrefix     string
	verifyThumbnailsPresign    bool
)

func init() {
	verifyThumbnailsCommand.Flags().StringVar(&verifyThumbnailsConfigPath, "config", "", "Path to config.json file")
	verifyThumbnailsCommand.Flags().StringVar(&verifyThumbnailsPrefix, "prefix", "Video/", "Key prefix to list")
	verifyThumbnailsCommand.Flags().BoolVar(&verifyThumbnailsPresign, "presign", false, "Print a presigned URL for each video missing its thumbnail")

	rootCmd.AddCommand(verifyThumbnailsCommand)
}

func runVerifyThumbnailsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(verifyThumbnailsConfigPath)
	if err != nil {
		return err
	}

	bucket, err := storage.New(ctx, storageConfig(cfg))
	if err != nil {
		return err
	}

	objects, err := bucket.ListObjects(ctx, verifyThumbnailsPrefix)
	if err != nil {
		return err
	}

	var checked, missing int
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") || obj.Size == 0 {
			continue
		}
		checked++

		thumbKey := storage.ThumbnailKey(obj.Key)
		exists, err := bucket.ObjectExists(ctx, thumbKey)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		missing++
		fmt.Printf("  missing thumbnail: %s (expected %s)\n", obj.Key, thumbKey)

		if verifyThumbnailsPresign {
			url, err := bucket.PresignGet(ctx, obj.Key, storage.DefaultPresignExpiry)
			if err != nil {
				fmt.Printf("Warning: failed to presign %s: %v\n", obj.Key, err)
				continue
			}
			fmt.Printf("    %s\n", url)
		}
	}

	fmt.Printf("Checked %d videos, %d missing thumbnails\n", checked, missing)
	return nil
}
