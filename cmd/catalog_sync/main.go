// Package main provides the catalog-sync command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog_sync",
	Short: "Fitness video catalog maintenance tool",
	Long:  "catalog_sync reconciles the video catalog against authored exercise metadata documents, cleans display titles, registers S3 video uploads and verifies thumbnail coverage.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
