package main

import (
	"fmt"

	"github.com/onlyyou-coaching/catalog-sync/internal/config"
	"github.com/onlyyou-coaching/catalog-sync/internal/storage"
)

// loadConfig builds the effective configuration: config file values first,
// then environment variables for anything still unset, then defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.FromEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKey,
		SecretAccessKey: cfg.AWSSecretKey,
	}
}

// selectRegions narrows the configured regions to a single one when the
// --region flag is set.
func selectRegions(cfg *config.Config, region string) ([]config.RegionSource, error) {
	if region == "" {
		return cfg.Regions, nil
	}
	src, ok := cfg.RegionByName(region)
	if !ok {
		return nil, fmt.Errorf("unknown region %q; check the regions list in the config", region)
	}
	return []config.RegionSource{src}, nil
}

func requireDatabaseURL(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or database_url config value is required")
	}
	return nil
}
