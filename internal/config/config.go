// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RegionSource pairs a catalog region tag with the authored metadata
// document that describes it.
type RegionSource struct {
	Region      string `json:"region"`
	File        string `json:"file"`
	DisplayName string `json:"display_name,omitempty"`
}

// DefaultRegions lists the muscle-group regions and their metadata
// documents as authored.
var DefaultRegions = []RegionSource{
	{Region: "dos", File: "dos.md", DisplayName: "Dos"},
	{Region: "pectoraux", File: "pectoraux.md", DisplayName: "Pectoraux"},
	{Region: "abdos", File: "abdominaux-complet.md", DisplayName: "Abdos"},
	{Region: "biceps", File: "biceps.md", DisplayName: "Biceps"},
	{Region: "triceps", File: "triceps.md", DisplayName: "Triceps"},
	{Region: "epaules", File: "epaule.md", DisplayName: "Épaules"},
	{Region: "streching", File: "genou.md", DisplayName: "Stretching"},
	{Region: "cardio", File: "cardio.md", DisplayName: "Cardio"},
	{Region: "bande", File: "bande.md", DisplayName: "Bande"},
}

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// the environment.
type Config struct {
	// Stores
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	Bucket       string `json:"bucket,omitempty"`         // S3 bucket holding the video assets
	AWSRegion    string `json:"aws_region,omitempty"`     // S3 bucket region
	AWSAccessKey string `json:"aws_access_key,omitempty"` // Static credentials; default chain when unset
	AWSSecretKey string `json:"aws_secret_key,omitempty"`

	// Metadata documents
	MetadataDir string         `json:"metadata_dir,omitempty"` // Directory holding the region documents
	Regions     []RegionSource `json:"regions,omitempty"`      // Region to document mapping

	// Matching
	FuzzyThreshold float64  `json:"fuzzy_threshold,omitempty"` // Minimum fuzzy similarity (0-100)
	FuzzyMargin    float64  `json:"fuzzy_margin,omitempty"`    // Minimum lead over the runner-up
	TitleStoplist  []string `json:"title_stoplist,omitempty"`  // Trailing annotations stripped from titles

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print per-video decision detail
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from the environment. The config file wins
// over environment values.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Bucket == "" {
		c.Bucket = os.Getenv("AWS_S3_BUCKET_NAME")
	}
	if c.AWSRegion == "" {
		c.AWSRegion = os.Getenv("AWS_REGION")
	}
	if c.AWSAccessKey == "" {
		c.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if c.AWSSecretKey == "" {
		c.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
}

// ApplyDefaults fills remaining zero values with the built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.Bucket == "" {
		c.Bucket = "only-you-coaching"
	}
	if c.AWSRegion == "" {
		c.AWSRegion = "eu-north-1"
	}
	if c.MetadataDir == "" {
		c.MetadataDir = "metadata"
	}
	if len(c.Regions) == 0 {
		c.Regions = DefaultRegions
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 100 {
		return fmt.Errorf("config error: 'fuzzy_threshold' must be between 0 and 100")
	}
	if c.FuzzyMargin < 0 || c.FuzzyMargin > 100 {
		return fmt.Errorf("config error: 'fuzzy_margin' must be between 0 and 100")
	}
	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if r.Region == "" || r.File == "" {
			return fmt.Errorf("config error: every region entry needs 'region' and 'file'")
		}
		if seen[r.Region] {
			return fmt.Errorf("config error: duplicate region %q", r.Region)
		}
		seen[r.Region] = true
	}
	return nil
}

// RegionByName returns the configured source for one region tag.
func (c *Config) RegionByName(region string) (RegionSource, bool) {
	for _, r := range c.Regions {
		if r.Region == region {
			return r, true
		}
	}
	return RegionSource{}, false
}
