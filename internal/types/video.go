// Package types provides type definitions for the structured data exchanged
// between the catalog store, the metadata parser and the reconciler.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// VideoRecord represents one video asset's row in the videos_new catalog.
// Optional text columns use the empty string for "absent"; the catalog layer
// translates empty proposals back to SQL NULL on write.
type VideoRecord struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	SourceURL        string    `json:"source_url,omitempty"`
	Region           string    `json:"region,omitempty"`
	Difficulty       string    `json:"difficulty,omitempty"`
	Intensity        string    `json:"intensity,omitempty"`
	TargetedMuscles  []string  `json:"targeted_muscles,omitempty"`
	StartingPosition string    `json:"starting_position,omitempty"`
	Movement         string    `json:"movement,omitempty"`
	Series           string    `json:"series,omitempty"`
	Constraints      string    `json:"constraints,omitempty"`
	Theme            string    `json:"theme,omitempty"`
	IsPublished      bool      `json:"is_published"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ExerciseMetadata represents one exercise entry parsed from an authored
// metadata document. Records are transient: they are reparsed on every run
// and never persisted.
type ExerciseMetadata struct {
	Title            string   `json:"title"`
	NumericIndex     *float64 `json:"numeric_index,omitempty"`
	Region           string   `json:"region,omitempty"`
	TargetedMuscles  []string `json:"targeted_muscles,omitempty"`
	StartingPosition string   `json:"starting_position,omitempty"`
	Movement         string   `json:"movement,omitempty"`
	Intensity        string   `json:"intensity,omitempty"`
	Series           string   `json:"series,omitempty"`
	Constraints      string   `json:"constraints,omitempty"`
	Theme            string   `json:"theme,omitempty"`
}
