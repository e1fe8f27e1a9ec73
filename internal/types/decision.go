package types

// MatchStrategy identifies which matching tier produced a decision.
type MatchStrategy string

// Matching tiers, in priority order.
const (
	StrategyNumeric         MatchStrategy = "numeric"
	StrategyNormalizedTitle MatchStrategy = "normalized_title"
	StrategyFuzzyTitle      MatchStrategy = "fuzzy_title"
	StrategyNone            MatchStrategy = "none"
)

// Column names used as FieldDiffs keys. They mirror the videos_new columns
// so the catalog layer can build UPDATE statements directly from a decision.
const (
	FieldStartingPosition = "startingPosition"
	FieldMovement         = "movement"
	FieldIntensity        = "intensity"
	FieldSeries           = "series"
	FieldConstraints      = "constraints"
	FieldTheme            = "theme"
	FieldTargetedMuscles  = "targeted_muscles"
	FieldDifficulty       = "difficulty"
	FieldRegion           = "region"
)

// MatchDecision is the output of reconciling one video against the parsed
// metadata set. It is computed once per (video, run) pair and consumed by
// the apply step; only its effects on the video row persist.
type MatchDecision struct {
	VideoID        string            `json:"video_id"`
	Matched        *ExerciseMetadata `json:"matched,omitempty"`
	Strategy       MatchStrategy     `json:"strategy"`
	Confidence     float64           `json:"confidence"`
	FieldDiffs     map[string]any    `json:"field_diffs,omitempty"`
	Conflict       bool              `json:"conflict"`
	ConflictReason string            `json:"conflict_reason,omitempty"`
}

// HasDiffs reports whether the decision proposes any field changes.
func (d *MatchDecision) HasDiffs() bool {
	return len(d.FieldDiffs) > 0
}
