// Package match selects the best authored metadata record for each video
// and computes a reconciliation decision. Reconcile is pure computation
// over in-memory data: it never fails and never touches the store. The
// apply step lives with the caller so decisions stay side-effect free and
// testable.
package match

import (
	"fmt"
	"sort"

	"github.com/onlyyou-coaching/catalog-sync/internal/extract"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

// Confidence scores assigned by the exact tiers. The fuzzy tier reports
// its computed similarity instead.
const (
	numericConfidence = 100
	titleConfidence   = 95

	defaultFuzzyThreshold = 80
	defaultFuzzyMargin    = 2
)

// Config carries the tunable fuzzy-tier parameters. The zero value uses
// the defaults (threshold 80, margin 2).
type Config struct {
	// FuzzyThreshold is the minimum 0-100 similarity the best fuzzy
	// candidate must reach to be selected.
	FuzzyThreshold float64
	// FuzzyMargin is the minimum lead the best candidate must hold over
	// the second best; near-ties are treated as ambiguous.
	FuzzyMargin float64
	// TitleStoplist overrides the trailing annotations stripped when
	// deriving the video's comparable title. Nil uses the default list.
	TitleStoplist []string
}

func (c Config) withDefaults() Config {
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = defaultFuzzyThreshold
	}
	if c.FuzzyMargin == 0 {
		c.FuzzyMargin = defaultFuzzyMargin
	}
	return c
}

// Reconcile finds the best metadata record for one video using the tiered
// strategy (numeric, then normalized title, then fuzzy) and computes the
// field updates the match implies. An ambiguous tier falls through rather
// than guessing; when every tier fails the decision carries StrategyNone
// and no diffs.
func Reconcile(video types.VideoRecord, records []types.ExerciseMetadata, cfg Config) types.MatchDecision {
	cfg = cfg.withDefaults()

	decision := types.MatchDecision{
		VideoID:  video.ID,
		Strategy: types.StrategyNone,
	}

	matched, strategy, confidence := selectRecord(video, records, cfg)
	if matched == nil {
		return decision
	}

	decision.Matched = matched
	decision.Strategy = strategy
	decision.Confidence = confidence
	decision.FieldDiffs = buildDiffs(video, matched)

	applyConflictPolicy(video, matched, &decision)
	return decision
}

// selectRecord runs the matching tiers in priority order. The first tier
// that yields exactly one candidate wins; two or more equally good
// candidates make the tier ambiguous and control falls through.
func selectRecord(video types.VideoRecord, records []types.ExerciseMetadata, cfg Config) (*types.ExerciseMetadata, types.MatchStrategy, float64) {
	// Numeric tier. The index comes from the source URL's filename when
	// available, since stored titles may already have been cleaned.
	if index, ok := videoNumericIndex(video); ok {
		var found *types.ExerciseMetadata
		unique := true
		for i := range records {
			if records[i].NumericIndex == nil || *records[i].NumericIndex != index {
				continue
			}
			if found != nil {
				unique = false
				break
			}
			found = &records[i]
		}
		if found != nil && unique {
			return found, types.StrategyNumeric, numericConfidence
		}
	}

	videoNorm := comparableTitle(video, cfg)
	if videoNorm == "" {
		return nil, types.StrategyNone, 0
	}

	// Normalized-title tier.
	var found *types.ExerciseMetadata
	unique := true
	for i := range records {
		if extract.NormalizeTitle(records[i].Title) != videoNorm {
			continue
		}
		if found != nil {
			unique = false
			break
		}
		found = &records[i]
	}
	if found != nil && unique {
		return found, types.StrategyNormalizedTitle, titleConfidence
	}

	// Fuzzy tier.
	var best *types.ExerciseMetadata
	bestScore, secondScore := 0.0, 0.0
	for i := range records {
		score := Similarity(videoNorm, extract.NormalizeTitle(records[i].Title))
		switch {
		case score > bestScore:
			secondScore = bestScore
			bestScore = score
			best = &records[i]
		case score > secondScore:
			secondScore = score
		}
	}
	if best != nil && bestScore >= cfg.FuzzyThreshold && bestScore-secondScore >= cfg.FuzzyMargin {
		return best, types.StrategyFuzzyTitle, bestScore
	}

	return nil, types.StrategyNone, 0
}

// videoNumericIndex derives the video's numeric index from its source URL,
// falling back to the stored title.
func videoNumericIndex(video types.VideoRecord) (float64, bool) {
	if video.SourceURL != "" {
		if n, ok := extract.NumericIndex(video.SourceURL); ok {
			return n, true
		}
	}
	return extract.NumericIndex(video.Title)
}

// comparableTitle derives the video's normalized matching key: extension
// and leading index stripped, annotations removed, then normalized.
func comparableTitle(video types.VideoRecord, cfg Config) string {
	title := extract.StripExtension(video.Title)
	title = extract.CleanDisplayTitle(title, cfg.TitleStoplist)
	return extract.NormalizeTitle(title)
}

// buildDiffs computes the proposed field updates: every non-empty authored
// value that differs from the video's current state. Re-running reconcile
// on an already-updated record therefore proposes nothing, which is what
// makes the apply step idempotent.
func buildDiffs(video types.VideoRecord, rec *types.ExerciseMetadata) map[string]any {
	diffs := make(map[string]any)

	propose := func(field, current, proposed string) {
		if proposed != "" && proposed != current {
			diffs[field] = proposed
		}
	}
	propose(types.FieldStartingPosition, video.StartingPosition, rec.StartingPosition)
	propose(types.FieldMovement, video.Movement, rec.Movement)
	propose(types.FieldIntensity, video.Intensity, rec.Intensity)
	propose(types.FieldSeries, video.Series, rec.Series)
	propose(types.FieldConstraints, video.Constraints, rec.Constraints)
	propose(types.FieldTheme, video.Theme, rec.Theme)

	// The catalog's region is a routing tag; authored region text only
	// fills it when missing, never overwrites it.
	if video.Region == "" {
		propose(types.FieldRegion, video.Region, rec.Region)
	}

	if len(rec.TargetedMuscles) > 0 && !sameMuscleSet(video.TargetedMuscles, rec.TargetedMuscles) {
		diffs[types.FieldTargetedMuscles] = append([]string(nil), rec.TargetedMuscles...)
	}

	if rec.Intensity != "" {
		if d := types.DifficultyFromIntensity(rec.Intensity); string(d) != video.Difficulty {
			diffs[types.FieldDifficulty] = string(d)
		}
	}

	return diffs
}

// applyConflictPolicy detects equipment contradictions between the video's
// own title and the matched metadata text. On conflict the descriptive
// fields are withheld from automatic application and the difficulty is
// proposed as the explicit undetermined marker so a human resolves the row
// later. Non-equipment fields (region) are unaffected.
func applyConflictPolicy(video types.VideoRecord, rec *types.ExerciseMetadata, decision *types.MatchDecision) {
	titleEquipment := DetectEquipment(video.Title)
	metadataEquipment := DetectEquipment(rec.StartingPosition + " " + rec.Movement)

	if len(titleEquipment) == 0 || len(metadataEquipment) == 0 {
		return
	}
	if equipmentOverlap(titleEquipment, metadataEquipment) {
		return
	}

	decision.Conflict = true
	decision.ConflictReason = fmt.Sprintf("titre: %s, métadonnées: %s",
		equipmentNames(titleEquipment), equipmentNames(metadataEquipment))

	for _, field := range []string{
		types.FieldStartingPosition,
		types.FieldMovement,
		types.FieldTargetedMuscles,
		types.FieldIntensity,
		types.FieldSeries,
		types.FieldConstraints,
		types.FieldTheme,
	} {
		delete(decision.FieldDiffs, field)
	}

	if video.Difficulty != string(types.DifficultyUndetermined) {
		decision.FieldDiffs[types.FieldDifficulty] = string(types.DifficultyUndetermined)
	} else {
		delete(decision.FieldDiffs, types.FieldDifficulty)
	}
}

func sameMuscleSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
