package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyyou-coaching/catalog-sync/internal/metadata"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

func f64(v float64) *float64 { return &v }

func TestReconcileNumericTierWinsOverTitle(t *testing.T) {
	// A shared number must match even when the titles have nothing in
	// common, because authors renumber instead of renaming.
	video := types.VideoRecord{ID: "v1", Title: "12. Old Name"}
	records := []types.ExerciseMetadata{
		{Title: "Complètement Différent", NumericIndex: f64(12), Intensity: "avancé"},
		{Title: "Old Name", NumericIndex: f64(40)},
	}

	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNumeric, d.Strategy)
	assert.Equal(t, float64(100), d.Confidence)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "Complètement Différent", d.Matched.Title)
}

func TestReconcileNumericAmbiguityFallsThrough(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "3. Squat sumo"}
	records := []types.ExerciseMetadata{
		{Title: "Fente avant", NumericIndex: f64(3)},
		{Title: "Pont épaulé", NumericIndex: f64(3)},
	}

	// Two records share index 3: the numeric tier must not pick either.
	// The title tiers find nothing similar, so the decision is none.
	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNone, d.Strategy)
	assert.Nil(t, d.Matched)
	assert.Empty(t, d.FieldDiffs)
	assert.Equal(t, float64(0), d.Confidence)
}

func TestReconcileNumericAmbiguityStillMatchesByTitle(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "3. Squat sumo"}
	records := []types.ExerciseMetadata{
		{Title: "Squat sumo", NumericIndex: f64(3), Intensity: "debutant"},
		{Title: "Fente avant", NumericIndex: f64(3)},
	}

	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNormalizedTitle, d.Strategy)
	assert.Equal(t, float64(95), d.Confidence)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "Squat sumo", d.Matched.Title)
}

func TestReconcileNormalizedTitleTier(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Étirement – Dos (Léger)"}
	records := []types.ExerciseMetadata{
		{Title: "etirement dos leger", Intensity: "debutant"},
		{Title: "Crunch classique"},
	}

	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNormalizedTitle, d.Strategy)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "etirement dos leger", d.Matched.Title)
}

func TestReconcileFuzzyTier(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Gainage planche latérale"}
	records := []types.ExerciseMetadata{
		{Title: "Gainage planche laterale gauche", Intensity: "intermediaire"},
		{Title: "Crunch classique"},
	}

	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyFuzzyTitle, d.Strategy)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "Gainage planche laterale gauche", d.Matched.Title)
	assert.GreaterOrEqual(t, d.Confidence, float64(80))
}

func TestReconcileFuzzyNearTieIsAmbiguous(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Gainage planche"}
	records := []types.ExerciseMetadata{
		{Title: "Gainage planches"},
		{Title: "Gainage planches"},
	}

	// Identical candidates score identically: no winner by margin.
	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNone, d.Strategy)
}

func TestReconcileFuzzyBelowThreshold(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Mobilité cheville"}
	records := []types.ExerciseMetadata{
		{Title: "Développé militaire haltères"},
	}

	d := Reconcile(video, records, Config{FuzzyThreshold: 95})
	assert.Equal(t, types.StrategyNone, d.Strategy)
	assert.Empty(t, d.FieldDiffs)
}

func TestReconcileEmptyMetadataSet(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Crunch classique"}
	d := Reconcile(video, nil, Config{})
	assert.Equal(t, types.StrategyNone, d.Strategy)
	assert.Empty(t, d.FieldDiffs)
}

func TestReconcileNumericIndexFromSourceURL(t *testing.T) {
	video := types.VideoRecord{
		ID:        "v1",
		Title:     "Rowing poulie basse",
		SourceURL: "https://bucket.s3.amazonaws.com/Video/dos/10.1%20Rowing.mp4",
	}
	records := []types.ExerciseMetadata{
		{Title: "Rowing unilatéral", NumericIndex: f64(10.1), Intensity: "avancé"},
	}

	d := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNumeric, d.Strategy)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "Rowing unilatéral", d.Matched.Title)
}

func TestReconcileConflictSuppression(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Extension poulie haute"}
	records := []types.ExerciseMetadata{
		{
			Title:            "Extension poulie haute",
			StartingPosition: "Debout, jambes écartées",
			Movement:         "Tendre les bras avec barre au-dessus de la tête",
			TargetedMuscles:  []string{"triceps"},
			Intensity:        "avancé",
		},
	}

	d := Reconcile(video, records, Config{})
	require.True(t, d.Conflict)
	assert.NotEmpty(t, d.ConflictReason)
	assert.Contains(t, d.ConflictReason, "poulie")
	assert.Contains(t, d.ConflictReason, "barre")

	assert.NotContains(t, d.FieldDiffs, types.FieldMovement)
	assert.NotContains(t, d.FieldDiffs, types.FieldStartingPosition)
	assert.NotContains(t, d.FieldDiffs, types.FieldTargetedMuscles)
	assert.NotContains(t, d.FieldDiffs, types.FieldIntensity)
	assert.Equal(t, string(types.DifficultyUndetermined), d.FieldDiffs[types.FieldDifficulty])
}

func TestReconcileMatchingEquipmentIsNotConflict(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "Extension poulie haute"}
	records := []types.ExerciseMetadata{
		{
			Title:    "Extension poulie haute",
			Movement: "Tendre les bras face à la poulie",
		},
	}

	d := Reconcile(video, records, Config{})
	assert.False(t, d.Conflict)
	assert.Contains(t, d.FieldDiffs, types.FieldMovement)
}

func TestReconcileIdempotence(t *testing.T) {
	video := types.VideoRecord{ID: "v1", Title: "2. Gainage planche.mp4"}
	records := []types.ExerciseMetadata{
		{
			Title:            "Gainage planche",
			NumericIndex:     f64(2),
			Region:           "abdominaux",
			StartingPosition: "En appui sur les avant-bras",
			Movement:         "Maintenir la position",
			Intensity:        "intermediaire",
			Series:           "3 x 45s",
			TargetedMuscles:  []string{"transverse", "grand droit"},
		},
	}

	first := Reconcile(video, records, Config{})
	require.Equal(t, types.StrategyNumeric, first.Strategy)
	require.True(t, first.HasDiffs())

	ApplyDiffs(&video, first.FieldDiffs)

	second := Reconcile(video, records, Config{})
	assert.Equal(t, types.StrategyNumeric, second.Strategy)
	assert.Empty(t, second.FieldDiffs, "re-running on an updated record must propose nothing")
}

func TestReconcileEndToEndFromDocument(t *testing.T) {
	doc := `### 1. Crunch classique
- Région : abdominaux
- Intensité : debutant
### 2. Gainage planche
- Région : abdominaux
- Intensité : intermediaire
`
	records := metadata.Parse(doc)
	require.Len(t, records, 2)

	video := types.VideoRecord{ID: "v2", Title: "2. Gainage planche.mp4"}
	d := Reconcile(video, records, Config{})

	assert.Equal(t, types.StrategyNumeric, d.Strategy)
	assert.Equal(t, float64(100), d.Confidence)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "Gainage planche", d.Matched.Title)
	assert.Equal(t, "intermediaire", d.FieldDiffs[types.FieldIntensity])
	assert.Equal(t, "abdominaux", d.FieldDiffs[types.FieldRegion])
	assert.Equal(t, string(types.DifficultyIntermediate), d.FieldDiffs[types.FieldDifficulty])
}
